package expr

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  5 × 14  ", "5 * 14"},
		{"5x14", "5*14"},
		{"2405 X 13", "2405*13"},
		{"84 ÷ 4", "84 / 4"},
		{"90 − 12", "90 - 12"},
		{"6 ✕ 7", "6 * 7"},
		{"60 ➗ 5", "60 / 5"},
		{"7   +\t8 +  3", "7 + 8 + 3"},
		{"2x3x4", "2*3*4"},
		{"x + 5", "x + 5"},
		{"ABC", "abc"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in       string
		op       Operator
		operands []int
	}{
		{"5 × 14", OpMultiplication, []int{5, 14}},
		{"2405 x 13", OpMultiplication, []int{2405, 13}},
		{"5x14", OpMultiplication, []int{5, 14}},
		{"48 + 37", OpAddition, []int{48, 37}},
		{"7 + 8 + 3", OpAddition, []int{7, 8, 3}},
		{"304 - 187", OpSubtraction, []int{304, 187}},
		{"304 − 187", OpSubtraction, []int{304, 187}},
		{"84 / 4", OpDivision, []int{84, 4}},
		{"84÷4", OpDivision, []int{84, 4}},
		{"99999 + 0", OpAddition, []int{99999, 0}},
		{"007 * 3", OpMultiplication, []int{7, 3}},
		{"9 / 0", OpDivision, []int{9, 0}},
	}
	for _, tt := range tests {
		p, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if p.Operator() != tt.op {
			t.Errorf("Parse(%q) operator = %q, want %q", tt.in, p.Operator(), tt.op)
		}
		if !slices.Equal(p.Operands(), tt.operands) {
			t.Errorf("Parse(%q) operands = %v, want %v", tt.in, p.Operands(), tt.operands)
		}
		if p.Raw() != tt.in {
			t.Errorf("Parse(%q) raw = %q, want input preserved", tt.in, p.Raw())
		}
	}
}

func TestParse_ThreeAddendsTriedFirst(t *testing.T) {
	p, err := Parse("7 + 8 + 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("got %d operands, want 3", p.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		kind ErrorKind
	}{
		{"", KindEmptyInput},
		{"   \t ", KindEmptyInput},
		{"abc", KindUnsupportedOperation},
		{"5^2", KindUnsupportedOperation},
		{"√49", KindUnsupportedOperation},
		{"(5+3)×2", KindUnsupportedOperation},
		{"5 x", KindUnsupportedOperation},
		{"42", KindInvalidFormat},
		{"++5", KindInvalidFormat},
		{"5 * 3 * 2", KindInvalidFormat},
		{"7 - 8 - 3", KindInvalidFormat},
		{"2.5 * 4", KindInvalidFormat},
		{"-5 + 3", KindInvalidFormat},
		{"999999 × 2", KindOutOfRange},
		{"100000 + 1", KindOutOfRange},
		{"1 + 2 + 100000", KindOutOfRange},
		{strings.Repeat("9", 40) + " + 1", KindOutOfRange},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if err == nil {
			t.Errorf("Parse(%q) expected %s error, got nil", tt.in, tt.kind)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error type %T, want *ParseError", tt.in, err)
			continue
		}
		if pe.Kind != tt.kind {
			t.Errorf("Parse(%q) kind = %q, want %q", tt.in, pe.Kind, tt.kind)
		}
		if pe.Message == "" {
			t.Errorf("Parse(%q) has empty message", tt.in)
		}
		if pe.Input != tt.in {
			t.Errorf("Parse(%q) input = %q, want original", tt.in, pe.Input)
		}
	}
}

func TestParseError_IsSentinel(t *testing.T) {
	_, err := Parse("√49")
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("expected errors.Is(err, ErrUnsupportedOperation), got %v", err)
	}
	if errors.Is(err, ErrOutOfRange) {
		t.Error("unsupported_operation error must not match ErrOutOfRange")
	}

	_, err = Parse("")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected errors.Is(err, ErrEmptyInput), got %v", err)
	}
}

func TestParsedExpression_Immutable(t *testing.T) {
	p, err := Parse("5 × 14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ops := p.Operands()
	ops[0] = 99
	if p.Operand(0) != 5 {
		t.Errorf("mutating Operands() result changed the expression: got %d", p.Operand(0))
	}
}

func TestParsedExpression_String(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5x14", "5 × 14"},
		{"7+8+3", "7 + 8 + 3"},
		{"84 / 4", "84 ÷ 4"},
		{"90-12", "90 − 12"},
	}
	for _, tt := range tests {
		p, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got := p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
