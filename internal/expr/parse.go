package expr

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// shape is one accepted expression layout. Lower Priority is tried first.
type shape struct {
	Name     string
	Priority int
	re       *regexp.Regexp
	// operator is fixed for shapes that only admit one operation;
	// empty means it is captured from the second submatch.
	operator Operator
}

// shapes is sorted by Priority at init. The 3-operand addition shape must be
// tried before the binary shape so "7 + 8 + 3" is never read as two operands.
var shapes = []shape{
	{
		Name:     "binary",
		Priority: 2,
		re:       regexp.MustCompile(`^(\d+) ?([-+*/]) ?(\d+)$`),
	},
	{
		Name:     "three-addends",
		Priority: 1,
		re:       regexp.MustCompile(`^(\d+) ?\+ ?(\d+) ?\+ ?(\d+)$`),
		operator: OpAddition,
	},
}

func init() {
	slices.SortStableFunc(shapes, func(a, b shape) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
}

// Parse turns raw user input into a ParsedExpression. On failure it returns
// a *ParseError; the original input is kept verbatim in both cases.
func Parse(raw string) (ParsedExpression, error) {
	if strings.TrimSpace(raw) == "" {
		return ParsedExpression{}, newParseError(KindEmptyInput, raw)
	}

	norm := Normalize(raw)
	if hasUnsupportedSyntax(norm) {
		return ParsedExpression{}, newParseError(KindUnsupportedOperation, raw)
	}

	for _, sh := range shapes {
		m := sh.re.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		return build(sh, m, raw)
	}

	return ParsedExpression{}, newParseError(KindInvalidFormat, raw)
}

// hasUnsupportedSyntax reports letters, roots, exponents or parentheses.
func hasUnsupportedSyntax(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
		switch r {
		case '√', '^', '(', ')':
			return true
		}
	}
	return false
}

func build(sh shape, m []string, raw string) (ParsedExpression, error) {
	var digits []string
	op := sh.operator
	if op == "" {
		var ok bool
		op, ok = operatorFor(m[2])
		if !ok {
			return ParsedExpression{}, newParseError(KindInvalidFormat, raw)
		}
		digits = []string{m[1], m[3]}
	} else {
		digits = m[1:]
	}

	operands := make([]int, len(digits))
	for i, d := range digits {
		n, err := strconv.Atoi(d)
		// Atoi only fails here on overflow; the regex admits digits only.
		if err != nil || n > MaxOperand {
			return ParsedExpression{}, newParseError(KindOutOfRange, raw)
		}
		operands[i] = n
	}

	return ParsedExpression{
		operands: operands,
		operator: op,
		raw:      raw,
	}, nil
}
