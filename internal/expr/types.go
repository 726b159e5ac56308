package expr

import (
	"slices"
	"strconv"
	"strings"
)

// MaxOperand is the largest operand value the parser accepts.
const MaxOperand = 99999

// Operator is the canonical name of an arithmetic operation.
type Operator string

const (
	OpAddition       Operator = "addition"
	OpSubtraction    Operator = "subtraction"
	OpMultiplication Operator = "multiplication"
	OpDivision       Operator = "division"
)

// AllOperators returns every supported operator in display order.
func AllOperators() []Operator {
	return []Operator{OpAddition, OpSubtraction, OpMultiplication, OpDivision}
}

// Symbol returns the glyph used when rendering the operator for learners.
func (o Operator) Symbol() string {
	switch o {
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "−"
	case OpMultiplication:
		return "×"
	case OpDivision:
		return "÷"
	default:
		return "?"
	}
}

// operatorFor maps an ASCII operator symbol to its canonical name.
func operatorFor(sym string) (Operator, bool) {
	switch sym {
	case "+":
		return OpAddition, true
	case "-":
		return OpSubtraction, true
	case "*", "x":
		return OpMultiplication, true
	case "/":
		return OpDivision, true
	default:
		return "", false
	}
}

// ParsedExpression is the structural form of a user-typed expression.
// It is immutable once built by Parse; accessors return copies.
type ParsedExpression struct {
	operands []int
	operator Operator
	raw      string
}

// NewParsedExpression builds a ParsedExpression directly. It is intended for
// callers that already hold validated operands (tests, fixtures); user input
// should go through Parse.
func NewParsedExpression(op Operator, raw string, operands ...int) ParsedExpression {
	return ParsedExpression{
		operands: slices.Clone(operands),
		operator: op,
		raw:      raw,
	}
}

// Operands returns a copy of the operands in input order.
func (p ParsedExpression) Operands() []int {
	return slices.Clone(p.operands)
}

// Operand returns the i-th operand.
func (p ParsedExpression) Operand(i int) int {
	return p.operands[i]
}

// Len returns the number of operands (2 or 3).
func (p ParsedExpression) Len() int {
	return len(p.operands)
}

// Operator returns the canonical operator.
func (p ParsedExpression) Operator() Operator {
	return p.operator
}

// Raw returns the original, non-normalized input.
func (p ParsedExpression) Raw() string {
	return p.raw
}

// String renders the expression with display glyphs, e.g. "5 × 14".
func (p ParsedExpression) String() string {
	parts := make([]string, len(p.operands))
	for i, n := range p.operands {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " "+p.operator.Symbol()+" ")
}
