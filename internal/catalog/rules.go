package catalog

import (
	"fmt"
	"slices"

	"github.com/abhisek/opclass/internal/expr"
)

// DirectRule is a layer-1 rule: an operand-level predicate that identifies
// one concept outright.
type DirectRule struct {
	ConceptID int

	// Priority orders rules when matches tie; lower is evaluated first.
	Priority int

	Operator expr.Operator

	// DivisorKey restricts key matching to the divisor (operands[1]).
	DivisorKey bool

	// Match reports whether the rule applies. ops always satisfies the
	// ParsedExpression invariants for Operator.
	Match func(ops []int) bool

	// Reason explains a match that did not hit a key operand. Nil for rules
	// that can only match through a key.
	Reason func(ops []int) string
}

// seedDirectRules lists the direct rules, one per concept 1–15.
var seedDirectRules = []DirectRule{
	{ConceptID: 1, Priority: 1, Operator: expr.OpMultiplication, Match: hasOperand(5)},
	{
		ConceptID: 2, Priority: 2, Operator: expr.OpAddition,
		Match: func(ops []int) bool {
			return len(ops) == 2 && ops[0] <= 100 && ops[1] <= 100 &&
				ops[0]%10+ops[1]%10 > 9
		},
		Reason: func(ops []int) string {
			u0, u1 := ops[0]%10, ops[1]%10
			return fmt.Sprintf("As unidades %d e %d somam %d, mais que 9: há transporte", u0, u1, u0+u1)
		},
	},
	{ConceptID: 3, Priority: 3, Operator: expr.OpMultiplication, Match: hasOperand(9)},
	{
		ConceptID: 4, Priority: 4, Operator: expr.OpDivision, DivisorKey: true,
		Match: func(ops []int) bool {
			return ops[1] == 2 && ops[0]%2 == 0
		},
	},
	{ConceptID: 5, Priority: 5, Operator: expr.OpMultiplication, Match: hasOperand(2, 4)},
	{
		ConceptID: 6, Priority: 6, Operator: expr.OpAddition,
		Match: func(ops []int) bool { return len(ops) == 3 },
		Reason: func(ops []int) string {
			return fmt.Sprintf("Soma de três parcelas: %d + %d + %d", ops[0], ops[1], ops[2])
		},
	},
	{
		ConceptID: 7, Priority: 7, Operator: expr.OpSubtraction,
		Match: func(ops []int) bool {
			return ops[0] > ops[1] && ops[0] <= 200 && ops[1] <= 200 &&
				!HasDigitBorrow(ops[0], ops[1])
		},
		Reason: func(ops []int) string {
			return fmt.Sprintf("Nenhum algarismo de %d supera o correspondente de %d: sem empréstimo", ops[1], ops[0])
		},
	},
	{ConceptID: 8, Priority: 8, Operator: expr.OpMultiplication, Match: hasOperand(10, 100)},
	{
		ConceptID: 9, Priority: 9, Operator: expr.OpSubtraction,
		Match: func(ops []int) bool {
			return ops[0] > ops[1] && HasDigitBorrow(ops[0], ops[1])
		},
		Reason: func(ops []int) string {
			return fmt.Sprintf("Empréstimo detectado: um algarismo de %d supera o correspondente de %d", ops[1], ops[0])
		},
	},
	{ConceptID: 10, Priority: 10, Operator: expr.OpMultiplication, Match: hasOperand(3, 6)},
	{ConceptID: 11, Priority: 11, Operator: expr.OpDivision, DivisorKey: true, Match: hasDivisor(3, 6)},
	{ConceptID: 12, Priority: 12, Operator: expr.OpMultiplication, Match: hasOperand(7, 8)},
	{ConceptID: 13, Priority: 13, Operator: expr.OpDivision, DivisorKey: true, Match: hasDivisor(4, 5)},
	{ConceptID: 14, Priority: 14, Operator: expr.OpMultiplication, Match: hasOperand(11)},
	{ConceptID: 15, Priority: 15, Operator: expr.OpDivision, DivisorKey: true, Match: hasDivisor(7, 8)},
}

func hasOperand(keys ...int) func([]int) bool {
	return func(ops []int) bool {
		return slices.ContainsFunc(ops, func(op int) bool {
			return slices.Contains(keys, op)
		})
	}
}

func hasDivisor(keys ...int) func([]int) bool {
	return func(ops []int) bool {
		return slices.Contains(keys, ops[1])
	}
}
