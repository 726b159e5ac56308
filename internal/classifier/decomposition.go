package classifier

import (
	"fmt"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

// Fixed layer-2 confidences.
const (
	confScaledKey    = 0.80
	confQuarter      = 0.82
	confFifteen      = 0.78
	confComplement   = 0.75
	confCompensation = 0.72
	confDistributive = 0.65
	confPositional   = 0.60
)

// Concepts reached only through decomposition.
const (
	conceptPatterns     = 16
	conceptAdditive     = 17
	conceptComplements  = 18
	conceptCompensation = 19
	conceptDistributive = 20
	conceptPositional   = 21
)

// compensationSlack is how far below or above a power of ten an operand may
// sit and still be rounded to it.
const compensationSlack = 2

var powersOfTen = []int{10, 100, 1000, 10000, 100000}

// decompositionPattern recognises an expression that reduces to a known
// concept through a mental transformation.
type decompositionPattern struct {
	Name     string
	Operator expr.Operator
	// Apply returns the matches for ops. direct is the number of layer-1
	// matches, for patterns that only apply when no direct rule fired.
	Apply func(ops []int, direct int) []Match
}

// decompositionPatterns are evaluated in this order.
var decompositionPatterns = []decompositionPattern{
	{Name: "scaled-key", Operator: expr.OpMultiplication, Apply: scaledKey},
	{Name: "quarter-hundred", Operator: expr.OpMultiplication, Apply: operandPattern(25, conceptPatterns, confQuarter, "25 = 100 ÷ 4: multiplique por 100 e divida por 4")},
	{Name: "fifteen", Operator: expr.OpMultiplication, Apply: operandPattern(15, conceptAdditive, confFifteen, "15 = 10 + 5: some o produto por 10 com a sua metade")},
	{Name: "decimal-complement", Operator: expr.OpAddition, Apply: decimalComplement},
	{Name: "compensation", Operator: expr.OpSubtraction, Apply: compensation},
	{Name: "distributive", Operator: expr.OpMultiplication, Apply: distributive},
	{Name: "positional", Operator: expr.OpMultiplication, Apply: positional},
}

// decompositionMatches runs every layer-2 pattern for the operator.
func decompositionMatches(p expr.ParsedExpression, direct int) []Match {
	ops := p.Operands()
	var result []Match
	for _, dp := range decompositionPatterns {
		if dp.Operator != p.Operator() {
			continue
		}
		result = append(result, dp.Apply(ops, direct)...)
	}
	return result
}

// scaledKey: a multiple of 10 between 20 and 90 is a key multiplier times 10.
func scaledKey(ops []int, _ int) []Match {
	var result []Match
	for _, op := range ops {
		if op < 20 || op > 90 || op%10 != 0 {
			continue
		}
		id, ok := catalog.MultiplierConcept(op / 10)
		if !ok {
			continue
		}
		reason := fmt.Sprintf("%d = %d × 10: use a técnica do ×%d e acrescente um zero", op, op/10, op/10)
		result = append(result, newMatch(id, confScaledKey, LayerDecomposition, reason))
	}
	return result
}

func operandPattern(value, conceptID int, conf float64, reason string) func([]int, int) []Match {
	return func(ops []int, _ int) []Match {
		for _, op := range ops {
			if op == value {
				return []Match{newMatch(conceptID, conf, LayerDecomposition, reason)}
			}
		}
		return nil
	}
}

// decimalComplement: two addends whose units digits sum to exactly 10.
func decimalComplement(ops []int, _ int) []Match {
	for i := 0; i < len(ops); i++ {
		for j := i + 1; j < len(ops); j++ {
			if ops[i]%10+ops[j]%10 == 10 {
				reason := fmt.Sprintf("As unidades de %d e %d completam 10", ops[i], ops[j])
				return []Match{newMatch(conceptComplements, confComplement, LayerDecomposition, reason)}
			}
		}
	}
	return nil
}

// compensation: an operand 1 or 2 away from a power of ten.
func compensation(ops []int, _ int) []Match {
	for _, op := range ops {
		for _, b := range powersOfTen {
			if d := abs(op - b); d >= 1 && d <= compensationSlack {
				reason := fmt.Sprintf("%d está a %d de %d: arredonde e compense", op, d, b)
				return []Match{newMatch(conceptCompensation, confCompensation, LayerDecomposition, reason)}
			}
		}
	}
	return nil
}

// distributive: two two-digit factors and no direct technique.
func distributive(ops []int, direct int) []Match {
	if direct > 0 {
		return nil
	}
	for _, op := range ops {
		if op < 10 || op > 99 {
			return nil
		}
	}
	reason := fmt.Sprintf("Dois fatores de dois algarismos: separe %d em dezenas e unidades", ops[0])
	return []Match{newMatch(conceptDistributive, confDistributive, LayerDecomposition, reason)}
}

// positional: a factor of three or more digits and no direct technique.
func positional(ops []int, direct int) []Match {
	if direct > 0 {
		return nil
	}
	for _, op := range ops {
		if op >= 100 {
			reason := fmt.Sprintf("Multiplique cada ordem de %d separadamente", op)
			return []Match{newMatch(conceptPositional, confPositional, LayerDecomposition, reason)}
		}
	}
	return nil
}
