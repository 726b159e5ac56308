package classifier

import (
	"fmt"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

const (
	confNearKey    = 0.45
	confCarryGuess = 0.40

	// heuristicMinSignal is the number of layer-1/2 matches at which the
	// heuristic layer is skipped.
	heuristicMinSignal = 2

	// nearDistance is the largest distance to a key factor still reported.
	nearDistance = 1

	conceptCarry = 2
)

// heuristicMatches makes proximity guesses. Callers only invoke it when the
// earlier layers found fewer than heuristicMinSignal matches.
func heuristicMatches(p expr.ParsedExpression) []Match {
	ops := p.Operands()
	switch p.Operator() {
	case expr.OpMultiplication:
		small := min(ops[0], ops[1])
		key, d := nearest(small, catalog.KeyMultipliers())
		if d > nearDistance {
			return nil
		}
		id, _ := catalog.MultiplierConcept(key)
		reason := fmt.Sprintf("O fator %d está próximo de %d", small, key)
		return []Match{newMatch(id, confNearKey, LayerHeuristic, reason)}

	case expr.OpAddition:
		if len(ops) != 2 {
			return nil
		}
		if u := ops[0]%10 + ops[1]%10; u >= 10 {
			reason := fmt.Sprintf("As unidades somam %d: provável transporte", u)
			return []Match{newMatch(conceptCarry, confCarryGuess, LayerHeuristic, reason)}
		}
		return nil

	case expr.OpDivision:
		divisor := ops[1]
		if divisor == 0 || ops[0]%divisor != 0 {
			return nil
		}
		key, d := nearest(divisor, catalog.KeyDivisors())
		if d > nearDistance {
			return nil
		}
		id, _ := catalog.DivisorConcept(key)
		reason := fmt.Sprintf("Divisão exata com divisor %d, próximo de %d", divisor, key)
		return []Match{newMatch(id, confNearKey, LayerHeuristic, reason)}
	}
	return nil
}

// nearest returns the element of keys (ascending) closest to n and its
// distance. Ties go to the smaller key.
func nearest(n int, keys []int) (int, int) {
	best, bestD := keys[0], abs(n-keys[0])
	for _, k := range keys[1:] {
		if d := abs(n - k); d < bestD {
			best, bestD = k, d
		}
	}
	return best, bestD
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
