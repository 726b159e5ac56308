package classifier

import (
	"fmt"
	"slices"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

const (
	directBase       = 0.90
	directExact      = 1.00
	directFloor      = 0.70
	magnitudePenalty = 0.05
)

// directMatches runs every layer-1 rule for the expression's operator.
func directMatches(p expr.ParsedExpression) []Match {
	ops := p.Operands()
	var result []Match
	for _, r := range catalog.DirectRules() {
		if r.Operator != p.Operator() || !r.Match(ops) {
			continue
		}
		c := catalog.MustLookup(r.ConceptID)

		key, hasKey := matchedKey(r, c, ops)
		conf := directBase
		if hasKey {
			conf = directExact
		}
		conf -= penalty(otherOperand(r, ops, key, hasKey))
		conf = max(conf, directFloor)

		var reason string
		switch {
		case hasKey && r.DivisorKey:
			reason = fmt.Sprintf("O divisor é %d", key)
		case hasKey:
			reason = fmt.Sprintf("Um dos operandos é %d", key)
		default:
			reason = r.Reason(ops)
		}

		result = append(result, newMatch(c.ID, conf, LayerDirect, reason))
	}
	return result
}

// matchedKey returns the first key operand present in ops. Divisor-keyed
// rules only look at operands[1].
func matchedKey(r catalog.DirectRule, c catalog.Concept, ops []int) (int, bool) {
	if r.DivisorKey {
		if c.IsKey(ops[1]) {
			return ops[1], true
		}
		return 0, false
	}
	for _, op := range ops {
		if c.IsKey(op) {
			return op, true
		}
	}
	return 0, false
}

// otherOperand is the largest operand left after removing one occurrence of
// the key. Without a key it is the largest operand.
func otherOperand(r catalog.DirectRule, ops []int, key int, hasKey bool) int {
	if !hasKey {
		return slices.Max(ops)
	}
	if r.DivisorKey {
		return ops[0]
	}
	rest := slices.Clone(ops)
	i := slices.Index(rest, key)
	rest = slices.Delete(rest, i, i+1)
	return slices.Max(rest)
}

// penalty lowers confidence for large non-key operands.
func penalty(n int) float64 {
	var p float64
	if n > 1000 {
		p += magnitudePenalty
	}
	if n > 10000 {
		p += magnitudePenalty
	}
	return p
}
