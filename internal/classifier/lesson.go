package classifier

import (
	"fmt"
	"slices"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

// simpleTableLimit is the operand bound under which every expression is
// treated as a plain times-table fact.
const simpleTableLimit = 12

type lessonBand struct {
	limit  int
	lesson int
}

var (
	productBands = []lessonBand{{30, catalog.LessonEstrutura}, {200, catalog.LessonCompressao}}
	sumBands     = []lessonBand{{100, catalog.LessonEstrutura}, {500, catalog.LessonCompressao}}
)

// selectLesson picks a lesson tier for the top concept from the size of the
// operands that are not the concept's own key.
func selectLesson(conceptID int, ops []int) LessonRecommendation {
	c := catalog.MustLookup(conceptID)
	rec := func(n int, rationale string) LessonRecommendation {
		return LessonRecommendation{
			ConceptID:    conceptID,
			LessonNumber: n,
			LessonName:   catalog.LessonName(n),
			Rationale:    rationale,
		}
	}

	if slices.Max(ops) <= simpleTableLimit {
		return rec(catalog.LessonEstrutura,
			fmt.Sprintf("Todos os operandos são até %d: tabuada simples", simpleTableLimit))
	}

	var bands []lessonBand
	switch c.Operation {
	case expr.OpMultiplication, expr.OpDivision:
		bands = productBands
	case expr.OpAddition, expr.OpSubtraction:
		bands = sumBands
	default:
		return rec(catalog.LessonEstrutura, "Conceito sem operação principal: lição inicial")
	}

	n := magnitude(c, ops)
	for i, b := range bands {
		if n > b.limit {
			continue
		}
		if i == 0 {
			return rec(b.lesson, fmt.Sprintf("Maior operando relevante %d é até %d", n, b.limit))
		}
		return rec(b.lesson, fmt.Sprintf("Maior operando relevante %d está entre %d e %d", n, bands[i-1].limit+1, b.limit))
	}
	last := bands[len(bands)-1].limit
	return rec(catalog.LessonRitmo,
		fmt.Sprintf("Maior operando relevante %d passa de %d", n, last))
}

// magnitude is the largest operand that is not a key operand of c. When every
// operand is a key, the largest operand is used.
func magnitude(c catalog.Concept, ops []int) int {
	rest := slices.DeleteFunc(slices.Clone(ops), c.IsKey)
	if len(rest) == 0 {
		return slices.Max(ops)
	}
	return slices.Max(rest)
}
