// Package classifier maps a parsed arithmetic expression to the mental-math
// concepts it exercises.
//
// Classification runs three rule layers of decreasing precision (direct,
// decomposition, heuristic), merges and ranks the candidates, and recommends
// a lesson tier for the best one. It is a pure function of its input and the
// read-only catalogue, so it is safe for concurrent use.
package classifier

import (
	"errors"

	"github.com/abhisek/opclass/internal/expr"
)

// Classify parses raw and classifies it. A parse failure is returned as a
// *ClassificationError; a successful parse always yields a Result.
func Classify(raw string) (Result, error) {
	p, err := expr.Parse(raw)
	if err != nil {
		var pe *expr.ParseError
		if !errors.As(err, &pe) {
			pe = &expr.ParseError{Kind: expr.KindInvalidFormat, Message: err.Error(), Input: raw}
		}
		return Result{}, &ClassificationError{Err: pe}
	}
	return ClassifyParsed(p), nil
}

// ClassifyParsed classifies an already parsed expression.
func ClassifyParsed(p expr.ParsedExpression) Result {
	direct := directMatches(p)
	decomposed := decompositionMatches(p, len(direct))

	candidates := make([]Match, 0, len(direct)+len(decomposed)+1)
	candidates = append(candidates, direct...)
	candidates = append(candidates, decomposed...)
	if len(candidates) < heuristicMinSignal {
		candidates = append(candidates, heuristicMatches(p)...)
	}

	result := Result{
		Expression: p,
		Matches:    rank(candidates),
	}
	if top, ok := result.Top(); ok {
		lesson := selectLesson(top.ConceptID, p.Operands())
		result.RecommendedLesson = &lesson
	} else {
		result.Matches = []Match{}
		result.FallbackMessage = fallbackMessage(p.Operator())
	}
	return result
}
