package classifier

import (
	"cmp"
	"math"
	"slices"

	"github.com/abhisek/opclass/internal/catalog"
)

const (
	// ambiguityGap is the top-two confidence gap under which both are capped.
	ambiguityGap = 0.10
	ambiguityCap = 0.85

	// epsilon absorbs float error so a gap of exactly 0.10 is not capped.
	epsilon = 1e-9
)

// rank turns raw candidates into the final ordered list. Every stage returns
// a new slice; the input is not modified.
func rank(candidates []Match) []Match {
	ms := dedupe(candidates)
	ms = weigh(ms)
	ms = sortByConfidence(ms)
	ms = capAmbiguity(ms)
	ms = roundConfidences(ms)
	return sortByConfidence(ms)
}

// dedupe keeps one match per concept: the most confident, or the earliest on
// a tie. Concepts keep the position of their first appearance.
func dedupe(ms []Match) []Match {
	result := make([]Match, 0, len(ms))
	index := make(map[int]int, len(ms))
	for _, m := range ms {
		i, seen := index[m.ConceptID]
		if !seen {
			index[m.ConceptID] = len(result)
			result = append(result, m)
			continue
		}
		if m.Confidence > result[i].Confidence {
			result[i] = m
		}
	}
	return result
}

// weigh applies each concept's specificity weight, clamped to 1.
func weigh(ms []Match) []Match {
	result := make([]Match, len(ms))
	for i, m := range ms {
		w := catalog.MustLookup(m.ConceptID).Weight
		m.Confidence = min(m.Confidence*w, 1.0)
		result[i] = m
	}
	return result
}

// sortByConfidence orders by descending confidence, keeping the existing
// order among equals.
func sortByConfidence(ms []Match) []Match {
	result := slices.Clone(ms)
	slices.SortStableFunc(result, func(a, b Match) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return result
}

// capAmbiguity limits the top two confidences when they are too close to
// call. ms must be sorted.
func capAmbiguity(ms []Match) []Match {
	result := slices.Clone(ms)
	if len(result) < 2 || result[0].Confidence-result[1].Confidence >= ambiguityGap-epsilon {
		return result
	}
	limit := min(result[0].Confidence, ambiguityCap)
	result[0].Confidence = min(result[0].Confidence, limit)
	result[1].Confidence = min(result[1].Confidence, limit)
	return result
}

func roundConfidences(ms []Match) []Match {
	result := make([]Match, len(ms))
	for i, m := range ms {
		m.Confidence = round2(m.Confidence)
		result[i] = m
	}
	return result
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
