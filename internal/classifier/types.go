package classifier

import (
	"fmt"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

// Layer records which rule layer produced a match.
type Layer string

const (
	LayerDirect        Layer = "direct"
	LayerDecomposition Layer = "decomposition"
	LayerHeuristic     Layer = "heuristic"
)

// Match is one concept the expression exercises.
type Match struct {
	ConceptID   int              `json:"conceptId" yaml:"conceptId"`
	ConceptName string           `json:"conceptName" yaml:"conceptName"`
	ModuleID    catalog.ModuleID `json:"moduleId" yaml:"moduleId"`
	ModuleName  string           `json:"moduleName" yaml:"moduleName"`
	Confidence  float64          `json:"confidence" yaml:"confidence"` // 0.0–1.0, two decimals in a Result
	Reason      string           `json:"reason" yaml:"reason"`
	MatchLayer  Layer            `json:"matchLayer" yaml:"matchLayer"`
	IsPro       bool             `json:"isPro" yaml:"isPro"`
	HasLesson   bool             `json:"hasLesson" yaml:"hasLesson"`
}

// newMatch fills the catalogue-derived fields for conceptID.
func newMatch(conceptID int, confidence float64, layer Layer, reason string) Match {
	c := catalog.MustLookup(conceptID)
	return Match{
		ConceptID:   c.ID,
		ConceptName: c.Name,
		ModuleID:    c.ModuleID,
		ModuleName:  catalog.ModuleName(c.ModuleID),
		Confidence:  confidence,
		Reason:      reason,
		MatchLayer:  layer,
		IsPro:       c.IsPro(),
		HasLesson:   c.HasLesson(),
	}
}

// LessonRecommendation is the lesson tier suggested for the top match.
type LessonRecommendation struct {
	ConceptID    int    `json:"conceptId" yaml:"conceptId"`
	LessonNumber int    `json:"lessonNumber" yaml:"lessonNumber"`
	LessonName   string `json:"lessonName" yaml:"lessonName"`
	Rationale    string `json:"rationale" yaml:"rationale"`
}

// Result is the outcome of classifying one expression. Exactly one of
// RecommendedLesson and FallbackMessage is set: the fallback iff Matches is
// empty.
type Result struct {
	Expression        expr.ParsedExpression `json:"expression" yaml:"-"`
	Matches           []Match               `json:"matches" yaml:"matches"`
	RecommendedLesson *LessonRecommendation `json:"recommendedLesson,omitempty" yaml:"recommendedLesson,omitempty"`
	FallbackMessage   string                `json:"fallbackMessage,omitempty" yaml:"fallbackMessage,omitempty"`
}

// Top returns the highest-ranked match, if any.
func (r Result) Top() (Match, bool) {
	if len(r.Matches) == 0 {
		return Match{}, false
	}
	return r.Matches[0], true
}

// ClassificationError is returned by Classify when the input does not parse.
// It always wraps a *expr.ParseError.
type ClassificationError struct {
	Err *expr.ParseError
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Kind returns the kind of the underlying parse error.
func (e *ClassificationError) Kind() expr.ErrorKind {
	return e.Err.Kind
}
