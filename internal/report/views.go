// Package report renders classifier output for terminals and machines:
// styled text, JSON or YAML.
package report

import (
	"errors"
	"time"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/expr"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
)

// ConceptView is the serialised form of a catalogue concept.
type ConceptView struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	ModuleID    int      `json:"moduleId" yaml:"moduleId"`
	ModuleName  string   `json:"moduleName" yaml:"moduleName"`
	Operation   string   `json:"operation,omitempty" yaml:"operation,omitempty"`
	KeyOperands []int    `json:"keyOperands,omitempty" yaml:"keyOperands,omitempty,flow"`
	Weight      float64  `json:"weight" yaml:"weight"`
	Description string   `json:"description" yaml:"description"`
	IsPro       bool     `json:"isPro" yaml:"isPro"`
	HasLesson   bool     `json:"hasLesson" yaml:"hasLesson"`
	Lessons     []string `json:"lessons,omitempty" yaml:"lessons,omitempty"`
}

func NewConceptView(c catalog.Concept) ConceptView {
	v := ConceptView{
		ID:          c.ID,
		Name:        c.Name,
		ModuleID:    int(c.ModuleID),
		ModuleName:  catalog.ModuleName(c.ModuleID),
		Operation:   string(c.Operation),
		KeyOperands: c.KeyOperands,
		Weight:      c.Weight,
		Description: c.Description,
		IsPro:       c.IsPro(),
		HasLesson:   c.HasLesson(),
	}
	if c.HasLesson() {
		for n := catalog.LessonEstrutura; n <= catalog.LessonRitmo; n++ {
			v.Lessons = append(v.Lessons, catalog.LessonName(n))
		}
	}
	return v
}

// ConceptViews lists the catalogue, or one module when module is non-zero.
func ConceptViews(module catalog.ModuleID) []ConceptView {
	concepts := catalog.Concepts()
	if module != 0 {
		concepts = catalog.ConceptsByModule(module)
	}
	out := make([]ConceptView, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, NewConceptView(c))
	}
	return out
}

// ParsedView is the serialised form of a parsed expression.
type ParsedView struct {
	Operands []int  `json:"operands" yaml:"operands,flow"`
	Operator string `json:"operator" yaml:"operator"`
	Raw      string `json:"raw" yaml:"raw"`
}

func NewParsedView(p expr.ParsedExpression) ParsedView {
	return ParsedView{Operands: p.Operands(), Operator: string(p.Operator()), Raw: p.Raw()}
}

// ResultView carries the parsed expression into YAML, which cannot use the
// expression's MarshalJSON.
type ResultView struct {
	Expression ParsedView `json:"expression" yaml:"expression"`
	classifier.Result `yaml:",inline"`
}

func NewResultView(r classifier.Result) ResultView {
	return ResultView{Expression: NewParsedView(r.Expression), Result: r}
}

// ErrorView is the serialised form of a rejected input.
type ErrorView struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// NewErrorView maps a parse failure to its kind and display message. Any
// other error is reported with code "internal".
func NewErrorView(err error) ErrorView {
	var pe *expr.ParseError
	if errors.As(err, &pe) {
		return ErrorView{Code: string(pe.Kind), Message: pe.Message}
	}
	return ErrorView{Code: "internal", Message: err.Error()}
}

// BatchLine is one line of a batch report: exactly one of Result and Error
// is set.
type BatchLine struct {
	Line   int         `json:"line" yaml:"line"`
	Input  string      `json:"input" yaml:"input"`
	Result *ResultView `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *ErrorView  `json:"error,omitempty" yaml:"error,omitempty"`
}

func NewBatchLines(items []service.BatchItem) []BatchLine {
	out := make([]BatchLine, 0, len(items))
	for _, it := range items {
		line := BatchLine{Line: it.Line, Input: it.Input}
		if it.Err != nil {
			ev := NewErrorView(it.Err)
			line.Error = &ev
		} else {
			rv := NewResultView(it.Result)
			line.Result = &rv
		}
		out = append(out, line)
	}
	return out
}

// HistoryView is the serialised form of a stored classification.
type HistoryView struct {
	Sequence     int64   `json:"sequence" yaml:"sequence"`
	Timestamp    string  `json:"timestamp" yaml:"timestamp"`
	Source       string  `json:"source" yaml:"source"`
	Raw          string  `json:"raw" yaml:"raw"`
	ConceptID    int     `json:"conceptId,omitempty" yaml:"conceptId,omitempty"`
	Confidence   float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	MatchLayer   string  `json:"matchLayer,omitempty" yaml:"matchLayer,omitempty"`
	LessonNumber int     `json:"lessonNumber,omitempty" yaml:"lessonNumber,omitempty"`
	Fallback     bool    `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	ErrorKind    string  `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	Catalog      string  `json:"catalogVersion" yaml:"catalogVersion"`
}

func NewHistoryViews(events []store.ClassificationEvent) []HistoryView {
	out := make([]HistoryView, 0, len(events))
	for _, ev := range events {
		out = append(out, HistoryView{
			Sequence:     ev.Sequence,
			Timestamp:    ev.Timestamp.Format(time.RFC3339),
			Source:       string(ev.Source),
			Raw:          ev.Raw,
			ConceptID:    ev.ConceptID,
			Confidence:   ev.Confidence,
			MatchLayer:   ev.MatchLayer,
			LessonNumber: ev.LessonNumber,
			Fallback:     ev.Fallback,
			ErrorKind:    ev.ErrorKind,
			Catalog:      ev.CatalogVersion,
		})
	}
	return out
}

// LLMEventView is the serialised form of a recorded LLM call, without the
// request and response bodies.
type LLMEventView struct {
	Sequence     int64   `json:"sequence" yaml:"sequence"`
	Timestamp    string  `json:"timestamp" yaml:"timestamp"`
	Provider     string  `json:"provider" yaml:"provider"`
	Model        string  `json:"model" yaml:"model"`
	Purpose      string  `json:"purpose" yaml:"purpose"`
	InputTokens  int     `json:"inputTokens" yaml:"inputTokens"`
	OutputTokens int     `json:"outputTokens" yaml:"outputTokens"`
	LatencyMs    int64   `json:"latencyMs" yaml:"latencyMs"`
	CostUSD      float64 `json:"costUsd" yaml:"costUsd"`
	Success      bool    `json:"success" yaml:"success"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func NewLLMEventViews(events []store.LLMRequestEvent) []LLMEventView {
	out := make([]LLMEventView, 0, len(events))
	for _, ev := range events {
		out = append(out, LLMEventView{
			Sequence:     ev.Sequence,
			Timestamp:    ev.Timestamp.Format(time.RFC3339),
			Provider:     ev.Provider,
			Model:        ev.Model,
			Purpose:      ev.Purpose,
			InputTokens:  ev.InputTokens,
			OutputTokens: ev.OutputTokens,
			LatencyMs:    ev.LatencyMs,
			CostUSD:      ev.CostUSD,
			Success:      ev.Success,
			Error:        ev.ErrorMessage,
		})
	}
	return out
}
