package store

import (
	"context"
	"time"
)

// Source identifies the surface a classification came from.
type Source string

const (
	SourceCLI  Source = "cli"
	SourceHTTP Source = "http"
	SourceTUI  Source = "tui"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// MinCatalog keeps only events recorded with a catalogue version at or
	// above this semver. Classification queries only.
	MinCatalog string
}

// ClassificationEventData is what callers record for one classification.
type ClassificationEventData struct {
	Source         Source
	Raw            string
	Operator       string
	ConceptID      int // 0 when nothing matched or parsing failed
	Confidence     float64
	MatchLayer     string
	LessonNumber   int
	Fallback       bool
	ErrorKind      string // parse error kind, empty on success
	CatalogVersion string
}

// ClassificationEvent is a persisted classification.
type ClassificationEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	ClassificationEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	CostUSD      float64
}

// LLMRequestEvent is a persisted LLM call.
type LLMRequestEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to events. Queries return
// newest first.
type EventRepo interface {
	AppendClassification(ctx context.Context, data ClassificationEventData) (*ClassificationEvent, error)
	QueryClassifications(ctx context.Context, opts QueryOpts) ([]ClassificationEvent, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// Prune deletes all but the keep most recent classification events and
	// returns how many were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
