// Package service wraps the pure classifier for the CLI, HTTP and TUI
// surfaces: it logs each classification and records it in history.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/expr"
	"github.com/abhisek/opclass/internal/logger"
	"github.com/abhisek/opclass/internal/store"
)

// Service classifies expressions and records the outcome.
type Service struct {
	log     *logger.Logger
	events  store.EventRepo // nil disables history
	workers int
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every classification in repo.
func WithHistory(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// WithWorkers bounds the concurrency of ClassifyBatch.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a Service. A nil logger discards logs.
func New(log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{log: log, workers: 4}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify classifies raw. Parse failures come back as
// *classifier.ClassificationError; history failures are logged and never
// returned.
func (s *Service) Classify(ctx context.Context, raw string, source store.Source) (classifier.Result, error) {
	result, err := classifier.Classify(raw)

	data := store.ClassificationEventData{
		Source:         source,
		Raw:            raw,
		CatalogVersion: catalog.Version,
	}
	if err != nil {
		var ce *classifier.ClassificationError
		if errors.As(err, &ce) {
			data.ErrorKind = string(ce.Kind())
		}
		s.log.Debug("classification rejected", "source", source, "input", raw, "kind", data.ErrorKind)
	} else {
		data.Operator = string(result.Expression.Operator())
		if top, ok := result.Top(); ok {
			data.ConceptID = top.ConceptID
			data.Confidence = top.Confidence
			data.MatchLayer = string(top.MatchLayer)
			data.LessonNumber = result.RecommendedLesson.LessonNumber
		} else {
			data.Fallback = true
		}
		s.log.Debug("classified",
			"source", source,
			"input", raw,
			"concept", data.ConceptID,
			"confidence", data.Confidence,
			"layer", data.MatchLayer,
			"matches", len(result.Matches),
		)
	}

	s.record(ctx, data)
	return result, err
}

func (s *Service) record(ctx context.Context, data store.ClassificationEventData) {
	if s.events == nil {
		return
	}
	if _, err := s.events.AppendClassification(ctx, data); err != nil {
		s.log.Warn("failed to record classification", "input", data.Raw, "error", err)
	}
}

// BatchItem is the outcome for one line of a batch.
type BatchItem struct {
	Line   int // 1-based position in the input
	Input  string
	Result classifier.Result
	Err    error // parse failure for this line only
}

// ClassifyBatch classifies every input concurrently and returns the items in
// input order. progress, when non-nil, is called once per finished item and
// may be called from several goroutines. Per-line parse failures are stored
// in the item; the returned error is only set when ctx is cancelled.
func (s *Service) ClassifyBatch(ctx context.Context, inputs []string, source store.Source, progress func(done int)) ([]BatchItem, error) {
	items := make([]BatchItem, len(inputs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.Classify(gctx, in, source)
			items[i] = BatchItem{Line: i + 1, Input: in, Result: res, Err: err}
			if progress != nil {
				progress(int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch classification: %w", err)
	}

	s.log.Info("batch classified", "items", len(items), "failed", countFailed(items))
	return items, nil
}

func countFailed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// Parse exposes the parser for callers that only need structural extraction.
func (s *Service) Parse(raw string) (expr.ParsedExpression, error) {
	return expr.Parse(raw)
}
