package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// eventRepo implements EventRepo with ent's SQL builders on top of the
// store's driver.
type eventRepo struct {
	store *Store
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) exec(ctx context.Context, query string, args []any) (sql.Result, error) {
	var res sql.Result
	if err := r.store.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *eventRepo) AppendClassification(ctx context.Context, data ClassificationEventData) (*ClassificationEvent, error) {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	ev := &ClassificationEvent{
		ID:                      uuid.NewString(),
		Sequence:                seqNum,
		Timestamp:               r.store.now().Truncate(time.Millisecond),
		ClassificationEventData: data,
	}

	query, args := builder().Insert(tableClassifications).
		Columns("id", "sequence", "timestamp", "source", "raw", "operator",
			"concept_id", "confidence", "match_layer", "lesson_number",
			"fallback", "error_kind", "catalog_version").
		Values(ev.ID, ev.Sequence, ev.Timestamp.UnixMilli(), string(data.Source), data.Raw, data.Operator,
			data.ConceptID, data.Confidence, data.MatchLayer, data.LessonNumber,
			data.Fallback, data.ErrorKind, data.CatalogVersion).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return nil, fmt.Errorf("save classification event: %w", err)
	}
	return ev, nil
}

func (r *eventRepo) QueryClassifications(ctx context.Context, opts QueryOpts) ([]ClassificationEvent, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "source", "raw", "operator",
		"concept_id", "confidence", "match_layer", "lesson_number",
		"fallback", "error_kind", "catalog_version").
		From(b.Table(tableClassifications))
	applyOpts(sel, opts, opts.MinCatalog == "")

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query classification events: %w", err)
	}
	defer rows.Close()

	var events []ClassificationEvent
	for rows.Next() {
		var (
			ev     ClassificationEvent
			ts     int64
			source string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &source, &ev.Raw, &ev.Operator,
			&ev.ConceptID, &ev.Confidence, &ev.MatchLayer, &ev.LessonNumber,
			&ev.Fallback, &ev.ErrorKind, &ev.CatalogVersion); err != nil {
			return nil, fmt.Errorf("scan classification event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		ev.Source = Source(source)

		// Catalogue versions are semver, which SQL cannot order.
		if opts.MinCatalog != "" && semver.Compare(ev.CatalogVersion, opts.MinCatalog) < 0 {
			continue
		}
		events = append(events, ev)
		if opts.Limit > 0 && len(events) == opts.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableLLMRequests).
		Columns("id", "sequence", "timestamp", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success",
			"error_message", "request_body", "response_body", "cost_usd").
		Values(uuid.NewString(), seqNum, r.store.now().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody, data.CostUSD).
		Query()
	if _, err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "provider", "model", "purpose",
		"input_tokens", "output_tokens", "latency_ms", "success",
		"error_message", "request_body", "response_body", "cost_usd").
		From(b.Table(tableLLMRequests))
	applyOpts(sel, opts, true)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var (
			ev LLMRequestEvent
			ts int64
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success,
			&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody, &ev.CostUSD); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}

	// Find the newest sequence that falls outside the window.
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(tableClassifications)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()

	var rows entsql.Rows
	if err := r.store.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("find prune cutoff: %w", err)
	}
	var cutoff int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&cutoff); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan prune cutoff: %w", err)
		}
	}
	rows.Close()
	if !found {
		return 0, nil
	}

	query, args = b.Delete(tableClassifications).
		Where(entsql.LTE("sequence", cutoff)).
		Query()
	res, err := r.exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("prune classification events: %w", err)
	}
	return res.RowsAffected()
}

// applyOpts adds the sequence and time filters, newest-first ordering and,
// when withLimit is set, the row limit.
func applyOpts(sel *entsql.Selector, opts QueryOpts, withLimit bool) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if withLimit && opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
