package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/opclass/internal/logger"
	"github.com/abhisek/opclass/internal/store"
)

type loggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo // nil skips persistence
	log      *logger.Logger
}

// WithLogging logs every call and, when repo is set, records it as an
// LLMRequestEvent with token usage and estimated cost.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &loggingProvider{inner: p, provider: provider, repo: repo, log: log}
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
		data.CostUSD = l.cost(data.Model, resp.Usage)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"provider", l.provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "error", err)
	} else {
		l.log.Debug("llm request",
			"provider", l.provider, "model", data.Model, "purpose", data.Purpose,
			"latency_ms", data.LatencyMs, "input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens, "cost_usd", data.CostUSD)
	}

	if l.repo != nil {
		if rerr := l.repo.AppendLLMRequest(ctx, data); rerr != nil {
			l.log.Warn("failed to record llm request", "error", rerr)
		}
	}
	return resp, err
}

// cost prices the served model, falling back to the configured one since
// providers often answer with a dated snapshot id.
func (l *loggingProvider) cost(model string, u Usage) float64 {
	if c, ok := LookupCost(model); ok {
		return c.Cost(u.InputTokens, u.OutputTokens)
	}
	if c, ok := LookupCost(l.inner.ModelID()); ok {
		return c.Cost(u.InputTokens, u.OutputTokens)
	}
	return 0
}

func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
