// Package coach asks a language model for a short mental-math walkthrough of
// the technique a classification picked. It never changes the
// classification itself.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/llm"
)

// ErrNoConcept is returned for results that fell back to the generic
// message; there is no technique to explain.
var ErrNoConcept = errors.New("expression matched no concept")

// Walkthrough is a step-by-step explanation in Portuguese.
type Walkthrough struct {
	ConceptID int      `json:"conceptId" yaml:"conceptId"`
	Title     string   `json:"title" yaml:"title"`
	Steps     []string `json:"steps" yaml:"steps"`
	Check     string   `json:"check" yaml:"check"`
}

type Config struct {
	MaxTokens   int
	Temperature float64
	MaxSteps    int
	Timeout     time.Duration // 0 leaves ctx untouched
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.3,
		MaxSteps:    maxSchemaSteps,
		Timeout:     30 * time.Second,
	}
}

// Coach generates walkthroughs. A Coach with a nil provider reports
// llm.ErrNotConfigured from every call.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

func New(provider llm.Provider, cfg Config) *Coach {
	if cfg.MaxSteps <= 0 || cfg.MaxSteps > maxSchemaSteps {
		cfg.MaxSteps = maxSchemaSteps
	}
	return &Coach{provider: provider, cfg: cfg}
}

// Available reports whether a provider is configured.
func (c *Coach) Available() bool {
	return c != nil && c.provider != nil
}

// Explain returns a walkthrough of the top match of res applied to its
// expression.
func (c *Coach) Explain(ctx context.Context, res classifier.Result) (*Walkthrough, error) {
	if !c.Available() {
		return nil, llm.ErrNotConfigured
	}
	top, ok := res.Top()
	if !ok {
		return nil, ErrNoConcept
	}
	concept := catalog.MustLookup(top.ConceptID)

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeCoach)

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(res, concept)}},
		Schema:      WalkthroughSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("walkthrough generation: %w", err)
	}

	var w Walkthrough
	if err := json.Unmarshal(resp.Content, &w); err != nil {
		return nil, fmt.Errorf("parse walkthrough: %w", err)
	}
	w.ConceptID = concept.ID
	w.Title = strings.TrimSpace(w.Title)
	w.Check = strings.TrimSpace(w.Check)
	w.Steps = tidySteps(w.Steps, c.cfg.MaxSteps)
	if len(w.Steps) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("walkthrough has no steps")}
	}
	return &w, nil
}

// tidySteps drops blank steps and keeps at most max.
func tidySteps(steps []string, max int) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == max {
			break
		}
	}
	return out
}
