package walkthrough

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/llm"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
)

func classified(t *testing.T, input string) classifier.Result {
	t.Helper()
	res, err := service.New(nil).Classify(context.Background(), input, store.SourceTUI)
	if err != nil {
		t.Fatalf("classify %q: %v", input, err)
	}
	return res
}

func TestWalkthrough_Loads(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"title":"Vezes 5","steps":["5 × 14 = 10 × 14 ÷ 2","140 ÷ 2 = 70"],"check":"70 ÷ 5 = 14"}`),
	})
	s := New(coach.New(mock, coach.DefaultConfig()), classified(t, "5 × 14"))

	if !strings.Contains(ansi.Strip(s.View(100, 30)), "preparando") {
		t.Error("expected loading text before the response")
	}

	msg := s.explain()()
	s.Update(msg)

	if s.loading {
		t.Error("expected loading to finish")
	}
	view := ansi.Strip(s.View(100, 30))
	for _, want := range []string{"Multiplicação por 5", "Vezes 5", "1. 5 × 14", "2. 140", "Confira"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestWalkthrough_ErrorAndRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
		llm.MockResponse{Content: json.RawMessage(`{"title":"t","steps":["a"],"check":"c"}`)},
	)
	s := New(coach.New(mock, coach.DefaultConfig()), classified(t, "5 × 14"))

	s.Update(s.explain()())
	if s.err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Limite") {
		t.Error("expected rate limit message")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil || !s.loading {
		t.Fatal("expected retry to start loading")
	}
	s.Update(s.explain()())
	if s.err != nil || s.wt == nil {
		t.Errorf("expected walkthrough after retry, err = %v", s.err)
	}
}

func TestWalkthrough_SpinnerStopsAfterLoad(t *testing.T) {
	s := New(nil, classifier.Result{})
	if _, cmd := s.Update(spinnerTickMsg{}); cmd == nil {
		t.Error("expected spinner to keep ticking while loading")
	}
	s.Update(explainedMsg{err: llm.ErrNotConfigured})
	if _, cmd := s.Update(spinnerTickMsg{}); cmd != nil {
		t.Error("expected spinner to stop after load")
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Nenhum provedor") {
		t.Error("expected not-configured message")
	}
}
