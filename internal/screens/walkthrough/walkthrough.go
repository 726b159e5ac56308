// Package walkthrough shows the coach's step-by-step explanation of the
// top-ranked concept.
package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/llm"
	"github.com/abhisek/opclass/internal/screen"
	"github.com/abhisek/opclass/internal/ui/layout"
	"github.com/abhisek/opclass/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type explainedMsg struct {
	wt  *coach.Walkthrough
	err error
}

type spinnerTickMsg time.Time

var _ screen.Screen = (*WalkthroughScreen)(nil)

type WalkthroughScreen struct {
	coach  *coach.Coach
	result classifier.Result

	loading bool
	frame   int
	wt      *coach.Walkthrough
	err     error
}

func New(co *coach.Coach, res classifier.Result) *WalkthroughScreen {
	return &WalkthroughScreen{coach: co, result: res, loading: true}
}

func (s *WalkthroughScreen) Init() tea.Cmd {
	return tea.Batch(s.explain(), spinnerTick())
}

func (s *WalkthroughScreen) Title() string {
	return "Explicação"
}

func (s *WalkthroughScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Voltar"}}
	if s.err != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Tentar de novo"})
	}
	return hints
}

func (s *WalkthroughScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		s.loading = false
		s.wt, s.err = msg.wt, msg.err
		return s, nil

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		if msg.String() == "r" && !s.loading && s.err != nil {
			s.loading, s.err = true, nil
			return s, tea.Batch(s.explain(), spinnerTick())
		}
	}
	return s, nil
}

func (s *WalkthroughScreen) explain() tea.Cmd {
	co, res := s.coach, s.result
	return func() tea.Msg {
		wt, err := co.Explain(context.Background(), res)
		return explainedMsg{wt: wt, err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *WalkthroughScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	if top, ok := s.result.Top(); ok {
		b.WriteString("  " + theme.Title.Render(top.ConceptName) + " " +
			theme.Hint.Render(fmt.Sprintf("· %s", s.result.Expression.Raw())) + "\n\n")
	}

	switch {
	case s.loading:
		b.WriteString("  " + spinnerFrames[s.frame] + " " + theme.Hint.Render("preparando a explicação…") + "\n")
	case s.err != nil:
		b.WriteString("  " + theme.ErrorText.Render(errorText(s.err)) + "\n")
	case s.wt != nil:
		b.WriteString(renderWalkthrough(s.wt, width))
	}
	return b.String()
}

func errorText(err error) string {
	var rl *llm.ErrRateLimit
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return "Nenhum provedor de IA configurado."
	case errors.Is(err, coach.ErrNoConcept):
		return "Nenhum conceito para explicar."
	case errors.As(err, &rl):
		return "Limite do provedor de IA atingido. Tente de novo em instantes."
	default:
		return "Não foi possível gerar a explicação."
	}
}

func renderWalkthrough(wt *coach.Walkthrough, width int) string {
	lines := []string{theme.Body.Bold(true).Render(wt.Title), ""}
	for i, step := range wt.Steps {
		lines = append(lines, fmt.Sprintf("%s %s", theme.Selected.Render(fmt.Sprintf("%d.", i+1)), theme.Body.Render(step)))
	}
	if wt.Check != "" {
		lines = append(lines, "", theme.LessonBadge.Render("Confira: ")+theme.Body.Render(wt.Check))
	}
	card := theme.Card.Width(max(width-6, 40)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.NewStyle().PaddingLeft(2).Render(card) + "\n"
}
