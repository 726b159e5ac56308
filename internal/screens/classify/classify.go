// Package classify is the TUI screen that classifies typed expressions.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/router"
	"github.com/abhisek/opclass/internal/screen"
	"github.com/abhisek/opclass/internal/screens/walkthrough"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
	"github.com/abhisek/opclass/internal/ui/components"
	"github.com/abhisek/opclass/internal/ui/layout"
	"github.com/abhisek/opclass/internal/ui/theme"
)

const classifyTimeout = 5 * time.Second

// classifiedMsg carries the outcome of one classification back to the screen.
type classifiedMsg struct {
	input string
	res   classifier.Result
	err   error
}

var _ screen.Screen = (*ClassifyScreen)(nil)

type ClassifyScreen struct {
	svc   *service.Service
	coach *coach.Coach

	input   components.ExpressionInput
	pending bool
	last    *classifier.Result
	errMsg  string
}

// New creates the screen. co may be nil.
func New(svc *service.Service, co *coach.Coach) *ClassifyScreen {
	return &ClassifyScreen{
		svc:   svc,
		coach: co,
		input: components.NewExpressionInput("ex.: 48 + 37", 64),
	}
}

func (s *ClassifyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ClassifyScreen) Title() string {
	return "Classificar"
}

func (s *ClassifyScreen) CapturesInput() bool {
	return true
}

func (s *ClassifyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Classificar"},
		{Key: "Tab", Description: "Catálogo"},
	}
	if s.canExplain() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explicar"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Sair"})
}

func (s *ClassifyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case classifiedMsg:
		s.pending = false
		if msg.err != nil {
			s.last = nil
			s.errMsg = report.NewErrorView(msg.err).Message
			s.input.Mark(false)
			return s, nil
		}
		s.last = &msg.res
		s.errMsg = ""
		s.input.Mark(true)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.pending {
				return s, nil
			}
			s.pending = true
			return s, s.classify(s.input.Value())
		case "ctrl+e":
			if !s.canExplain() {
				return s, nil
			}
			next := walkthrough.New(s.coach, *s.last)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ClassifyScreen) canExplain() bool {
	return s.coach.Available() && s.last != nil && len(s.last.Matches) > 0
}

func (s *ClassifyScreen) classify(raw string) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
		defer cancel()
		res, err := svc.Classify(ctx, raw, store.SourceTUI)
		return classifiedMsg{input: raw, res: res, err: err}
	}
}

func (s *ClassifyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n  " + theme.Title.Render("Expressão") + "\n\n")
	b.WriteString("  " + s.input.View() + "\n\n")

	switch {
	case s.pending:
		b.WriteString("  " + theme.Hint.Render("classificando…") + "\n")
	case s.errMsg != "":
		b.WriteString("  " + theme.ErrorText.Render(s.errMsg) + "\n")
	case s.last != nil:
		b.WriteString(renderResult(*s.last, width))
	default:
		b.WriteString("  " + theme.Hint.Render("Digite uma conta com + - × ÷ e tecle Enter.") + "\n")
	}
	return b.String()
}

func renderResult(res classifier.Result, width int) string {
	if len(res.Matches) == 0 {
		return "  " + theme.Hint.Render(res.FallbackMessage) + "\n"
	}

	barWidth := 20
	if layout.IsCompactWidth(width) {
		barWidth = 10
	}
	cardWidth := max(width-6, 40)

	var cards []string
	for i, m := range res.Matches {
		head := fmt.Sprintf("%d. %s", i+1, theme.Body.Bold(true).Render(m.ConceptName))
		if m.IsPro {
			head += " " + theme.ProBadge.Render("PRO")
		}
		meta := theme.Hint.Render(fmt.Sprintf("#%d · %s · ", m.ConceptID, m.ModuleName)) + theme.Layer(string(m.MatchLayer))
		bar := components.NewConfidenceBar(m.Confidence, barWidth).View()
		body := lipgloss.JoinVertical(lipgloss.Left, head, meta, bar, theme.Body.Render(m.Reason))
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	if rec := res.RecommendedLesson; rec != nil {
		out += "\n" + theme.LessonBadge.Render(fmt.Sprintf("Aula %d · %s", rec.LessonNumber, rec.LessonName)) +
			"  " + theme.Hint.Render(rec.Rationale)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(out) + "\n"
}
