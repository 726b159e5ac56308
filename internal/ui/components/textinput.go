package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/opclass/internal/ui/theme"
)

// ExpressionInput is a single-line input for arithmetic expressions that
// remembers whether the last submission was accepted.
type ExpressionInput struct {
	Model   textinput.Model
	outcome int // 0 none, 1 accepted, -1 rejected
}

func NewExpressionInput(placeholder string, limit int) ExpressionInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return ExpressionInput{Model: ti}
}

func (e ExpressionInput) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update forwards msg to the input. Editing clears the last outcome mark.
func (e ExpressionInput) Update(msg tea.Msg) (ExpressionInput, tea.Cmd) {
	before := e.Model.Value()
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	if e.Model.Value() != before {
		e.outcome = 0
	}
	return e, cmd
}

func (e ExpressionInput) View() string {
	view := e.Model.View()
	switch e.outcome {
	case 1:
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case -1:
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

func (e ExpressionInput) Value() string {
	return e.Model.Value()
}

// Mark records whether the submitted value was accepted.
func (e *ExpressionInput) Mark(accepted bool) {
	if accepted {
		e.outcome = 1
	} else {
		e.outcome = -1
	}
}
