// Package screen defines the contract between the TUI shell and its views.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/opclass/internal/ui/layout"
)

// Screen is one view in the TUI navigation stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field, so
// single-letter shortcuts are not stolen from the user's typing.
type InputCapturer interface {
	CapturesInput() bool
}
