package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/opclass/internal/ui/theme"
)

// ConfidenceBar draws a 0–1 confidence as a fixed-width bar followed by the
// value with two decimals.
type ConfidenceBar struct {
	Value float64
	Width int // bar cells, excluding the numeric label
}

func NewConfidenceBar(value float64, width int) ConfidenceBar {
	return ConfidenceBar{Value: value, Width: width}
}

func (b ConfidenceBar) View() string {
	width := max(b.Width, 4)
	filled := int(float64(width)*b.Value + 0.5)
	filled = min(max(filled, 0), width)

	return theme.ConfidenceFilled.Render(strings.Repeat("█", filled)) +
		theme.ConfidenceEmpty.Render(strings.Repeat("░", width-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %.2f", b.Value))
}
