package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Badges
var (
	ProBadge = lipgloss.NewStyle().
			Foreground(BgCard).
			Background(Accent).
			Bold(true).
			Padding(0, 1)

	LessonBadge = lipgloss.NewStyle().
			Foreground(Success)

	ConfidenceFilled = lipgloss.NewStyle().
				Foreground(Secondary)

	ConfidenceEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// layerColors tints the match layer label.
var layerColors = map[string]lipgloss.Style{
	"direct":        lipgloss.NewStyle().Foreground(Success),
	"decomposition": lipgloss.NewStyle().Foreground(Secondary),
	"heuristic":     lipgloss.NewStyle().Foreground(Accent),
}

// Layer styles a match layer name.
func Layer(name string) string {
	if s, ok := layerColors[name]; ok {
		return s.Render(name)
	}
	return Hint.Render(name)
}
