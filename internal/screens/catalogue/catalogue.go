// Package catalogue lets the user browse modules and their concepts.
package catalogue

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/screen"
	"github.com/abhisek/opclass/internal/ui/components"
	"github.com/abhisek/opclass/internal/ui/layout"
	"github.com/abhisek/opclass/internal/ui/theme"
)

type pane int

const (
	paneModules pane = iota
	paneConcepts
)

var _ screen.Screen = (*CatalogueScreen)(nil)

type CatalogueScreen struct {
	modules  []catalog.Module
	moduleMn components.Menu
	concepts []catalog.Concept
	conceptM components.Menu
	focus    pane
}

func New() *CatalogueScreen {
	s := &CatalogueScreen{modules: catalog.Modules()}
	items := make([]components.MenuItem, 0, len(s.modules))
	for _, m := range s.modules {
		n := len(catalog.ConceptsByModule(m.ID))
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", m.ID, m.Name),
			Detail: fmt.Sprintf("(%d)", n),
		})
	}
	s.moduleMn = components.NewMenu(items)
	s.loadConcepts()
	return s
}

func (s *CatalogueScreen) Init() tea.Cmd {
	return nil
}

func (s *CatalogueScreen) Title() string {
	return "Catálogo"
}

func (s *CatalogueScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "←→", Description: "Módulos/Conceitos"},
		{Key: "Tab", Description: "Classificar"},
		{Key: "Esc", Description: "Sair"},
	}
}

// SelectedModule returns the highlighted module.
func (s *CatalogueScreen) SelectedModule() catalog.Module {
	return s.modules[s.moduleMn.Selected]
}

// SelectedConcept returns the highlighted concept of the current module.
func (s *CatalogueScreen) SelectedConcept() (catalog.Concept, bool) {
	if len(s.concepts) == 0 {
		return catalog.Concept{}, false
	}
	return s.concepts[s.conceptM.Selected], true
}

func (s *CatalogueScreen) loadConcepts() {
	s.concepts = catalog.ConceptsByModule(s.SelectedModule().ID)
	items := make([]components.MenuItem, 0, len(s.concepts))
	for _, c := range s.concepts {
		label := fmt.Sprintf("%2d  %s", c.ID, c.Name)
		var detail string
		if c.IsPro() {
			detail = "PRO"
		}
		items = append(items, components.MenuItem{Label: label, Detail: detail})
	}
	s.conceptM = components.NewMenu(items)
}

func (s *CatalogueScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "right", "l", "enter":
		if len(s.concepts) > 0 {
			s.focus = paneConcepts
		}
		return s, nil
	case "left", "h":
		s.focus = paneModules
		return s, nil
	}

	if s.focus == paneModules {
		before := s.moduleMn.Selected
		s.moduleMn, _ = s.moduleMn.Update(msg)
		if s.moduleMn.Selected != before {
			s.loadConcepts()
		}
		return s, nil
	}
	s.conceptM, _ = s.conceptM.Update(msg)
	return s, nil
}

func (s *CatalogueScreen) View(width, height int) string {
	leftWidth := 26
	rightWidth := max(width-leftWidth-8, 30)

	left := theme.Title.Render("Módulos") + "\n\n" + s.moduleMn.View()
	right := theme.Title.Render(s.SelectedModule().Name) + "\n\n" + s.conceptM.View()

	leftBox := paneStyle(s.focus == paneModules).Width(leftWidth).Render(left)
	rightBox := paneStyle(s.focus == paneConcepts).Width(rightWidth).Render(right)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftBox, " ", rightBox)

	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().PaddingLeft(2).Render(panes) + "\n")
	if c, ok := s.SelectedConcept(); ok && s.focus == paneConcepts {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(conceptDetail(c, width-6)) + "\n")
	}
	return b.String()
}

func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return theme.Card.BorderForeground(theme.Primary)
	}
	return theme.Card
}

func conceptDetail(c catalog.Concept, width int) string {
	var badges []string
	if c.IsPro() {
		badges = append(badges, theme.ProBadge.Render("PRO"))
	}
	if c.HasLesson() {
		badges = append(badges, theme.LessonBadge.Render("com aulas"))
	}
	if len(c.KeyOperands) > 0 {
		keys := make([]string, len(c.KeyOperands))
		for i, k := range c.KeyOperands {
			keys[i] = fmt.Sprint(k)
		}
		badges = append(badges, theme.Hint.Render("chaves: "+strings.Join(keys, ", ")))
	}
	body := theme.Body.Render(c.Description)
	if len(badges) > 0 {
		body = strings.Join(badges, "  ") + "\n" + body
	}
	return theme.Card.Width(max(width, 40)).Render(body)
}
