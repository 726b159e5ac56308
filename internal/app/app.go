// Package app is the Bubble Tea shell: header, footer and the screen stack.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/router"
	"github.com/abhisek/opclass/internal/screen"
	"github.com/abhisek/opclass/internal/screens/catalogue"
	"github.com/abhisek/opclass/internal/screens/classify"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/ui/layout"
)

// Options holds the dependencies screens need.
type Options struct {
	Service *service.Service
	Coach   *coach.Coach // nil disables walkthroughs
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		opts:   opts,
		router: router.New(classify.New(opts.Service, opts.Coach)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) onCatalogue() bool {
	_, ok := m.router.Root().(*catalogue.CatalogueScreen)
	return ok
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, tea.Quit
		case "q":
			if c, ok := m.router.Active().(screen.InputCapturer); !ok || !c.CapturesInput() {
				return m, tea.Quit
			}
		case "tab":
			var next screen.Screen
			if m.onCatalogue() {
				next = classify.New(m.opts.Service, m.opts.Coach)
			} else {
				next = catalogue.New()
			}
			return m, m.router.Reset(next)
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	tabs := []layout.Tab{
		{Label: "Classificar", Active: !m.onCatalogue()},
		{Label: "Catálogo", Active: m.onCatalogue()},
	}
	active := m.router.Active()
	if m.router.Depth() > 1 {
		tabs = append(tabs, layout.Tab{Label: active.Title(), Active: true})
		tabs[0].Active, tabs[1].Active = false, false
	}
	header := layout.RenderHeader(tabs, catalog.Version, m.width)

	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Alternar"},
		{Key: "Esc", Description: "Sair"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the interactive program and blocks until the user quits.
func Run(opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("app: service is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
