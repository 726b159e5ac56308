package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/opclass/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "classificar"})

	s2 := &stubScreen{title: "explicação"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "explicação" {
		t.Errorf("expected active 'explicação', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "classificar"})
	r.Push(&stubScreen{title: "explicação"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "classificar" {
		t.Errorf("expected active 'classificar', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "classificar"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestResetScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "classificar"})
	r.Push(&stubScreen{title: "explicação"})

	cat := &stubScreen{title: "catálogo"}
	r.Update(ResetScreenMsg{Screen: cat})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Root().Title() != "catálogo" {
		t.Errorf("expected root 'catálogo', got %q", r.Root().Title())
	}
	if !cat.initRan {
		t.Error("expected Init() to run via ResetScreenMsg")
	}
}

func TestUpdateReachesOnlyActive(t *testing.T) {
	bottom := &stubScreen{title: "classificar"}
	top := &stubScreen{title: "explicação"}
	r := New(bottom)
	r.Push(top)

	r.Update(pingMsg{})

	if len(top.got) != 1 {
		t.Errorf("expected active screen to get 1 message, got %d", len(top.got))
	}
	if len(bottom.got) != 0 {
		t.Errorf("expected bottom screen to get no messages, got %d", len(bottom.got))
	}
	if r.View(80, 24) != "explicação" {
		t.Errorf("expected view of active screen, got %q", r.View(80, 24))
	}
}
