package components

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestAnswerInput_DigitsOnly(t *testing.T) {
	a := NewAnswerInput()
	a.Focus()
	for _, r := range "4x2a" {
		a, _ = a.Update(key(r))
	}
	if a.Value() != "42" {
		t.Fatalf("Value = %q, want %q", a.Value(), "42")
	}
}

func TestAnswerInput_GradedIsReadOnly(t *testing.T) {
	a := NewAnswerInput()
	a.Focus()
	a, _ = a.Update(key('7'))
	a.Grade(false)
	a, _ = a.Update(key('2'))

	if a.Value() != "7" {
		t.Fatalf("Value = %q after grading", a.Value())
	}
	if a.Focused() {
		t.Fatal("graded input should be blurred")
	}
	if !strings.Contains(a.View(), "✗") {
		t.Fatal("expected wrong mark in view")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Action: func() tea.Cmd { ran = "A"; return nil }},
		{Label: "B", Disabled: true},
		{Label: "C", Action: func() tea.Cmd { ran = "C"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "C" {
		t.Fatalf("ran %q, want C", ran)
	}
	if m.Current().Label != "C" {
		t.Fatalf("Current = %q", m.Current().Label)
	}
}

func TestLevelBar(t *testing.T) {
	p := LevelBar(5, 10, 40)
	if p.Percent != 0.5 {
		t.Fatalf("Percent = %v", p.Percent)
	}
	if !strings.Contains(p.View(), "5/10") {
		t.Fatal("expected caption in view")
	}
}

func TestFireworks_RunsToCompletion(t *testing.T) {
	var f Fireworks
	if cmd := f.Start(rand.New(rand.NewPCG(1, 2))); cmd == nil {
		t.Fatal("expected first tick")
	}
	if !f.Active() {
		t.Fatal("expected active after Start")
	}
	if f.View(40, 10) == "" {
		t.Fatal("expected a canvas while active")
	}

	for i := 1; i <= fireworksFrames; i++ {
		f, _ = f.Update(FireworksTickMsg{ID: f.id, Frame: i})
	}
	if f.Active() {
		t.Fatal("expected animation to finish")
	}
	if f.View(40, 10) != "" {
		t.Fatal("expected empty view when finished")
	}
}

func TestFireworks_IgnoresStaleTicks(t *testing.T) {
	var f Fireworks
	f.Start(rand.New(rand.NewPCG(1, 2)))
	stale := f.id
	f.Start(rand.New(rand.NewPCG(3, 4)))

	f, cmd := f.Update(FireworksTickMsg{ID: stale, Frame: 1})
	if cmd != nil || f.frame != 0 {
		t.Fatal("stale tick should be ignored")
	}
}
