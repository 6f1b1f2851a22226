package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/insights"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/selector"
)

func testSummary() drill.SessionSummary {
	return drill.SessionSummary{
		SessionID:  "s1",
		Rounds:     3,
		Questions:  30,
		Correct:    27,
		Accuracy:   0.9,
		StartLevel: 4,
		Level:      6,
		BestStreak: 2,
		Duration:   4*time.Minute + 5*time.Second,
		Hardest: []insights.FactWeight{
			{Question: selector.Question{Row: 7, Col: 8}, Weight: 1.4},
			{Question: selector.Question{Row: 6, Col: 9}, Weight: 1.2},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary()).View(80, 24)
	for _, want := range []string{"4:05", "Accuracy: 90%", "Level 4 → 6", "7 × 8", "56"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	view := New(drill.SessionSummary{StartLevel: 4, Level: 4}).View(80, 24)
	if !strings.Contains(view, "See you next time!") {
		t.Error("expected farewell headline for a session without rounds")
	}
}

func TestSummaryScreen_NavigationPops(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := New(testSummary()).Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %s", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("%s: expected PopScreenMsg", key.String())
		}
	}
}

func TestSummaryScreen_Status(t *testing.T) {
	level, streak := New(testSummary()).Status()
	if level != 6 || streak != 2 {
		t.Errorf("Status = %d, %d", level, streak)
	}
}
