package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/store"
)

type historyRepo struct {
	store.EventRepo
	sessions    []store.SessionRecord
	rounds      map[string][]store.RoundRecord
	roundsCalls int
}

func (r *historyRepo) QuerySessionSummaries(context.Context, int) ([]store.SessionRecord, error) {
	return r.sessions, nil
}

func (r *historyRepo) QueryRounds(_ context.Context, opts store.QueryOpts) ([]store.RoundRecord, error) {
	r.roundsCalls++
	return r.rounds[opts.SessionID], nil
}

func testRepo() *historyRepo {
	start := time.Date(2026, 3, 14, 16, 30, 0, 0, time.UTC)
	return &historyRepo{
		sessions: []store.SessionRecord{
			{SessionID: "b", StartedAt: start, EndedAt: start.Add(3 * time.Minute), StartLevel: 4, EndLevel: 6,
				Rounds: 2, Questions: 20, Correct: 20, DurationSecs: 180},
			{SessionID: "a", StartedAt: start.Add(-time.Hour), StartLevel: 4, EndLevel: 4,
				Rounds: 1, Questions: 10, Correct: 7, DurationSecs: 65},
		},
		rounds: map[string][]store.RoundRecord{
			"b": {
				{SessionID: "b", Round: 2, LevelBefore: 5, LevelAfter: 6, Correct: 10, Total: 10},
				{SessionID: "b", Round: 1, LevelBefore: 4, LevelAfter: 5, Correct: 10, Total: 10},
			},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistory_Lists(t *testing.T) {
	s := New(testRepo())
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Fatal("expected loading state before data")
	}
	load(t, s)

	view := s.View(100, 30)
	for _, want := range []string{"Mar 14 16:30", "level 4→6", "100%", "(unfinished)", "70%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandLoadsRoundsOnce(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected rounds load command")
	}
	s.Update(cmd())
	view := s.View(100, 30)
	if !strings.Contains(view, "level up → 6") {
		t.Fatalf("rounds missing:\n%s", view)
	}
	if strings.Index(view, "round  1") > strings.Index(view, "round  2") {
		t.Fatal("rounds should be shown in play order")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // collapse
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("rounds are cached after the first load")
	}
	if repo.roundsCalls != 1 {
		t.Fatalf("QueryRounds called %d times", repo.roundsCalls)
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(&historyRepo{})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No sessions yet") {
		t.Fatal("expected empty state")
	}
}

func TestHistory_Navigation(t *testing.T) {
	s := New(testRepo())
	load(t, s)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Fatalf("selected = %d, want 0", s.selected)
	}
}
