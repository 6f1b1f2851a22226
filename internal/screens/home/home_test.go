package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/router"
	drillscreen "github.com/abhisek/factz/internal/screens/drill"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
)

type snapRepo struct {
	latest *store.Snapshot
}

func (r *snapRepo) Save(_ context.Context, snap *store.Snapshot) error {
	r.latest = snap
	return nil
}

func (r *snapRepo) Latest(context.Context) (*store.Snapshot, error) {
	return r.latest, nil
}

func (r *snapRepo) Prune(context.Context, int) error {
	return nil
}

func savedState(t *testing.T, level, rounds, mastered, struggling int) *store.Snapshot {
	t.Helper()
	table := selector.NewWeightTable(selector.DefaultSize)
	n := 0
	for r := 1; r <= table.Size(); r++ {
		for c := 1; c <= table.Size(); c++ {
			switch {
			case n < mastered:
				require.NoError(t, table.SetWeight(r, c, 0))
			case n < mastered+struggling:
				require.NoError(t, table.SetWeight(r, c, 1.4))
			}
			n++
		}
	}
	st := core.State{Level: level, Size: table.Size(), Weights: table.Cells(), Rounds: rounds}
	return &store.Snapshot{Data: store.SnapshotData{Version: 1, Drill: &st}}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }

func TestNewWithoutSnapshot(t *testing.T) {
	cfg := core.DefaultConfig()
	h := New(Options{Drill: cfg, SnapRepo: &snapRepo{}})

	assert.Equal(t, cfg.StartLevel, h.stats.Level)
	assert.Equal(t, 0, h.stats.Mastered)
	assert.Equal(t, "fresh table at level 4", h.menu.Items[0].Hint)

	level, _ := h.Status()
	assert.Equal(t, cfg.StartLevel, level)
}

func TestStatsFromSnapshot(t *testing.T) {
	repo := &snapRepo{latest: savedState(t, 7, 12, 3, 6)}
	h := New(Options{Drill: core.DefaultConfig(), SnapRepo: repo, Resume: true})

	assert.Equal(t, 7, h.stats.Level)
	assert.Equal(t, 12, h.stats.Rounds)
	assert.Equal(t, 3, h.stats.Mastered)
	assert.Equal(t, 6, h.stats.Struggling)
	assert.Equal(t, MascotAlert, mascotFor(h.stats))
	assert.Equal(t, "resume at level 7", h.menu.Items[0].Hint)

	view := h.View(120, 40)
	assert.Contains(t, view, "3 MASTERED")
	assert.Contains(t, view, "6 TRICKY")
}

func TestResumeReloads(t *testing.T) {
	repo := &snapRepo{}
	h := New(Options{Drill: core.DefaultConfig(), SnapRepo: repo})
	require.Equal(t, 0, h.stats.Rounds)

	repo.latest = savedState(t, 10, 30, 0, 0)
	assert.Nil(t, h.Resume())
	assert.Equal(t, 30, h.stats.Rounds)
	assert.Equal(t, MascotCelebrating, mascotFor(h.stats))
}

func TestStartDrillPushesDrillScreen(t *testing.T) {
	calls := 0
	h := New(Options{
		Drill: core.DefaultConfig(),
		NewDrill: func() (*core.Drill, error) {
			calls++
			return core.New(core.DefaultConfig())
		},
	})

	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &drillscreen.DrillScreen{}, push.Screen)
	assert.Equal(t, 1, calls)
}

func TestStartDrillError(t *testing.T) {
	h := New(Options{
		Drill:    core.DefaultConfig(),
		NewDrill: func() (*core.Drill, error) { return nil, errors.New("database is locked") },
	})

	_, cmd := h.Update(enter())
	assert.Nil(t, cmd)
	assert.Contains(t, h.View(120, 40), "database is locked")
}

func TestDisabledEntriesAreSkipped(t *testing.T) {
	h := New(Options{Drill: core.DefaultConfig()})

	// START DRILL is disabled without a drill factory.
	assert.Equal(t, "HEAT MAP", h.menu.Current().Label)

	// HISTORY is disabled without an event repo.
	h.Update(down())
	assert.Equal(t, "EXIT", h.menu.Current().Label)
}

func TestHeatMapEntry(t *testing.T) {
	h := New(Options{Drill: core.DefaultConfig()})
	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Heat Map", push.Screen.Title())
}

func TestCoachNote(t *testing.T) {
	h := New(Options{
		Drill:    core.DefaultConfig(),
		NewDrill: func() (*core.Drill, error) { return core.New(core.DefaultConfig()) },
	})
	assert.True(t, strings.Contains(h.View(120, 40), "Memory tips are off"))
}
