package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
)

type plainScreen struct{ got []tea.Msg }

func (s *plainScreen) Init() tea.Cmd { return nil }
func (s *plainScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *plainScreen) View(int, int) string { return "plain" }
func (s *plainScreen) Title() string        { return "Plain" }

type escScreen struct{ plainScreen }

func (s *escScreen) HandlesEscape() bool { return true }
func (s *escScreen) Status() (int, int)  { return 6, 3 }

type snapRepo struct{ latest *store.Snapshot }

func (r *snapRepo) Save(_ context.Context, snap *store.Snapshot) error { r.latest = snap; return nil }
func (r *snapRepo) Latest(context.Context) (*store.Snapshot, error)    { return r.latest, nil }
func (r *snapRepo) Prune(context.Context, int) error                   { return nil }

func esc() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEscape} }

func testModel() AppModel {
	return newAppModel(Options{Drill: core.DefaultConfig(), SkipSplash: true})
}

func push(t *testing.T, m AppModel, s screen.Screen) AppModel {
	t.Helper()
	next, _ := m.Update(router.PushScreenMsg{Screen: s})
	return next.(AppModel)
}

func TestEscPopsPlainScreen(t *testing.T) {
	m := push(t, testModel(), &plainScreen{})
	require.Equal(t, 2, m.router.Depth())

	_, cmd := m.Update(esc())
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestEscForwardedToHandler(t *testing.T) {
	s := &escScreen{}
	m := push(t, testModel(), s)

	_, cmd := m.Update(esc())
	assert.Nil(t, cmd)
	require.Len(t, s.got, 1)
	assert.Equal(t, "esc", s.got[0].(tea.KeyMsg).String())
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(esc())
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestRenderUsesStatusAndHints(t *testing.T) {
	m := push(t, testModel(), &escScreen{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	out := m.render()
	assert.Contains(t, out, "Lv 6")
	assert.Contains(t, out, "★ 3")
	assert.Contains(t, out, "Back")
}

func TestRenderTooSmall(t *testing.T) {
	next, _ := testModel().Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(next.(AppModel).render(), "Terminal too small"))
}

func TestDrillFactoryResumes(t *testing.T) {
	table := selector.NewWeightTable(selector.DefaultSize)
	require.NoError(t, table.SetWeight(7, 8, 1.8))
	saved := core.State{Level: 8, Size: table.Size(), Weights: table.Cells(), Rounds: 9}
	repo := &snapRepo{latest: &store.Snapshot{Data: store.SnapshotData{Version: 1, Drill: &saved}}}

	fresh, err := drillFactory(Options{Drill: core.DefaultConfig(), SnapshotRepo: repo})()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultStartLevel, fresh.Level())
	assert.Equal(t, 1.0, fresh.Table().Weight(7, 8))

	resumed, err := drillFactory(Options{Drill: core.DefaultConfig(), SnapshotRepo: repo, Resume: true})()
	require.NoError(t, err)
	assert.Equal(t, 8, resumed.Level())
	assert.Equal(t, 1.8, resumed.Table().Weight(7, 8))
}
