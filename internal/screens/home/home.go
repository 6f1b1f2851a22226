// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/factz/internal/coach"
	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/insights"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	drillscreen "github.com/abhisek/factz/internal/screens/drill"
	"github.com/abhisek/factz/internal/screens/heatmap"
	"github.com/abhisek/factz/internal/screens/history"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
	"github.com/abhisek/factz/internal/ui/components"
	"github.com/abhisek/factz/internal/ui/layout"
	"github.com/abhisek/factz/internal/ui/theme"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	Drill core.Config

	// NewDrill builds a drill for START DRILL. Nil disables the entry.
	NewDrill func() (*core.Drill, error)

	// Resume reports whether NewDrill continues from the saved table.
	Resume bool

	Coach     *coach.Service
	EventRepo store.EventRepo
	SnapRepo  store.SnapshotRepo

	// LatestVersion, when set, announces an available update.
	LatestVersion string
}

// stats is the learner's standing from the newest snapshot.
type stats struct {
	Level      int
	MaxLevel   int
	Rounds     int
	Mastered   int
	Struggling int
	table      *selector.WeightTable
}

// HomeScreen shows the learner's standing and the main menu.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	stats  stats
	errMsg string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
	_ screen.StatusProvider  = (*HomeScreen)(nil)
)

func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}
	h.reload()
	return h
}

// reload refreshes stats from the snapshot store and rebuilds the menu.
func (h *HomeScreen) reload() {
	cfg := h.opts.Drill
	st := stats{
		Level:    cfg.StartLevel,
		MaxLevel: cfg.Selector.MaxLevel,
		table:    selector.NewWeightTable(cfg.Selector.Size),
	}

	if h.opts.SnapRepo != nil {
		saved, err := store.LatestDrillState(context.Background(), h.opts.SnapRepo)
		if err != nil {
			log.Warn().Err(err).Msg("home: failed to load drill state")
		} else if saved != nil {
			if table, err := saved.Table(); err == nil && table.Size() == cfg.Selector.Size {
				st.table = table
				st.Level = saved.Level
				st.Rounds = saved.Rounds
			}
		}
	}

	ws := insights.Analyze(st.table)
	st.Mastered, st.Struggling = ws.Mastered, ws.Struggling
	h.stats = st

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	startHint := fmt.Sprintf("fresh table at level %d", h.opts.Drill.StartLevel)
	if h.opts.Resume && h.stats.Rounds > 0 {
		startHint = fmt.Sprintf("resume at level %d", h.stats.Level)
	}

	return []components.MenuItem{
		{Label: "START DRILL", Hint: startHint, Disabled: h.opts.NewDrill == nil, Action: h.startDrill},
		{Label: "HEAT MAP", Hint: "how each fact is going", Action: func() tea.Cmd {
			table, level := h.stats.table, h.stats.Level
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: heatmap.New(table, level, h.opts.EventRepo)}
			}
		}},
		{Label: "HISTORY", Hint: "past sessions", Disabled: h.opts.EventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.opts.EventRepo)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) startDrill() tea.Cmd {
	d, err := h.opts.NewDrill()
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: drillscreen.New(d, h.opts.Coach)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume picks up progress made in a drill that just closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() (int, int) {
	return h.stats.Level, 0
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	compact := height+8 < 30 || width < layout.CompactWidth
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, layout.Center(cw, components.Banner(cw, theme.Warning)))
	if !compact {
		sections = append(sections, layout.Center(cw, RenderMascot(mascotFor(h.stats))))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, layout.Center(cw, h.menu.View()))
	} else {
		sections = append(sections, renderButtons(h.menu, cw))
	}

	if h.opts.NewDrill != nil && !h.opts.Coach.Enabled() {
		sections = append(sections, renderNote("Memory tips are off. Set an LLM API key to enable them.", cw, theme.Hint))
	}
	if h.opts.LatestVersion != "" {
		sections = append(sections, renderNote(fmt.Sprintf("New version %s available", h.opts.LatestVersion), cw, theme.Hint))
	}
	if h.errMsg != "" {
		sections = append(sections, renderNote(h.errMsg, cw, theme.Incorrect))
	}

	return components.Panel(strings.Join(sections, "\n\n"), width, height)
}
