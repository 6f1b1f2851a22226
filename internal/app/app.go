// Package app hosts the Bubble Tea program: a router of screens inside a
// shared header and footer.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/coach"
	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/screens/home"
	"github.com/abhisek/factz/internal/screens/welcome"
	"github.com/abhisek/factz/internal/store"
	"github.com/abhisek/factz/internal/ui/layout"
)

// Options holds the dependencies screens need.
type Options struct {
	Drill core.Config

	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	Recorder     core.Recorder
	Coach        *coach.Service

	// Resume continues from the newest saved weight table.
	Resume bool

	// LatestVersion is shown on the home screen when an update exists.
	LatestVersion string

	// SkipSplash opens straight to the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeOpts := home.Options{
		Drill:         opts.Drill,
		NewDrill:      drillFactory(opts),
		Resume:        opts.Resume,
		Coach:         opts.Coach,
		EventRepo:     opts.EventRepo,
		SnapRepo:      opts.SnapshotRepo,
		LatestVersion: opts.LatestVersion,
	}
	newHome := func() screen.Screen { return home.New(homeOpts) }

	root := newHome()
	if !opts.SkipSplash {
		root = welcome.New(newHome)
	}
	return AppModel{router: router.New(root)}
}

// drillFactory builds a drill per session, resuming from the latest
// snapshot when asked.
func drillFactory(opts Options) func() (*core.Drill, error) {
	return func() (*core.Drill, error) {
		var dopts []core.Option
		if opts.Recorder != nil {
			dopts = append(dopts, core.WithRecorder(opts.Recorder))
		}
		if opts.Resume && opts.SnapshotRepo != nil {
			st, err := store.LatestDrillState(context.Background(), opts.SnapshotRepo)
			if err != nil {
				return nil, fmt.Errorf("load saved drill: %w", err)
			}
			if st != nil {
				dopts = append(dopts, core.WithState(*st))
			}
		}
		return core.New(opts.Drill, dopts...)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
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
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
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
	v.SetContent(m.render())
	return v
}

// render lays out the active screen inside the header and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()

	var level, streak int
	if sp, ok := active.(screen.StatusProvider); ok {
		level, streak = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), level, streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
