// Package welcome is the splash shown at launch.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/ui/components"
	"github.com/abhisek/factz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sparkleAt    = 400 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const Tagline = "Times tables, one round at a time."

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ 7×8 │  │
  │  └─────┘  │
  ╰───────────╯`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen animates the mascot and banner, then hands over to the
// screen built by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= sparkleAt {
		sparkle := sparkleFrames[w.ticks%len(sparkleFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(art, "\n")
		for i := 0; i < len(lines); i += 3 {
			if i%2 == 0 {
				lines[i] = a + "  " + lines[i] + "  " + b
			} else {
				lines[i] = b + "  " + lines[i] + "  " + a
			}
		}
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}
	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			components.Banner(width, theme.Primary),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
