package components

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

const (
	fireworksFrames   = 18
	fireworksInterval = 90 * time.Millisecond
	fireworksBursts   = 4
)

// FireworksTickMsg advances the animation with the matching ID.
type FireworksTickMsg struct {
	ID    int
	Frame int
}

type burst struct {
	x, y   float64 // center as a fraction of the canvas
	start  int     // frame the burst appears on
	color  int
	spokes int
}

// Fireworks is a short celebratory animation drawn with tea.Tick frames.
// It is purely cosmetic.
type Fireworks struct {
	id     int
	frame  int
	active bool
	bursts []burst
}

// Start resets the animation and returns the first tick.
func (f *Fireworks) Start(rng *rand.Rand) tea.Cmd {
	f.id++
	f.frame = 0
	f.active = true
	f.bursts = f.bursts[:0]
	for i := 0; i < fireworksBursts; i++ {
		f.bursts = append(f.bursts, burst{
			x:      0.15 + 0.7*rng.Float64(),
			y:      0.2 + 0.5*rng.Float64(),
			start:  i * 3,
			color:  rng.IntN(len(theme.SparkColors)),
			spokes: 6 + rng.IntN(5),
		})
	}
	return f.tick()
}

// Stop ends the animation; pending ticks are ignored.
func (f *Fireworks) Stop() {
	f.active = false
	f.id++
}

// Active reports whether the animation is running.
func (f Fireworks) Active() bool {
	return f.active
}

func (f Fireworks) tick() tea.Cmd {
	id, frame := f.id, f.frame+1
	return tea.Tick(fireworksInterval, func(time.Time) tea.Msg {
		return FireworksTickMsg{ID: id, Frame: frame}
	})
}

// Update advances on its own ticks and ignores everything else.
func (f Fireworks) Update(msg tea.Msg) (Fireworks, tea.Cmd) {
	tick, ok := msg.(FireworksTickMsg)
	if !ok || !f.active || tick.ID != f.id {
		return f, nil
	}
	f.frame = tick.Frame
	if f.frame >= fireworksFrames {
		f.active = false
		return f, nil
	}
	return f, f.tick()
}

// View draws the current frame on a width x height canvas.
func (f Fireworks) View(width, height int) string {
	if !f.active || width <= 0 || height <= 0 {
		return ""
	}
	canvas := make([][]string, height)
	for y := range canvas {
		canvas[y] = make([]string, width)
		for x := range canvas[y] {
			canvas[y][x] = " "
		}
	}

	for _, b := range f.bursts {
		age := f.frame - b.start
		if age < 0 || age > 10 {
			continue
		}
		glyph := "*"
		switch {
		case age > 7:
			glyph = "."
		case age > 4:
			glyph = "+"
		}
		style := lipgloss.NewStyle().Foreground(theme.SparkColors[b.color]).Bold(age <= 4)
		cx, cy := b.x*float64(width), b.y*float64(height)
		radius := float64(age)
		for s := 0; s < b.spokes; s++ {
			angle := 2 * math.Pi * float64(s) / float64(b.spokes)
			// Terminal cells are about twice as tall as wide.
			x := int(math.Round(cx + 2*radius*math.Cos(angle)))
			y := int(math.Round(cy + radius*math.Sin(angle)))
			if x >= 0 && x < width && y >= 0 && y < height {
				canvas[y][x] = style.Render(glyph)
			}
		}
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
