package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and caption.
type ProgressBar struct {
	Label   string
	Percent float64
	// Caption replaces the default percentage text when set.
	Caption string
	Width   int
}

// NewProgressBar returns a bar showing percent (0..1) as a percentage.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// LevelBar shows how far level is towards maxLevel.
func LevelBar(level, maxLevel, width int) ProgressBar {
	p := ProgressBar{Label: "Level", Width: width, Caption: fmt.Sprintf("%d/%d", level, maxLevel)}
	if maxLevel > 0 {
		p.Percent = float64(level) / float64(maxLevel)
	}
	return p
}

// View renders the bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	caption := p.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(p.Percent*100))
	}
	caption = "  " + caption

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(caption), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	return result
}
