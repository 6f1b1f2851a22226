package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

// ContentWidth is the shared width of stacked boxes inside a frame of
// frameWidth, so they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// Panel centers content inside a double-bordered panel filling width x height.
func Panel(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box cw cells wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(cw-2, 0)).
		Align(lipgloss.Center).
		Padding(0, 2).
		Render(content)
}
