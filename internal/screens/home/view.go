package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/components"
	"github.com/abhisek/factz/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderStatsBar(st stats, cw int, compact bool) string {
	mastered := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	struggling := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	rounds := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	strugglingText := struggling.Render(fmt.Sprintf("▲ %d TRICKY", st.Struggling))
	if st.Struggling == 0 {
		strugglingText = dim.Render("▲ NONE TRICKY")
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			mastered.Render(fmt.Sprintf("★%d", st.Mastered)),
			struggling.Render(fmt.Sprintf("▲%d", st.Struggling)),
			rounds.Render(fmt.Sprintf("↻%d", st.Rounds)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			mastered.Render(fmt.Sprintf("★ %d MASTERED", st.Mastered)),
			strugglingText,
			rounds.Render(fmt.Sprintf("↻ %d ROUNDS", st.Rounds)),
		)
	}

	bar := components.LevelBar(st.Level, st.MaxLevel, min(cw-12, 30))
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line + "\n" + bar.View())
}

// renderButtons draws each menu item as a fixed-width button.
func renderButtons(menu components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	selected := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Warning).
		BorderForeground(theme.Warning)

	buttons := make([]string, 0, len(menu.Items))
	for i, item := range menu.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, base.Foreground(theme.TextDim).Render(item.Label))
		case i == menu.Selected:
			buttons = append(buttons, selected.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).Render(item.Label))
		}
	}

	block := strings.Join(buttons, "\n")
	if hint := menu.Current().Hint; hint != "" && !menu.Current().Disabled {
		block += "\n" + theme.Hint.Render(hint)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// renderNote renders a dim one-line note under the menu.
func renderNote(text string, cw int, fg lipgloss.Style) string {
	return fg.Width(cw).Align(lipgloss.Center).Render(text)
}
