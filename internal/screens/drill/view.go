package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/layout"
	"github.com/abhisek/factz/internal/ui/theme"
)

// fireworksHeight is the canvas height above the grid on perfect rounds.
const fireworksHeight = 5

func (s *DrillScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.CenterLine(width, theme.Incorrect,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if s.fireworks.Active() {
		b.WriteString(s.fireworks.View(width, fireworksHeight))
	} else {
		b.WriteString(strings.Repeat("\n", fireworksHeight-1))
	}
	b.WriteString("\n")

	b.WriteString(layout.Center(width, s.renderGrid()))
	b.WriteString("\n\n")

	if s.result != nil {
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *DrillScreen) renderInfoLine(width int) string {
	round := s.drill.Round() + 1
	if s.result != nil {
		round = s.result.Round
	}
	cfg := s.drill.Config().Selector
	rangeStr := ""
	if bound, err := cfg.Bound(s.drill.Level()); err == nil {
		rangeStr = fmt.Sprintf("  factors 1–%d", bound)
	}

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Round %d", round))
	right := theme.Hint.Render(fmt.Sprintf("Level %d%s", s.drill.Level(), rangeStr))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderGrid lays the questions out in two columns, filled top to bottom.
func (s *DrillScreen) renderGrid() string {
	questions := s.drill.Current().Questions
	rows := (len(questions) + 1) / 2

	var lines []string
	for r := 0; r < rows; r++ {
		left := s.renderCell(r)
		right := ""
		if r+rows < len(questions) {
			right = s.renderCell(r + rows)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(24).Render(left), right))
	}
	return strings.Join(lines, "\n")
}

func (s *DrillScreen) renderCell(i int) string {
	q := s.drill.Current().Questions[i]
	label := fmt.Sprintf("%2d × %-2d = ", q.Row, q.Col)
	style := theme.Body
	if i == s.focus && s.result == nil {
		style = theme.Selected
	}
	cell := style.Render(label) + s.inputs[i].View()

	if s.result != nil && !s.result.Results[i].Correct {
		cell += " " + theme.Hint.Render(fmt.Sprintf("→ %d", q.Product()))
	}
	return cell
}

func (s *DrillScreen) renderFeedback(width int) string {
	res := s.result
	var b strings.Builder

	if res.AllCorrect {
		b.WriteString(layout.CenterLine(width, theme.Celebrate, "Perfect round!"))
	} else {
		b.WriteString(layout.CenterLine(width, theme.Body,
			fmt.Sprintf("%d / %d correct", res.Correct, res.Total)))
	}
	b.WriteString("\n")

	if res.LeveledUp() {
		b.WriteString(layout.CenterLine(width, theme.Correct,
			fmt.Sprintf("Level up! Now practicing up to %d × %d", res.LevelAfter, res.LevelAfter)))
		b.WriteString("\n")
	} else if res.AllCorrect && res.LevelAfter == s.drill.Config().Selector.MaxLevel {
		b.WriteString(layout.CenterLine(width, theme.Subtitle, "Top level. Keep the streak going!"))
		b.WriteString("\n")
	}

	if len(s.tips) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.CenterLine(width, theme.Subtitle, "Memory tips"))
		b.WriteString("\n")
		for _, t := range s.tips {
			line := lipgloss.NewStyle().Foreground(theme.Accent).Render(t.Fact) + "  " + theme.Body.Render(t.Tip)
			b.WriteString(layout.Center(width, lipgloss.NewStyle().MaxWidth(max(width-8, 20)).Render(line)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(layout.CenterLine(width, theme.Hint, "Press Enter for the next round"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.CenterLine(width, theme.Body.Bold(true), "End this session?"))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(width, theme.Subtitle, "Your weights are saved after every round."))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, show my summary"))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

