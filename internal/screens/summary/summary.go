package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/insights"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/ui/layout"
	"github.com/abhisek/factz/internal/ui/theme"
)

// SummaryScreen shows the totals of a finished drill session.
type SummaryScreen struct {
	summary drill.SessionSummary
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.EscapeHandler   = (*SummaryScreen)(nil)
	_ screen.StatusProvider  = (*SummaryScreen)(nil)
)

func New(summary drill.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) Status() (int, int) {
	return s.summary.Level, s.summary.BestStreak
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(layout.CenterLine(width, theme.Title, headline(sum)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.CenterLine(width, theme.Subtitle,
		fmt.Sprintf("Duration: %d:%02d    Rounds: %d", mins, secs, sum.Rounds)))
	b.WriteString("\n\n")

	b.WriteString(layout.CenterLine(width, theme.Body,
		fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
			sum.Questions, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n")

	levelLine := fmt.Sprintf("Level %d", sum.Level)
	style := theme.Body
	if sum.Level > sum.StartLevel {
		levelLine = fmt.Sprintf("Level %d → %d", sum.StartLevel, sum.Level)
		style = theme.Correct
	}
	if sum.BestStreak > 0 {
		levelLine += fmt.Sprintf("        Best streak: %d perfect rounds", sum.BestStreak)
	}
	b.WriteString(layout.CenterLine(width, style, levelLine))
	b.WriteString("\n\n")

	if len(sum.Hardest) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 40), 0)))
		b.WriteString(layout.CenterLine(width, theme.Subtitle, "Keep practicing"))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, divider))
		b.WriteString("\n")
		for _, fw := range sum.Hardest {
			chip := theme.Heat(insights.Heat(fw.Weight)).Render(fmt.Sprintf(" %.1f ", fw.Weight))
			line := fmt.Sprintf("%-8s = %-3d  %s", fw.Question, fw.Question.Product(), chip)
			b.WriteString(layout.Center(width, line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func headline(sum drill.SessionSummary) string {
	switch {
	case sum.Rounds == 0:
		return "See you next time!"
	case sum.Accuracy == 1:
		return "Flawless session!"
	default:
		return "Session complete!"
	}
}
