// Package heatmap shows the weight table as a colored grid.
package heatmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/insights"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
	"github.com/abhisek/factz/internal/ui/layout"
	"github.com/abhisek/factz/internal/ui/theme"
)

type accuracyLoadedMsg struct {
	facts []store.FactAccuracy
	err   error
}

type factKey struct{ row, col int }

// HeatmapScreen renders weights with a movable cursor. Answer history is
// loaded in the background when a repo is available.
type HeatmapScreen struct {
	table *selector.WeightTable
	level int
	stats insights.WeightStats
	repo  store.EventRepo

	accuracy map[factKey]store.FactAccuracy
	errMsg   string

	row, col int
}

var (
	_ screen.Screen          = (*HeatmapScreen)(nil)
	_ screen.KeyHintProvider = (*HeatmapScreen)(nil)
)

// New returns a heat map of table. level only highlights the factors in
// play; repo may be nil.
func New(table *selector.WeightTable, level int, repo store.EventRepo) *HeatmapScreen {
	return &HeatmapScreen{
		table: table,
		level: level,
		stats: insights.Analyze(table),
		repo:  repo,
		row:   1,
		col:   1,
	}
}

func (s *HeatmapScreen) Init() tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		facts, err := repo.FactAccuracy(context.Background())
		return accuracyLoadedMsg{facts: facts, err: err}
	}
}

func (s *HeatmapScreen) Title() string {
	return "Heat Map"
}

func (s *HeatmapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HeatmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case accuracyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.accuracy = make(map[factKey]store.FactAccuracy, len(msg.facts))
		for _, f := range msg.facts {
			s.accuracy[factKey{f.Row, f.Col}] = f
		}
		return s, nil

	case tea.KeyMsg:
		n := s.table.Size()
		switch msg.String() {
		case "up", "k":
			s.row = max(s.row-1, 1)
		case "down", "j":
			s.row = min(s.row+1, n)
		case "left", "h":
			s.col = max(s.col-1, 1)
		case "right", "l":
			s.col = min(s.col+1, n)
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HeatmapScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(width, s.renderGrid()))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(width, theme.Body, s.detail()))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(width, theme.Subtitle, fmt.Sprintf(
		"mean %.2f   median %.2f   sd %.2f   mastered %d   struggling %d",
		s.stats.Mean, s.stats.Median, s.stats.StdDev, s.stats.Mastered, s.stats.Struggling)))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, legend()))
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.CenterLine(width, theme.Incorrect, "history unavailable: "+s.errMsg))
	}
	return b.String()
}

const cellWidth = 5

func (s *HeatmapScreen) renderGrid() string {
	n := s.table.Size()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cellWidth).Align(lipgloss.Center)
	inPlay := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Width(cellWidth).Align(lipgloss.Center)

	var lines []string
	header := dim.Render("×")
	for c := 1; c <= n; c++ {
		st := dim
		if c <= s.level {
			st = inPlay
		}
		header += st.Render(fmt.Sprint(c))
	}
	lines = append(lines, header)

	for r := 1; r <= n; r++ {
		st := dim
		if r <= s.level {
			st = inPlay
		}
		line := st.Render(fmt.Sprint(r))
		for c := 1; c <= n; c++ {
			w := s.table.Weight(r, c)
			cell := theme.Heat(insights.Heat(w)).Width(cellWidth).Align(lipgloss.Center)
			if r == s.row && c == s.col {
				cell = cell.Reverse(true).Bold(true)
			}
			line += cell.Render(fmt.Sprintf("%.1f", w))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *HeatmapScreen) detail() string {
	q := selector.Question{Row: s.row, Col: s.col}
	line := fmt.Sprintf("%s = %d    weight %.2f", q, q.Product(), s.table.Weight(s.row, s.col))
	if f, ok := s.accuracy[factKey{s.row, s.col}]; ok && f.Attempts > 0 {
		line += fmt.Sprintf("    %d/%d correct (%.0f%%)", f.Correct, f.Attempts, f.Accuracy()*100)
	} else if s.accuracy != nil {
		line += "    never asked"
	}
	return line
}

func legend() string {
	labels := []string{"mastered", "improving", "new", "struggling", "hot"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = theme.Heat(i).Render(" " + l + " ")
	}
	return strings.Join(parts, " ")
}
