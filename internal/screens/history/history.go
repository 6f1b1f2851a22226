package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/store"
	"github.com/abhisek/factz/internal/ui/layout"
	"github.com/abhisek/factz/internal/ui/theme"
)

// sessionLimit is how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	sessions []store.SessionRecord
	err      error
}

type roundsLoadedMsg struct {
	sessionID string
	rounds    []store.RoundRecord
	err       error
}

// HistoryScreen lists past sessions. Enter expands a session into its
// rounds, loaded on demand.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionRecord
	rounds    map[string][]store.RoundRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		rounds:    make(map[string][]store.RoundRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), sessionLimit)
		return historyLoadedMsg{sessions: sessions, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Rounds"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.sessions = msg.sessions
		}
		s.loaded = true
		return s, nil

	case roundsLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.rounds[msg.sessionID] = msg.rounds
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]
	id := s.sessions[s.selected].SessionID
	if !s.expanded[s.selected] {
		return nil
	}
	if _, ok := s.rounds[id]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		rounds, err := repo.QueryRounds(context.Background(), store.QueryOpts{SessionID: id})
		return roundsLoadedMsg{sessionID: id, rounds: rounds, err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.CenterLine(width, theme.Incorrect, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.CenterLine(width, theme.Subtitle, "\n\nLoading history...")
	}
	if len(s.sessions) == 0 {
		return layout.CenterLine(width, theme.Hint, "\n\nNo sessions yet. Start a drill!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "> "
		}
		b.WriteString(layout.Center(width, style.Render(prefix+sessionLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderRounds(width, sess.SessionID))
		}
	}
	return b.String()
}

func sessionLine(sess store.SessionRecord) string {
	mins := sess.DurationSecs / 60
	secs := sess.DurationSecs % 60
	var accuracy float64
	if sess.Questions > 0 {
		accuracy = float64(sess.Correct) / float64(sess.Questions) * 100
	}
	levels := fmt.Sprintf("level %d", sess.EndLevel)
	if sess.EndLevel != sess.StartLevel {
		levels = fmt.Sprintf("level %d→%d", sess.StartLevel, sess.EndLevel)
	}
	line := fmt.Sprintf("%s  %d:%02d  %2d rounds  %.0f%%  %s",
		sess.StartedAt.Format("Jan 02 15:04"), mins, secs, sess.Rounds, accuracy, levels)
	if !sess.Ended() {
		line += "  (unfinished)"
	}
	return line
}

func (s *HistoryScreen) renderRounds(width int, sessionID string) string {
	rounds, ok := s.rounds[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return layout.Center(width, dim.Render("    loading rounds...")) + "\n"
	}
	if len(rounds) == 0 {
		return layout.Center(width, dim.Render("    no rounds recorded")) + "\n"
	}

	var b strings.Builder
	// Rounds come newest first; show them in play order.
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		line := fmt.Sprintf("    round %2d  %2d/%d", r.Round, r.Correct, r.Total)
		style := theme.Body
		switch {
		case r.LevelAfter > r.LevelBefore:
			line += fmt.Sprintf("  level up → %d", r.LevelAfter)
			style = theme.Correct
		case r.Correct < r.Total:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(layout.Center(width, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
