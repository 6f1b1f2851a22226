// Package drill is the practice screen: one round of answer fields at a
// time, graded in place.
package drill

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/coach"
	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/router"
	"github.com/abhisek/factz/internal/screen"
	"github.com/abhisek/factz/internal/screens/summary"
	"github.com/abhisek/factz/internal/ui/components"
	"github.com/abhisek/factz/internal/ui/layout"
)

const (
	tipsPollInterval = 300 * time.Millisecond
	tipsMaxPolls     = 60
)

// tipsPollMsg checks the coach for tips requested after a round.
type tipsPollMsg struct {
	round int
}

// DrillScreen drives a core.Drill from the keyboard.
type DrillScreen struct {
	drill *core.Drill
	coach *coach.Service
	rng   *rand.Rand

	inputs []components.AnswerInput
	focus  int

	result    *core.RoundResult
	tips      []coach.Tip
	tipPolls  int
	fireworks components.Fireworks

	confirmQuit bool
	errMsg      string
}

var (
	_ screen.Screen          = (*DrillScreen)(nil)
	_ screen.KeyHintProvider = (*DrillScreen)(nil)
	_ screen.EscapeHandler   = (*DrillScreen)(nil)
	_ screen.StatusProvider  = (*DrillScreen)(nil)
)

// New returns a screen for d, which must not be started yet. tips may
// be nil.
func New(d *core.Drill, tips *coach.Service) *DrillScreen {
	return &DrillScreen{
		drill: d,
		coach: tips,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	if err := s.drill.Start(context.Background()); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.resetInputs()
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) HandlesEscape() bool { return true }

func (s *DrillScreen) Status() (int, int) {
	return s.drill.Level(), s.drill.Streak()
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.drill.Phase() == core.PhaseGraded:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next round"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter/Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Check"},
		{Key: "Esc", Description: "Finish"},
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.FireworksTickMsg:
		var cmd tea.Cmd
		s.fireworks, cmd = s.fireworks.Update(msg)
		return s, cmd

	case tipsPollMsg:
		return s, s.pollTips(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input internals.
	if s.answering() {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) answering() bool {
	return s.errMsg == "" && !s.confirmQuit &&
		s.drill.Phase() == core.PhaseAwaitingAnswers && len(s.inputs) > 0
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
			if s.answering() {
				return s, s.inputs[s.focus].Focus()
			}
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.drill.Phase() == core.PhaseGraded {
		switch key {
		case "enter", "n", "N", "space":
			return s, s.nextRound()
		}
		return s, nil
	}

	last := len(s.inputs) - 1
	switch key {
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		if s.focus == last {
			return s, s.submit()
		}
		return s, s.moveFocus(1)
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *DrillScreen) resetInputs() tea.Cmd {
	n := s.drill.Current().Len()
	s.inputs = make([]components.AnswerInput, n)
	for i := range s.inputs {
		s.inputs[i] = components.NewAnswerInput()
	}
	s.focus = 0
	if n == 0 {
		return nil
	}
	return s.inputs[0].Focus()
}

// moveFocus cycles focus by delta through the answer fields.
func (s *DrillScreen) moveFocus(delta int) tea.Cmd {
	n := len(s.inputs)
	if n == 0 {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = ((s.focus+delta)%n + n) % n
	return s.inputs[s.focus].Focus()
}

func (s *DrillScreen) submit() tea.Cmd {
	values := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		values[i] = in.Value()
	}

	result, err := s.drill.Submit(context.Background(), values)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.result = result
	for i, r := range result.Results {
		s.inputs[i].Grade(r.Correct)
	}

	var cmds []tea.Cmd
	if result.AllCorrect {
		cmds = append(cmds, s.fireworks.Start(s.rng))
	}
	if missed := result.Missed(); len(missed) > 0 && s.coach.Enabled() {
		s.coach.RequestTips(context.Background(), missed)
		s.tipPolls = 0
		cmds = append(cmds, pollTipsCmd(result.Round))
	}
	return tea.Batch(cmds...)
}

func (s *DrillScreen) nextRound() tea.Cmd {
	s.fireworks.Stop()
	s.result = nil
	s.tips = nil

	if _, err := s.drill.Next(context.Background()); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.resetInputs()
}

func (s *DrillScreen) finish() tea.Cmd {
	sum := s.drill.Finish(context.Background())
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func pollTipsCmd(round int) tea.Cmd {
	return tea.Tick(tipsPollInterval, func(time.Time) tea.Msg {
		return tipsPollMsg{round: round}
	})
}

// pollTips collects tips for the round still on screen. Polling stops
// when tips arrive, the round moves on, or the budget runs out.
func (s *DrillScreen) pollTips(msg tipsPollMsg) tea.Cmd {
	if s.result == nil || s.result.Round != msg.round {
		return nil
	}
	if tips, ok := s.coach.Consume(); ok {
		s.tips = tips
		return nil
	}
	s.tipPolls++
	if s.tipPolls >= tipsMaxPolls {
		return nil
	}
	return pollTipsCmd(msg.round)
}
