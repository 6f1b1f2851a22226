package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/factz/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	updates int
}

func (s *fakeScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *fakeScreen) View(int, int) string { return "view:" + s.name }
func (s *fakeScreen) Title() string        { return s.name }

// resumingScreen records how often it came back to the top.
type resumingScreen struct {
	fakeScreen
	resumes int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumes++
	return func() tea.Msg { return "resumed" }
}

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestNavigationSequence(t *testing.T) {
	tests := []struct {
		name string
		ops  func(r *Router)
		want []string
	}{
		{"push", func(r *Router) { r.Push(&fakeScreen{name: "drill"}) }, []string{"home", "drill"}},
		{"push then pop", func(r *Router) {
			r.Push(&fakeScreen{name: "drill"})
			r.Pop()
		}, []string{"home"}},
		{"pop at root", func(r *Router) { r.Pop(); r.Pop() }, []string{"home"}},
		{"replace root", func(r *Router) { r.Replace(&fakeScreen{name: "home2"}) }, []string{"home2"}},
		{"drill becomes summary", func(r *Router) {
			r.Push(&fakeScreen{name: "drill"})
			r.Replace(&fakeScreen{name: "summary"})
		}, []string{"home", "summary"}},
		{"messages", func(r *Router) {
			r.Update(PushScreenMsg{Screen: &fakeScreen{name: "history"}})
			r.Update(PushScreenMsg{Screen: &fakeScreen{name: "heatmap"}})
			r.Update(PopScreenMsg{})
			r.Update(ReplaceScreenMsg{Screen: &fakeScreen{name: "drill"}})
		}, []string{"home", "drill"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{name: "home"})
			tt.ops(r)
			assert.Equal(t, tt.want, titles(r))
			assert.Equal(t, len(tt.want), r.Depth())
			assert.Equal(t, tt.want[len(tt.want)-1], r.Active().Title())
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	drill := &fakeScreen{name: "drill"}
	summary := &fakeScreen{name: "summary"}

	r.Update(PushScreenMsg{Screen: drill})
	r.Update(ReplaceScreenMsg{Screen: summary})

	assert.Equal(t, 1, drill.inits)
	assert.Equal(t, 1, summary.inits)
}

func TestPopResumesScreenBelow(t *testing.T) {
	home := &resumingScreen{fakeScreen: fakeScreen{name: "home"}}
	r := New(home)

	r.Push(&fakeScreen{name: "drill"})
	r.Replace(&fakeScreen{name: "summary"})
	require.Zero(t, home.resumes)

	cmd := r.Update(PopScreenMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, "resumed", cmd())
	assert.Equal(t, 1, home.resumes)
	assert.Same(t, screen.Screen(home), r.Active())

	// Popping the root does not resume it again.
	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, home.resumes)
}

func TestUpdateReachesOnlyActive(t *testing.T) {
	home := &fakeScreen{name: "home"}
	drill := &fakeScreen{name: "drill"}
	r := New(home)
	r.Push(drill)

	assert.Nil(t, r.Update(tea.KeyPressMsg{Code: '7', Text: "7"}))
	assert.Equal(t, 1, drill.updates)
	assert.Zero(t, home.updates)
	assert.Equal(t, "view:drill", r.View(80, 24))
	assert.True(t, slices.Contains(titles(r), "home"))
}
