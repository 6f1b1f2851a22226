package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // top level reached
	MascotAlert                     // several facts need work
)

// alertThreshold is the struggling-fact count that worries the mascot.
const alertThreshold = 5

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 7×8 │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ 7×8 │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ 7×8 │
└─────┘`

// mascotFor picks a variant from the learner's standing.
func mascotFor(st stats) MascotVariant {
	switch {
	case st.Struggling >= alertThreshold:
		return MascotAlert
	case st.Level >= st.MaxLevel:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Warning
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
