package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/ui/layout"
)

// Screen is one page of the TUI. The router keeps a stack of them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that act on Esc themselves
// (confirm dialogs, custom navigation). The app pops other screens.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Resumer is notified when the screen becomes active again after the
// screen above it was popped.
type Resumer interface {
	Resume() tea.Cmd
}

// StatusProvider supplies the level and perfect-round streak shown in
// the header.
type StatusProvider interface {
	Status() (level, streak int)
}
