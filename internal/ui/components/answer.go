package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

// answerWidth fits the largest product of a 10 x 10 table plus a digit.
const answerWidth = 4

// AnswerInput is a digits-only field for one product.
type AnswerInput struct {
	Model textinput.Model

	graded  bool
	correct bool
}

// NewAnswerInput returns a blurred, empty answer field.
func NewAnswerInput() AnswerInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "?"
	ti.CharLimit = answerWidth
	return AnswerInput{Model: ti}
}

// Focus focuses the field and returns the cursor blink command.
func (a *AnswerInput) Focus() tea.Cmd {
	return a.Model.Focus()
}

func (a *AnswerInput) Blur() {
	a.Model.Blur()
}

func (a AnswerInput) Focused() bool {
	return a.Model.Focused()
}

// Update forwards the message to the text input, dropping printable keys
// other than digits. Graded fields are read-only.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.graded {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return a, nil
		}
		if key == "space" {
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// Value returns the raw input.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Grade freezes the field and marks it right or wrong.
func (a *AnswerInput) Grade(correct bool) {
	a.Model.Blur()
	a.graded = true
	a.correct = correct
}

// Graded reports whether Grade was called.
func (a AnswerInput) Graded() bool {
	return a.graded
}

// View renders the field with an underline, plus a mark once graded.
func (a AnswerInput) View() string {
	field := lipgloss.NewStyle().Width(answerWidth).Render(a.Model.View())
	if !a.graded {
		if a.Focused() {
			return theme.FocusedField.Render(field)
		}
		return theme.BlurredField.Render(field)
	}
	if a.correct {
		return theme.BlurredField.Render(field) + " " + theme.Correct.Render("✓")
	}
	return theme.BlurredField.Render(field) + " " + theme.Incorrect.Render("✗")
}
