package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput with a prompt and a length limit.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input.
func NewTextInput(prompt, placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init focuses the input and starts the cursor.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t TextInput) View() string { return t.Model.View() }

// Value returns the typed text.
func (t TextInput) Value() string { return t.Model.Value() }

// SetValue replaces the typed text.
func (t *TextInput) SetValue(s string) { t.Model.SetValue(s) }

// Focused reports whether the input takes key presses.
func (t TextInput) Focused() bool { return t.Model.Focused() }

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

// Blur removes keyboard focus.
func (t *TextInput) Blur() { t.Model.Blur() }
