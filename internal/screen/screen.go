// Package screen defines the contract between the router and the screens
// it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that replace the default
// footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeCapturer is implemented by screens that use esc themselves while
// CapturesEscape reports true, instead of letting the app go back.
type EscapeCapturer interface {
	CapturesEscape() bool
}

// HeaderProvider is implemented by screens that belong to a learner.
type HeaderProvider interface {
	Header() layout.HeaderInfo
}

// LearnerHeader describes p for the header.
func LearnerHeader(p *profile.Profile) layout.HeaderInfo {
	if p == nil {
		return layout.HeaderInfo{}
	}
	return layout.HeaderInfo{Learner: p.Child.Name, Mastered: p.MasteredCount()}
}
