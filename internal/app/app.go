// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/screens/home"
	"github.com/vocabflow/vocabflow/internal/screens/profiles"
	"github.com/vocabflow/vocabflow/internal/screens/welcome"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
)

// Options selects where the UI starts.
type Options struct {
	Service *tutor.Service

	// Profile skips the welcome and profile screens when set.
	Profile *profile.Profile

	// ListID starts a session on that list right away. It needs Profile.
	ListID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	svc := opts.Service
	open := func(p *profile.Profile) screen.Screen { return home.New(svc, p) }

	if opts.Profile != nil {
		h := home.New(svc, opts.Profile)
		m := AppModel{router: router.New(h)}
		if opts.ListID != "" {
			m.start = h.StartList(opts.ListID)
		}
		return m
	}

	w := welcome.New(func() screen.Screen { return profiles.New(svc, open) })
	return AppModel{router: router.New(w), start: w.Init()}
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.PopCmd()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var info layout.HeaderInfo
	if hp, ok := active.(screen.HeaderProvider); ok {
		info = hp.Header()
	}
	header := layout.RenderHeader(active.Title(), info, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
