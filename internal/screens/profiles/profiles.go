// Package profiles lets the parent pick a child or add a new one.
package profiles

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

// Opener builds the screen shown once a profile is chosen.
type Opener func(p *profile.Profile) screen.Screen

type createdMsg struct {
	Profile *profile.Profile
	Err     error
}

// ProfilesScreen lists the children and hosts the new-profile form.
type ProfilesScreen struct {
	svc  *tutor.Service
	open Opener

	menu components.Menu

	creating bool
	name     components.TextInput
	grade    int
	errMsg   string
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)

// New creates the picker. open is called with the chosen profile.
func New(svc *tutor.Service, open Opener) *ProfilesScreen {
	s := &ProfilesScreen{svc: svc, open: open, grade: 2}
	s.rebuildMenu()
	return s
}

func (s *ProfilesScreen) rebuildMenu() {
	var items []components.MenuItem
	for _, c := range s.svc.Profiles().List() {
		id := c.ID
		items = append(items, components.MenuItem{
			Label:  c.Name,
			Detail: c.GradeLevel,
			Action: func() tea.Cmd { return s.choose(id) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "+ New profile",
		Action: func() tea.Cmd { return s.startForm() },
	})
	s.menu = components.NewMenu(items)
}

func (s *ProfilesScreen) choose(id string) tea.Cmd {
	p, err := s.svc.Profiles().Get(id)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return router.PushCmd(s.open(p))
}

func (s *ProfilesScreen) startForm() tea.Cmd {
	s.creating = true
	s.errMsg = ""
	s.name = components.NewTextInput("Name: ", "Child's name", 40)
	return s.name.Init()
}

func (s *ProfilesScreen) Init() tea.Cmd { return nil }

func (s *ProfilesScreen) Title() string { return "Profiles" }

func (s *ProfilesScreen) KeyHints() []layout.KeyHint {
	if s.creating {
		return []layout.KeyHint{
			{Key: "←→", Description: "Grade"},
			{Key: "Enter", Description: "Create"},
			{Key: "Tab", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.creating = false
		s.rebuildMenu()
		return s, router.PushCmd(s.open(msg.Profile))

	case tea.KeyMsg:
		if s.creating {
			return s.updateForm(msg)
		}
	}

	var cmd tea.Cmd
	if s.creating {
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ProfilesScreen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.creating = false
		s.errMsg = ""
		return s, nil
	case "left":
		s.grade = max(s.grade-1, 0)
		return s, nil
	case "right":
		s.grade = min(s.grade+1, len(profile.GradeLevels)-1)
		return s, nil
	case "enter":
		return s, s.create(profile.ChildInput{Name: s.name.Value(), GradeLevel: profile.GradeLevels[s.grade]})
	}
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	return s, cmd
}

func (s *ProfilesScreen) create(in profile.ChildInput) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		p, err := svc.CreateProfile(context.Background(), in, nil)
		return createdMsg{Profile: p, Err: err}
	}
}

func (s *ProfilesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	if s.creating {
		sections = append(sections,
			theme.Title.Render("New profile"),
			"",
			s.name.View(),
			"",
			"Grade: "+theme.Selected.Render("◂ "+profile.GradeLevels[s.grade]+" ▸"),
		)
	} else {
		sections = append(sections, theme.Title.Render("Who is learning today?"), "")
		if len(s.menu.Items) == 1 {
			sections = append(sections, theme.Hint.Render("No profiles yet. Create one to get started."), "")
		}
		sections = append(sections, strings.TrimRight(s.menu.View(), "\n"))
	}

	if s.errMsg != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("Error: %s", s.errMsg)))
	}

	return components.Frame(components.Card(strings.Join(sections, "\n"), cw), width, height)
}
