// Package home is the list picker of a profile: the dashboard a session
// starts from.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/screens/history"
	sessionscreen "github.com/vocabflow/vocabflow/internal/screens/session"
	"github.com/vocabflow/vocabflow/internal/screens/words"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

type runReadyMsg struct {
	Run *tutor.Run
	Err error
}

// HomeScreen shows the profile's lists in session order.
type HomeScreen struct {
	svc     *tutor.Service
	profile *profile.Profile

	lists  []session.SessionWordList
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.HeaderProvider = (*HomeScreen)(nil)

// New creates the dashboard for p.
func New(svc *tutor.Service, p *profile.Profile) *HomeScreen {
	h := &HomeScreen{svc: svc, profile: p}
	h.refresh()
	return h
}

// refresh rebuilds the menu from the profile, keeping the cursor on the
// same list when it still exists.
func (h *HomeScreen) refresh() {
	var keep string
	if i := h.menu.Selected; i < len(h.lists) {
		keep = h.lists[i].ID
	}

	h.lists = h.profile.Planner().Lists()
	items := make([]components.MenuItem, len(h.lists))
	selected := 0
	for i, l := range h.lists {
		id := l.ID
		items[i] = components.MenuItem{
			Label:  l.Name,
			Detail: fmt.Sprintf("%d words · %s", l.WordCount, l.Kind.Label()),
			Action: func() tea.Cmd { return h.begin(id) },
		}
		if id == keep {
			selected = i
		}
	}
	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
}

func (h *HomeScreen) begin(listID string) tea.Cmd {
	svc, p := h.svc, h.profile
	return func() tea.Msg {
		run, err := svc.Begin(context.Background(), p, listID)
		return runReadyMsg{Run: run, Err: err}
	}
}

// StartList begins a session on listID as if it had been picked.
func (h *HomeScreen) StartList(listID string) tea.Cmd { return h.begin(listID) }

func (h *HomeScreen) current() (session.SessionWordList, bool) {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.lists) {
		return session.SessionWordList{}, false
	}
	return h.lists[h.menu.Selected], true
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Word Lists" }

func (h *HomeScreen) Header() layout.HeaderInfo { return screen.LearnerHeader(h.profile) }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "S", Description: "Later"},
		{Key: "W", Description: "Words"},
		{Key: "H", Description: "History"},
		{Key: "Esc", Description: "Profiles"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		h.refresh()
		return h, nil

	case runReadyMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		return h, router.PushCmd(sessionscreen.New(h.svc, msg.Run))

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return h, h.deferCurrent()
		case "w":
			if l, ok := h.current(); ok {
				return h, router.PushCmd(words.New(h.svc, h.profile, l.ID))
			}
			return h, nil
		case "h":
			return h, router.PushCmd(history.New(h.svc.Events(), h.profile))
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// deferCurrent moves the selected list to the end of the picker.
func (h *HomeScreen) deferCurrent() tea.Cmd {
	l, ok := h.current()
	if !ok {
		return nil
	}
	if err := h.profile.Defer(l.ID); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	if err := h.svc.Save(context.Background(), h.profile); err != nil {
		h.errMsg = err.Error()
	}
	pos := h.menu.Selected
	h.refresh()
	h.menu.Selected = min(pos, len(h.lists)-1)
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompact(width, height+2*3)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(fmt.Sprintf("Hi %s!", h.profile.Child.Name)))
	if !compact {
		sections = append(sections, theme.Subtitle.Width(cw).Render("Pick a list to read a story and learn its words."))
	}
	sections = append(sections, h.renderStats(cw))

	if len(h.lists) == 0 {
		sections = append(sections, components.Card(theme.Hint.Render("No lists with words yet. Import one with `vocabflow import`."), cw))
	} else {
		sections = append(sections, components.Card(strings.TrimRight(h.menu.View(), "\n"), cw))
	}

	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+h.errMsg))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(cw int) string {
	var total, mastered, struggling int
	for _, l := range h.profile.Words.Lists() {
		total += l.Stats.Total
		mastered += l.Stats.Mastered
		struggling += l.Stats.Struggling
	}
	line := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%d words", total)) + "    " +
		lipgloss.NewStyle().Foreground(theme.StatusColor("mastered")).Render(fmt.Sprintf("★ %d mastered", mastered)) + "    " +
		lipgloss.NewStyle().Foreground(theme.StatusColor("struggling")).Render(fmt.Sprintf("● %d to practise", struggling))
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Render(line)
}
