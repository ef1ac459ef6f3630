// Package words is the word browser of one list: search, status filter,
// priority flags, and the entry points to add, edit and remove words.
package words

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/screens/wordedit"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
	vocab "github.com/vocabflow/vocabflow/internal/words"
)

// statusTabs are cycled with tab; the zero tab shows every status.
var statusTabs = append([]vocab.Status{""}, vocab.AllStatuses...)

// WordsScreen browses the words of one list.
type WordsScreen struct {
	svc     *tutor.Service
	profile *profile.Profile
	listID  string

	search       components.TextInput
	tab          int
	priorityOnly bool

	rows     []vocab.Word
	selected int
	removing bool // waiting for y to confirm removal of the selected word
	errMsg   string
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)
var _ screen.HeaderProvider = (*WordsScreen)(nil)
var _ screen.EscapeCapturer = (*WordsScreen)(nil)

// New creates the browser for listID of p.
func New(svc *tutor.Service, p *profile.Profile, listID string) *WordsScreen {
	s := &WordsScreen{
		svc:     svc,
		profile: p,
		listID:  listID,
		search:  components.NewTextInput("/ ", "search words or meanings", 40),
	}
	s.search.Blur()
	s.refresh()
	return s
}

func (s *WordsScreen) filter() vocab.Filter {
	f := vocab.Filter{
		Search:       s.search.Value(),
		PriorityOnly: s.priorityOnly,
	}
	if st := statusTabs[s.tab]; st != "" {
		f.Statuses = []vocab.Status{st}
	}
	return f
}

func (s *WordsScreen) refresh() {
	seq, err := s.profile.Words.Filter(s.listID, s.filter())
	if err != nil {
		s.errMsg = err.Error()
		s.rows = nil
		return
	}
	s.rows = slices.Collect(seq)
	s.selected = min(s.selected, max(len(s.rows)-1, 0))
}

func (s *WordsScreen) Init() tea.Cmd { return nil }

func (s *WordsScreen) Title() string {
	l, err := s.profile.Words.List(s.listID)
	if err != nil {
		return "Words"
	}
	return l.Name
}

func (s *WordsScreen) Header() layout.HeaderInfo { return screen.LearnerHeader(s.profile) }

func (s *WordsScreen) CapturesEscape() bool { return s.search.Focused() }

func (s *WordsScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Done"}}
	}
	if s.removing {
		return []layout.KeyHint{{Key: "Y", Description: "Remove"}, {Key: "any key", Description: "Keep"}}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "Tab", Description: "Status"},
		{Key: "A", Description: "Add"},
		{Key: "E", Description: "Edit"},
		{Key: "X", Description: "Remove"},
		{Key: "P", Description: "Priority only"},
		{Key: "T", Description: "Flag word"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		s.refresh()
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if s.search.Focused() {
		if ok {
			switch kmsg.String() {
			case "enter", "esc":
				s.search.Blur()
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.refresh()
		return s, cmd
	}
	if !ok {
		return s, nil
	}

	if s.removing {
		s.removing = false
		if kmsg.String() == "y" {
			s.removeSelected()
		}
		return s, nil
	}

	switch kmsg.String() {
	case "/":
		return s, s.search.Focus()
	case "a":
		s.errMsg = ""
		return s, router.PushCmd(wordedit.NewAdd(s.svc, s.profile, s.listID))
	case "e", "enter":
		if len(s.rows) > 0 {
			s.errMsg = ""
			return s, router.PushCmd(wordedit.NewEdit(s.svc, s.profile, s.listID, s.rows[s.selected]))
		}
	case "x":
		s.removing = len(s.rows) > 0
	case "tab":
		s.tab = (s.tab + 1) % len(statusTabs)
		s.refresh()
	case "p":
		s.priorityOnly = !s.priorityOnly
		s.refresh()
	case "t":
		s.togglePriority()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
	}
	return s, nil
}

func (s *WordsScreen) togglePriority() {
	if len(s.rows) == 0 {
		return
	}
	if _, err := s.profile.Words.TogglePriority(s.listID, s.rows[s.selected].ID); err != nil {
		s.errMsg = err.Error()
		return
	}
	if err := s.svc.Save(context.Background(), s.profile); err != nil {
		s.errMsg = err.Error()
	}
	s.refresh()
}

func (s *WordsScreen) removeSelected() {
	if err := s.profile.Words.RemoveWord(s.listID, s.rows[s.selected].ID); err != nil {
		s.errMsg = err.Error()
		return
	}
	if err := s.svc.Save(context.Background(), s.profile); err != nil {
		s.errMsg = err.Error()
	}
	s.refresh()
}

func (s *WordsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var tabs []string
	for i, st := range statusTabs {
		label := "all"
		if st != "" {
			label = string(st)
		}
		if i == s.tab {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Hint.Render(" "+label+" "))
		}
	}
	if s.priorityOnly {
		tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Accent).Render(" ⚑ priority"))
	}

	parts := []string{
		s.search.View(),
		strings.Join(tabs, " "),
		"",
		components.Card(s.renderRows(cw, max(height-14, 3)), cw),
	}
	if s.removing {
		parts = append(parts, theme.Subtitle.Render(fmt.Sprintf("Remove %q? Press y to confirm.", s.rows[s.selected].Text)))
	}
	if s.errMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}
	return components.Frame(lipgloss.JoinVertical(lipgloss.Left, parts...), width, height)
}

// renderRows shows a window of at most visible rows around the selection.
func (s *WordsScreen) renderRows(cw, visible int) string {
	if len(s.rows) == 0 {
		return theme.Hint.Italic(true).Render("No words match.")
	}
	start := max(0, min(s.selected-visible/2, len(s.rows)-visible))
	end := min(len(s.rows), start+visible)

	defWidth := max(cw-40, 10)
	var b strings.Builder
	for i := start; i < end; i++ {
		w := s.rows[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		flag := " "
		if w.IsPriority {
			flag = "⚑"
		}
		status := lipgloss.NewStyle().
			Foreground(theme.StatusColor(string(w.Status()))).
			Width(12).
			Render(string(w.Status()))
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			style.Render(prefix),
			lipgloss.NewStyle().Foreground(theme.Accent).Render(flag),
			style.Width(14).Render(w.Text),
			status,
			theme.Hint.Render(clip(w.Definition, defWidth)),
		))
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d", s.selected+1, len(s.rows))))
	return b.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
