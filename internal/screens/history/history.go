// Package history lists a learner's past sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/store"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Events []store.SessionEvent
	Err    error
}

// sessionRow folds the events of one session, newest event first.
type sessionRow struct {
	SessionID string
	ListName  string
	Outcome   string
	Score     int
	Total     int
	Duration  int64
	Events    []store.SessionEvent
}

// group folds events, which arrive newest first, into one row per session
// in the same order.
func group(events []store.SessionEvent) []sessionRow {
	var rows []sessionRow
	index := make(map[string]int)
	for _, e := range events {
		i, ok := index[e.SessionID]
		if !ok {
			index[e.SessionID] = len(rows)
			rows = append(rows, sessionRow{
				SessionID: e.SessionID,
				ListName:  e.ListName,
				Outcome:   e.Action,
				Score:     e.Score,
				Total:     e.Total,
				Duration:  e.DurationSecs,
			})
			i = len(rows) - 1
		}
		rows[i].Events = append(rows[i].Events, e)
	}
	return rows
}

// HistoryScreen displays past sessions of one profile.
type HistoryScreen struct {
	events   store.EventRepo
	profile  *profile.Profile
	rows     []sessionRow
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.HeaderProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. events may be nil when nothing is persisted.
func New(events store.EventRepo, p *profile.Profile) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		profile:  p,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, id := s.events, s.profile.Child.ID
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		events, err := repo.SessionEvents(context.Background(), id, store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Header() layout.HeaderInfo { return screen.LearnerHeader(s.profile) }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = group(msg.Events)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case s.errMsg != "":
		return components.Frame(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg), width, height)
	case !s.loaded:
		return components.Frame(theme.Hint.Render("Loading history..."), width, height)
	case len(s.rows) == 0:
		return components.Frame(theme.Hint.Italic(true).Render("No sessions yet. Pick a list and read a story!"), width, height)
	}

	var b strings.Builder
	for i, row := range s.rows {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		date := row.Events[len(row.Events)-1].Timestamp.Format("Jan 02 15:04")
		line := fmt.Sprintf("%s%s  %-22s %5s  %s", prefix, date, truncate(row.ListName, 22), duration(row.Duration), outcome(row))
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			// oldest first reads like a timeline
			for j := len(row.Events) - 1; j >= 0; j-- {
				e := row.Events[j]
				b.WriteString(theme.Hint.Render(fmt.Sprintf("      %s  %s", e.Timestamp.Format("15:04:05"), e.Action)))
				b.WriteString("\n")
			}
		}
	}
	return components.Frame(components.Card(strings.TrimRight(b.String(), "\n"), cw), width, height)
}

func outcome(row sessionRow) string {
	switch row.Outcome {
	case store.ActionQuiz:
		return theme.Correct.Render(fmt.Sprintf("quiz %d/%d", row.Score, row.Total))
	case store.ActionStory:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("story read")
	case store.ActionAbandon:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render("paused")
	}
	return theme.Hint.Render("started")
}

func duration(secs int64) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
