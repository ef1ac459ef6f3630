// Package summary shows how a finished session went.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeCapturer = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) CapturesEscape() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Lists"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.PopCmd()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60

	lines := []string{
		theme.Title.Render(headline(sum)),
		theme.Hint.Render(fmt.Sprintf("%s · %d words · %d:%02d", sum.ListName, sum.Words, mins, secs)),
		"",
	}

	if !sum.QuizTaken {
		lines = append(lines, theme.Body.Render("You read the whole story. Take the quiz next time to grow your words!"))
		return components.Frame(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
	}

	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
			fmt.Sprintf("Score: %d / %d        Accuracy: %.0f%%", sum.Score, sum.Total, sum.Accuracy*100)),
		"",
		components.ProgressBar{Percent: sum.Accuracy, ShowPercent: true, Width: cw - 10}.View(),
	)

	if len(sum.Mastered) > 0 {
		var b strings.Builder
		b.WriteString(theme.Subtitle.Render("Words you got right"))
		b.WriteString("\n\n")
		for _, w := range sum.Mastered {
			b.WriteString(theme.Correct.Render("★ " + w))
			b.WriteString("\n")
		}
		lines = append(lines, "", components.Card(strings.TrimRight(b.String(), "\n"), cw))
	}

	return components.Frame(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

func headline(sum *session.Summary) string {
	switch {
	case !sum.QuizTaken:
		return "Story complete!"
	case sum.Score == sum.Total:
		return "Perfect score!"
	case sum.Accuracy >= 0.6:
		return "Great work!"
	default:
		return "Nice try, keep practising!"
	}
}
