package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *SessionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch s.mode {
	case modeLoading:
		content = s.renderLoading(cw)
	case modeStory:
		content = s.renderStory(cw)
	case modePaused:
		content = renderDialog(cw, "Taking a break?", "Your progress will be saved.", pauseOptions, s.dialogSel)
	case modeStoryDone:
		content = renderDialog(cw, "You finished the story!", "Ready to check what the words mean?", doneOptions, s.dialogSel)
	case modeQuiz, modeFeedback:
		content = s.renderQuiz(cw)
	default:
		content = lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Error: %s\n\nPress any key to go back.", s.errMsg))
	}
	return components.Frame(content, width, height)
}

func (s *SessionScreen) renderLoading(cw int) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	words := strings.Join(s.run.Session.Words, " · ")
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(frame+" Creating Your Story..."),
		"",
		theme.Hint.Width(cw).Align(lipgloss.Center).Render("Weaving in: "+words),
	)
}

func (s *SessionScreen) renderStory(cw int) string {
	reader := s.run.Reader()
	cur, total := reader.Position()

	var text strings.Builder
	for _, seg := range reader.Current().Segments() {
		if seg.Word != "" {
			text.WriteString(theme.Vocab.Render(seg.Text))
			continue
		}
		text.WriteString(theme.Body.Render(seg.Text))
	}

	page := components.Card(lipgloss.NewStyle().Width(cw-6).Render(text.String()), cw)
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Slide %d of %d", cur, total),
		Percent: float64(cur) / float64(total),
		Width:   cw - 20,
	}

	next := "→ Next"
	if reader.AtEnd() {
		next = "→ Finish"
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		page,
		"",
		bar.View(),
		"",
		theme.Hint.Render("← Back   "+next),
	)
}

func (s *SessionScreen) renderQuiz(cw int) string {
	e := s.run.Quiz()
	idx := e.Index()
	progress := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d   ★ %d", idx+1, e.Total(), e.Score()))

	parts := []string{progress, "", components.Card(s.choice.View(), cw)}
	if s.mode == modeFeedback {
		var verdict string
		if e.LastCorrect() {
			verdict = theme.Correct.Render("Correct! Great job!")
		} else {
			verdict = theme.Incorrect.Render("Not quite. The answer is highlighted.")
		}
		parts = append(parts, "", verdict, theme.Hint.Render("Press any key to continue..."))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderDialog(cw int, title, body string, options []string, selected int) string {
	inner := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(title),
		theme.Hint.Render(body),
		"",
		components.Buttons(options, selected, min(cw-12, 28)),
	)
	return theme.Dialog.Render(inner)
}
