// Package wordedit is the form for adding a word to a list or changing one.
package wordedit

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screen"
	"github.com/vocabflow/vocabflow/internal/tutor"
	"github.com/vocabflow/vocabflow/internal/ui/components"
	"github.com/vocabflow/vocabflow/internal/ui/layout"
	"github.com/vocabflow/vocabflow/internal/ui/theme"
	"github.com/vocabflow/vocabflow/internal/words"
)

type field int

const (
	fieldText field = iota
	fieldDefinition
	fieldSpelling
	fieldMeaning
	fieldSave
	fieldCount
)

// EditScreen hosts the word form. Saving pops back to the previous screen.
type EditScreen struct {
	svc     *tutor.Service
	profile *profile.Profile
	listID  string
	wordID  string // empty when adding

	text       components.TextInput
	definition components.TextInput
	spelling   bool
	meaning    bool

	focus  field
	errMsg string
}

var _ screen.Screen = (*EditScreen)(nil)
var _ screen.KeyHintProvider = (*EditScreen)(nil)
var _ screen.HeaderProvider = (*EditScreen)(nil)

// NewAdd opens an empty form that adds a word to listID.
func NewAdd(svc *tutor.Service, p *profile.Profile, listID string) *EditScreen {
	return newForm(svc, p, listID, words.Word{AllowSpelling: true, AllowMeaning: true})
}

// NewEdit opens the form filled in from w.
func NewEdit(svc *tutor.Service, p *profile.Profile, listID string, w words.Word) *EditScreen {
	return newForm(svc, p, listID, w)
}

func newForm(svc *tutor.Service, p *profile.Profile, listID string, w words.Word) *EditScreen {
	s := &EditScreen{
		svc:        svc,
		profile:    p,
		listID:     listID,
		wordID:     w.ID,
		text:       components.NewTextInput("Word:       ", "one word, no spaces", 40),
		definition: components.NewTextInput("Definition: ", "what it means (optional)", 120),
		spelling:   w.AllowSpelling,
		meaning:    w.AllowMeaning,
	}
	s.text.SetValue(w.Text)
	s.definition.SetValue(w.Definition)
	s.definition.Blur()
	return s
}

func (s *EditScreen) Init() tea.Cmd { return s.text.Init() }

func (s *EditScreen) Title() string {
	if s.wordID == "" {
		return "Add Word"
	}
	return "Edit Word"
}

func (s *EditScreen) Header() layout.HeaderInfo { return screen.LearnerHeader(s.profile) }

func (s *EditScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab/↑↓", Description: "Move"}}
	switch s.focus {
	case fieldSpelling, fieldMeaning:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldSave:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel"})
}

func (s *EditScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.forward(msg)
	}

	switch key := kmsg.String(); key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		switch s.focus {
		case fieldSave:
			return s, s.save()
		case fieldSpelling, fieldMeaning:
			s.toggle()
			return s, nil
		}
		return s, s.setFocus(s.focus + 1)
	case "space":
		if s.focus == fieldSpelling || s.focus == fieldMeaning {
			s.toggle()
			return s, nil
		}
	}
	return s.forward(msg)
}

// forward passes msg to the focused text input, if any.
func (s *EditScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldText:
		s.text, cmd = s.text.Update(msg)
	case fieldDefinition:
		s.definition, cmd = s.definition.Update(msg)
	}
	return s, cmd
}

func (s *EditScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.text.Blur()
	s.definition.Blur()
	switch f {
	case fieldText:
		return s.text.Focus()
	case fieldDefinition:
		return s.definition.Focus()
	}
	return nil
}

func (s *EditScreen) toggle() {
	if s.focus == fieldSpelling {
		s.spelling = !s.spelling
	} else {
		s.meaning = !s.meaning
	}
	s.errMsg = ""
}

func (s *EditScreen) save() tea.Cmd {
	var err error
	if s.wordID == "" {
		_, err = s.profile.Words.AddWord(s.listID, words.WordInput{
			Text:          s.text.Value(),
			Definition:    s.definition.Value(),
			AllowSpelling: s.spelling,
			AllowMeaning:  s.meaning,
		})
	} else {
		text, def := s.text.Value(), s.definition.Value()
		_, err = s.profile.Words.UpdateWord(s.listID, s.wordID, words.WordPatch{
			Text:          &text,
			Definition:    &def,
			AllowSpelling: &s.spelling,
			AllowMeaning:  &s.meaning,
		})
	}
	if err == nil {
		err = s.svc.Save(context.Background(), s.profile)
	}
	if err != nil {
		s.errMsg = describe(err)
		return nil
	}
	return router.PopCmd()
}

// describe turns validation failures into one line per field.
func describe(err error) string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	lines := make([]string, len(verr.Errors))
	for i, fe := range verr.Errors {
		lines[i] = fe.Field + " " + fe.Message
	}
	return strings.Join(lines, "\n")
}

func (s *EditScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	parts := []string{
		theme.Title.Render(s.Title()),
		"",
		s.text.View(),
		s.definition.View(),
		"",
		s.checkbox(fieldSpelling, "Practise spelling", s.spelling),
		s.checkbox(fieldMeaning, "Practise meaning", s.meaning),
		"",
		components.Button("Save", s.focus == fieldSave, 16),
	}
	if s.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return components.Frame(components.Card(lipgloss.JoinVertical(lipgloss.Left, parts...), cw), width, height)
}

func (s *EditScreen) checkbox(f field, label string, on bool) string {
	box := "[ ] "
	if on {
		box = "[x] "
	}
	if s.focus == f {
		return theme.Selected.Render("▸ " + box + label)
	}
	return theme.Unselected.Render("  " + box + label)
}
