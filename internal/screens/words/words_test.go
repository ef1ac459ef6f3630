package words

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/profile"
	"github.com/vocabflow/vocabflow/internal/router"
	"github.com/vocabflow/vocabflow/internal/screens/wordedit"
	"github.com/vocabflow/vocabflow/internal/tutor"
	vocab "github.com/vocabflow/vocabflow/internal/words"
)

func newScreen(t *testing.T) *WordsScreen {
	t.Helper()
	logger, _ := test.NewNullLogger()
	svc := tutor.New(tutor.Options{
		Profiles: profile.NewRegistry(profile.WithLogger(logger)),
		Logger:   logger,
	})
	p, err := svc.CreateProfile(context.Background(), profile.ChildInput{Name: "Lily", GradeLevel: "2nd Grade"}, nil)
	require.NoError(t, err)
	return New(svc, p, p.Words.Lists()[0].ID)
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestWordsScreen_ListsAllWords(t *testing.T) {
	s := newScreen(t)
	assert.Len(t, s.rows, 12)
	assert.Equal(t, "Animals & Nature", s.Title())
	assert.Contains(t, s.View(100, 40), "ancient")
}

func TestWordsScreen_Search(t *testing.T) {
	s := newScreen(t)
	s.search.SetValue("ANCIENT")
	s.refresh()
	require.Len(t, s.rows, 1)
	assert.Equal(t, "ancient", s.rows[0].Text)

	s.search.SetValue("zzz")
	s.refresh()
	assert.Empty(t, s.rows)
	assert.Contains(t, s.View(100, 40), "No words match")
}

func TestWordsScreen_SlashFocusesSearch(t *testing.T) {
	s := newScreen(t)
	assert.False(t, s.CapturesEscape())

	s.Update(char('/'))
	assert.True(t, s.search.Focused())
	assert.True(t, s.CapturesEscape())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, s.search.Focused())
}

func TestWordsScreen_StatusTabs(t *testing.T) {
	s := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Len(t, s.rows, 12, "fresh words are struggling")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Empty(t, s.rows)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 0, s.tab)
	assert.Len(t, s.rows, 12)
}

func TestWordsScreen_TogglePriority(t *testing.T) {
	s := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	target := s.rows[1].ID

	s.Update(char('t'))
	assert.Empty(t, s.errMsg)

	s.Update(char('p'))
	require.Len(t, s.rows, 1)
	assert.Equal(t, target, s.rows[0].ID)
	assert.True(t, s.rows[0].IsPriority)
	assert.Equal(t, 0, s.selected)
}

func TestWordsScreen_AddAndEditOpenForm(t *testing.T) {
	s := newScreen(t)

	_, cmd := s.Update(char('a'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	require.IsType(t, &wordedit.EditScreen{}, msg.Screen)
	assert.Equal(t, "Add Word", msg.Screen.Title())

	_, cmd = s.Update(char('e'))
	require.NotNil(t, cmd)
	msg, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Edit Word", msg.Screen.Title())
}

func TestWordsScreen_ResumedRefreshes(t *testing.T) {
	s := newScreen(t)
	_, err := s.profile.Words.AddWord(s.listID, vocab.WordInput{Text: "otter", AllowMeaning: true})
	require.NoError(t, err)
	assert.Len(t, s.rows, 12)

	s.Update(router.ResumedMsg{})
	assert.Len(t, s.rows, 13)
}

func TestWordsScreen_RemoveNeedsConfirmation(t *testing.T) {
	s := newScreen(t)
	first := s.rows[0]

	s.Update(char('x'))
	assert.True(t, s.removing)
	assert.Contains(t, s.View(100, 40), "Press y to confirm")
	s.Update(char('n'))
	assert.False(t, s.removing)
	assert.Len(t, s.rows, 12)

	s.Update(char('x'))
	s.Update(char('y'))
	assert.Empty(t, s.errMsg)
	require.Len(t, s.rows, 11)
	_, err := s.profile.Words.FindWord(s.listID, first.Text)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
