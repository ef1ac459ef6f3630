package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/words"
)

var day0 = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *words.Store
	agg   *Aggregator
	list  words.WordList
	now   time.Time
}

func newFixture(t *testing.T, texts ...string) *fixture {
	t.Helper()
	n := 0
	f := &fixture{now: day0}
	f.store = words.NewStore(words.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	logger, _ := test.NewNullLogger()
	f.agg = NewAggregator(f.store, WithClock(func() time.Time { return f.now }), WithLogger(logger))

	l, err := f.store.CreateList("Test")
	require.NoError(t, err)
	for _, txt := range texts {
		_, err := f.store.AddWord(l.ID, words.WordInput{Text: txt, AllowMeaning: true})
		require.NoError(t, err)
	}
	f.list, err = f.store.List(l.ID)
	require.NoError(t, err)
	return f
}

func (f *fixture) set(t *testing.T, text string, spelling, meaning float64) {
	t.Helper()
	w, err := f.store.FindWord(f.list.ID, text)
	require.NoError(t, err)
	_, err = f.store.UpdateWord(f.list.ID, w.ID, words.WordPatch{SpellingProgress: &spelling, MeaningProgress: &meaning})
	require.NoError(t, err)
}

func (f *fixture) word(t *testing.T, text string) words.Word {
	t.Helper()
	w, err := f.store.FindWord(f.list.ID, text)
	require.NoError(t, err)
	return w
}

func TestApplySessionResult_RaisesMeaningByStep(t *testing.T) {
	f := newFixture(t, "serendipity", "ancient")

	l, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Score: 1, Total: 2, Mastered: []string{"Serendipity"}})
	require.NoError(t, err)

	assert.InDelta(t, 0.2, f.word(t, "serendipity").MeaningProgress, 1e-9)
	assert.InDelta(t, 0.0, f.word(t, "ancient").MeaningProgress, 1e-9)
	assert.InDelta(t, 0.05, l.Stats.Progress, 1e-9)
	assert.Equal(t, 2, l.Stats.Struggling)
}

func TestApplySessionResult_ClampsAtOne(t *testing.T) {
	f := newFixture(t, "serendipity")
	f.set(t, "serendipity", 0.9, 0.9)

	l, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Score: 1, Total: 1, Mastered: []string{"serendipity"}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.word(t, "serendipity").MeaningProgress, 1e-9)
	assert.InDelta(t, 0.95, l.Stats.Progress, 1e-9)
}

func TestApplySessionResult_StatusAndAggregates(t *testing.T) {
	f := newFixture(t, "serendipity", "ancient")
	f.set(t, "serendipity", 0.9, 0.7)

	l, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Score: 1, Total: 2, Mastered: []string{"serendipity"}, CompletedAt: day0})
	require.NoError(t, err)

	assert.Equal(t, words.StatusMastered, f.word(t, "serendipity").Status())
	assert.Equal(t, 1, l.Stats.Mastered)
	assert.Equal(t, 1, l.Stats.Struggling)

	rs := f.agg.Records()
	require.Len(t, rs, 1)
	assert.Equal(t, RecordCompleted, rs[0].Kind)
	assert.Equal(t, []string{"serendipity"}, rs[0].NewlyMastered)
}

func TestApplySessionResult_NoDeduplication(t *testing.T) {
	f := newFixture(t, "serendipity")
	res := quiz.Result{Score: 1, Total: 1, Mastered: []string{"serendipity"}}

	_, err := f.agg.ApplySessionResult(f.list.ID, res)
	require.NoError(t, err)
	_, err = f.agg.ApplySessionResult(f.list.ID, res)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, f.word(t, "serendipity").MeaningProgress, 1e-9)
	assert.Len(t, f.agg.Records(), 2)
}

func TestApplySessionResult_UnknownWordMutatesNothing(t *testing.T) {
	f := newFixture(t, "serendipity", "ancient")

	_, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Mastered: []string{"ancient", "missing"}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Zero(t, f.word(t, "ancient").MeaningProgress)
	assert.Empty(t, f.agg.Records())
}

func TestApplySessionResult_UnknownList(t *testing.T) {
	f := newFixture(t)
	_, err := f.agg.ApplySessionResult("nope", quiz.Result{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.agg.StartSession("nope"), domain.ErrNotFound)
}

func TestApplySessionResult_Logs(t *testing.T) {
	f := newFixture(t, "serendipity")
	logger, hook := test.NewNullLogger()
	f.agg.log = logger

	_, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Score: 1, Total: 1, Mastered: []string{"serendipity"}})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, f.list.ID, entry.Data["list_id"])
	assert.Equal(t, 1, entry.Data["score"])
}

func TestWithStep(t *testing.T) {
	store := words.NewStore()
	l, err := store.CreateList("x")
	require.NoError(t, err)
	_, err = store.AddWord(l.ID, words.WordInput{Text: "gentle", AllowSpelling: true})
	require.NoError(t, err)

	agg := NewAggregator(store, WithStep(0.5), WithStep(-1))
	_, err = agg.ApplySessionResult(l.ID, quiz.Result{Mastered: []string{"gentle"}})
	require.NoError(t, err)

	w, err := store.FindWord(l.ID, "gentle")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, w.MeaningProgress, 1e-9)
}
