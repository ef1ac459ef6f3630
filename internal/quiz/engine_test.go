package quiz

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, ws ...string) *Engine {
	t.Helper()
	e, err := NewEngine(ws, DefaultDefinitions(), Config{
		Rand: rand.New(rand.NewPCG(7, 11)),
		Now:  func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return e
}

// answer submits the correct or a wrong option for the current question,
// locating it by content.
func answer(t *testing.T, e *Engine, right bool) bool {
	t.Helper()
	q, err := e.Question()
	require.NoError(t, err)
	opts, err := e.Options()
	require.NoError(t, err)

	idx := slices.IndexFunc(opts, func(o string) bool { return (o == q.Correct) == right })
	require.GreaterOrEqual(t, idx, 0)
	ok, err := e.SubmitAnswer(idx)
	require.NoError(t, err)
	return ok
}

func TestEngine_CorrectFirstAnswer(t *testing.T) {
	e := newTestEngine(t, "ancient", "winding", "majestic")
	assert.Equal(t, StatePresenting, e.State())
	assert.Equal(t, 0, e.Index())

	assert.True(t, answer(t, e, true))
	assert.Equal(t, 1, e.Score())
	assert.Equal(t, StateFeedback, e.State())
	assert.True(t, e.LastCorrect())

	require.NoError(t, e.Acknowledge())
	assert.Equal(t, StatePresenting, e.State())
	assert.Equal(t, 1, e.Index())
}

func TestEngine_WrongAnswer(t *testing.T) {
	e := newTestEngine(t, "ancient", "winding")
	assert.False(t, answer(t, e, false))
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, StateFeedback, e.State())
	assert.False(t, e.LastCorrect())
}

func TestEngine_FullRunReachesSummary(t *testing.T) {
	e := newTestEngine(t, "ancient", "winding", "majestic")

	answer(t, e, true)
	require.NoError(t, e.Acknowledge())
	answer(t, e, false)
	require.NoError(t, e.Acknowledge())
	answer(t, e, true)
	require.NoError(t, e.Acknowledge())

	assert.Equal(t, StateSummary, e.State())
	assert.Equal(t, 3, e.Index())

	res, err := e.Result()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"ancient", "majestic"}, res.Mastered)
	assert.Equal(t, []string{"ancient", "winding", "majestic"}, res.Words)
	assert.Equal(t, fixedNow, res.CompletedAt)
	assert.InDelta(t, 2.0/3.0, res.Accuracy(), 1e-9)
}

func TestEngine_IllegalTransitions(t *testing.T) {
	e := newTestEngine(t, "ancient")

	require.ErrorIs(t, e.Acknowledge(), domain.ErrInvalidState)
	_, err := e.Result()
	require.ErrorIs(t, err, domain.ErrInvalidState)

	answer(t, e, true)
	_, err = e.SubmitAnswer(0)
	require.ErrorIs(t, err, domain.ErrInvalidState, "submitting twice without acknowledging")
	_, err = e.Options()
	require.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, e.Acknowledge())
	_, err = e.SubmitAnswer(0)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = e.Question()
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.ErrorIs(t, e.Acknowledge(), domain.ErrInvalidState)
}

func TestEngine_AnswerIndexOutOfRange(t *testing.T) {
	e := newTestEngine(t, "ancient")
	for _, idx := range []int{-1, 4} {
		_, err := e.SubmitAnswer(idx)
		require.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Equal(t, StatePresenting, e.State())
}

func TestEngine_SubmitWithoutRenderingOptions(t *testing.T) {
	e := newTestEngine(t, "ancient")
	_, err := e.SubmitAnswer(2)
	require.NoError(t, err)
	assert.Equal(t, StateFeedback, e.State())
}

func TestEngine_ScoreNeverExceedsTotal(t *testing.T) {
	ws := []string{"ancient", "winding", "enchanting", "majestic", "wonder"}
	e := newTestEngine(t, ws...)
	for e.State() != StateSummary {
		answer(t, e, true)
		assert.LessOrEqual(t, e.Score(), e.Total())
		require.NoError(t, e.Acknowledge())
	}
	assert.Equal(t, e.Total(), e.Score())
}

func TestEngine_OptionsContent(t *testing.T) {
	e := newTestEngine(t, "gentle")
	q, err := e.Question()
	require.NoError(t, err)
	assert.Equal(t, "Mild, soft, or tender", q.Correct)
	require.Len(t, q.Distractors, DistractorsPerQuestion)

	for range 10 {
		opts, err := e.Options()
		require.NoError(t, err)
		require.Len(t, opts, 4)
		assert.ElementsMatch(t, append([]string{q.Correct}, q.Distractors...), opts)
	}
	assert.Subset(t, DefaultDistractorPool(), q.Distractors)

	seen := map[string]bool{}
	for _, d := range q.Distractors {
		assert.False(t, seen[d])
		seen[d] = true
	}
}

func TestEngine_OptionOrderVaries(t *testing.T) {
	e := newTestEngine(t, "gentle")
	first, err := e.Options()
	require.NoError(t, err)

	varied := false
	for range 50 {
		opts, err := e.Options()
		require.NoError(t, err)
		if !slices.Equal(first, opts) {
			varied = true
			break
		}
	}
	assert.True(t, varied)
}

func TestEngine_FallbackDefinition(t *testing.T) {
	e := newTestEngine(t, "serendipity")
	q, err := e.Question()
	require.NoError(t, err)
	assert.Equal(t, FallbackDefinition, q.Correct)
}

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name string
		ws   []string
		pool []string
	}{
		{"no words", nil, nil},
		{"blank word", []string{"ancient", "  "}, nil},
		{"pool too small", []string{"ancient"}, []string{"a", "b"}},
		{"duplicates do not count", []string{"ancient"}, []string{"a", "b", "b", "b"}},
		{"answer excluded from pool", []string{"ancient"}, []string{"a", "b", "Very old; from a long time ago"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.ws, DefaultDefinitions(), Config{DistractorPool: tt.pool})
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNewEngine_ExcludesCorrectFromDistractors(t *testing.T) {
	correct := "Very old; from a long time ago"
	pool := []string{correct, "a", "b", "c"}
	e, err := NewEngine([]string{"ancient"}, DefaultDefinitions(), Config{
		DistractorPool: pool,
		Rand:           rand.New(rand.NewPCG(1, 1)),
	})
	require.NoError(t, err)

	q, err := e.Question()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, q.Distractors)
}

func TestNewEngine_ExcludesCaseVariantsOfCorrect(t *testing.T) {
	pool := []string{"VERY OLD; FROM A LONG TIME AGO ", "a", "b", "c"}
	e, err := NewEngine([]string{"ancient"}, DefaultDefinitions(), Config{
		DistractorPool: pool,
		Rand:           rand.New(rand.NewPCG(1, 1)),
	})
	require.NoError(t, err)

	q, err := e.Question()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, q.Distractors)

	_, ok := pickDistractors(rand.New(rand.NewPCG(1, 1)), []string{"Kind", "kind ", "x", "y"}, "KIND", 3)
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "presenting", StatePresenting.String())
	assert.Equal(t, "feedback", StateFeedback.String())
	assert.Equal(t, "summary", StateSummary.String())
	assert.Equal(t, "State(9)", State(9).String())
}
