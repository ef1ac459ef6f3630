package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/quiz"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" Week ")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	p, err = ParsePeriod("month")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("year")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestListSummary(t *testing.T) {
	f := newFixture(t, "serendipity", "ancient")
	f.set(t, "ancient", 0.6, 0.4)

	require.NoError(t, f.agg.StartSession(f.list.ID))
	require.NoError(t, f.agg.StartSession(f.list.ID))
	f.now = day0.Add(time.Hour)
	_, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{Score: 1, Total: 2, Mastered: []string{"serendipity"}})
	require.NoError(t, err)

	s, err := f.agg.ListSummary(f.list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", s.Name)
	assert.Equal(t, 2, s.Stats.Total)
	assert.InDelta(t, 0.3, s.Spelling, 1e-9)
	assert.InDelta(t, 0.3, s.Meaning, 1e-9)
	assert.Equal(t, 2, s.Sessions.Started)
	assert.Equal(t, 1, s.Sessions.Completed)
	assert.InDelta(t, 0.5, s.Sessions.CompletionRate, 1e-9)
	assert.InDelta(t, 0.5, s.Sessions.AverageScore, 1e-9)
	assert.Equal(t, day0.Add(time.Hour), s.LastRun)

	_, err = f.agg.ListSummary("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReport_Window(t *testing.T) {
	f := newFixture(t, "serendipity", "ancient")
	f.set(t, "serendipity", 1, 0.7)

	// an old session outside the week window
	f.agg.RestoreRecords([]SessionRecord{
		{ListID: f.list.ID, Kind: RecordStarted, At: day0.Add(-10 * 24 * time.Hour)},
		{ListID: f.list.ID, Kind: RecordCompleted, At: day0.Add(-10 * 24 * time.Hour), Score: 0, Total: 2},
	})

	require.NoError(t, f.agg.StartSession(f.list.ID))
	_, err := f.agg.ApplySessionResult(f.list.ID, quiz.Result{
		Score: 2, Total: 2, Mastered: []string{"serendipity", "ancient"}, CompletedAt: day0,
	})
	require.NoError(t, err)

	now := day0.Add(time.Hour)
	week := f.agg.Report(PeriodWeek, now)
	assert.Equal(t, now.Add(-7*24*time.Hour), week.From)
	assert.Equal(t, 1, week.Lists)
	assert.Equal(t, 2, week.Words)
	assert.Equal(t, 1, week.Mastered)
	assert.Equal(t, 1, week.Struggling)
	assert.Equal(t, 1, week.Sessions.Started)
	assert.Equal(t, 1, week.Sessions.Completed)
	assert.InDelta(t, 1.0, week.Sessions.CompletionRate, 1e-9)
	assert.InDelta(t, 1.0, week.Sessions.AverageScore, 1e-9)
	assert.Equal(t, 1, week.Sessions.WordsMastered)
	assert.InDelta(t, 0.5, week.Spelling, 1e-9)
	assert.InDelta(t, 0.55, week.Meaning, 1e-9)
	require.Len(t, week.PerList, 1)
	assert.Equal(t, 1, week.PerList[0].Sessions.Completed)

	month := f.agg.Report(PeriodMonth, now)
	assert.Equal(t, 2, month.Sessions.Started)
	assert.Equal(t, 2, month.Sessions.Completed)
	assert.InDelta(t, 0.5, month.Sessions.AverageScore, 1e-9)
}

func TestReport_Empty(t *testing.T) {
	f := newFixture(t)
	r := f.agg.Report(PeriodMonth, day0)
	assert.Equal(t, 1, r.Lists)
	assert.Zero(t, r.Words)
	assert.Zero(t, r.Progress)
	assert.Zero(t, r.Sessions.CompletionRate)
	assert.Zero(t, r.Sessions.AverageScore)
}
