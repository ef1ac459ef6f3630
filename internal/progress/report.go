package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Period is the window a report covers.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Duration returns the window length.
func (p Period) Duration() time.Duration {
	if p == PeriodWeek {
		return 7 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// ParsePeriod parses "week" or "month", case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", domain.NewValidationError("period", fmt.Sprintf("unknown period %q", s))
}

// SessionStats summarizes a set of session records.
type SessionStats struct {
	Started        int
	Completed      int
	CompletionRate float64 // completed / started, capped at 1
	AverageScore   float64 // mean accuracy of completed sessions
	WordsMastered  int
}

// ListSummary describes one list.
type ListSummary struct {
	ListID   string
	Name     string
	Stats    words.Stats
	Spelling float64
	Meaning  float64
	Sessions SessionStats
	LastRun  time.Time
}

// Report is a child's progress over a period.
type Report struct {
	Period   Period
	From, To time.Time

	Lists       int
	Words       int
	Struggling  int
	Progressing int
	Mastered    int
	Progress    float64
	Spelling    float64
	Meaning     float64

	Sessions SessionStats
	PerList  []ListSummary
}

// ListSummary reports the current state and full session history of a
// list.
func (a *Aggregator) ListSummary(listID string) (ListSummary, error) {
	l, err := a.words.List(listID)
	if err != nil {
		return ListSummary{}, fmt.Errorf("list summary: %w", err)
	}
	return a.summarize(l, lo.Filter(a.records, func(r SessionRecord, _ int) bool { return r.ListID == listID })), nil
}

func (a *Aggregator) summarize(l words.WordList, rs []SessionRecord) ListSummary {
	s := ListSummary{
		ListID:   l.ID,
		Name:     l.Name,
		Stats:    l.Stats,
		Spelling: mean(l.Words, func(w words.Word) float64 { return w.SpellingProgress }),
		Meaning:  mean(l.Words, func(w words.Word) float64 { return w.MeaningProgress }),
		Sessions: sessionStats(rs),
	}
	if len(rs) > 0 {
		s.LastRun = lo.MaxBy(rs, func(x, y SessionRecord) bool { return x.At.After(y.At) }).At
	}
	return s
}

// Report aggregates every list for the period ending at now. Word figures
// reflect the current state; session figures only count records inside the
// window.
func (a *Aggregator) Report(period Period, now time.Time) Report {
	from := now.Add(-period.Duration())
	inWindow := lo.Filter(a.records, func(r SessionRecord, _ int) bool {
		return !r.At.Before(from) && !r.At.After(now)
	})

	lists := a.words.Lists()
	all := lo.FlatMap(lists, func(l words.WordList, _ int) []words.Word { return l.Words })
	st := words.ComputeStats(all)

	return Report{
		Period:      period,
		From:        from,
		To:          now,
		Lists:       len(lists),
		Words:       st.Total,
		Struggling:  st.Struggling,
		Progressing: st.Progressing,
		Mastered:    st.Mastered,
		Progress:    st.Progress,
		Spelling:    mean(all, func(w words.Word) float64 { return w.SpellingProgress }),
		Meaning:     mean(all, func(w words.Word) float64 { return w.MeaningProgress }),
		Sessions:    sessionStats(inWindow),
		PerList: lo.Map(lists, func(l words.WordList, _ int) ListSummary {
			return a.summarize(l, lo.Filter(inWindow, func(r SessionRecord, _ int) bool { return r.ListID == l.ID }))
		}),
	}
}

func sessionStats(rs []SessionRecord) SessionStats {
	completed := lo.Filter(rs, func(r SessionRecord, _ int) bool { return r.Kind == RecordCompleted })
	s := SessionStats{
		Started:   lo.CountBy(rs, func(r SessionRecord) bool { return r.Kind == RecordStarted }),
		Completed: len(completed),
		WordsMastered: lo.SumBy(completed, func(r SessionRecord) int {
			return len(r.NewlyMastered)
		}),
	}
	if s.Started > 0 {
		s.CompletionRate = min(1, float64(s.Completed)/float64(s.Started))
	}
	if len(completed) > 0 {
		s.AverageScore = lo.SumBy(completed, func(r SessionRecord) float64 {
			if r.Total == 0 {
				return 0
			}
			return float64(r.Score) / float64(r.Total)
		}) / float64(len(completed))
	}
	return s
}

func mean(ws []words.Word, f func(words.Word) float64) float64 {
	if len(ws) == 0 {
		return 0
	}
	return lo.SumBy(ws, f) / float64(len(ws))
}
