// Package progress turns quiz results into word progress and builds the
// per-list and per-child reports.
package progress

import (
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/words"
)

// DefaultMeaningStep is how far one correct quiz answer raises meaning
// progress.
const DefaultMeaningStep = 0.2

// RecordKind distinguishes session records.
type RecordKind string

const (
	RecordStarted   RecordKind = "started"
	RecordCompleted RecordKind = "completed"
)

// SessionRecord is one entry of a child's session history.
type SessionRecord struct {
	ListID string
	Kind   RecordKind
	At     time.Time

	// Completed sessions only.
	Score         int
	Total         int
	Mastered      []string
	NewlyMastered []string // words whose status reached mastered
}

// Aggregator applies session results to a words store and keeps the
// session history reports are built from. It is not safe for concurrent
// use; each profile owns its own Aggregator.
type Aggregator struct {
	words   *words.Store
	step    float64
	now     func() time.Time
	log     logrus.FieldLogger
	records []SessionRecord
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithStep overrides DefaultMeaningStep.
func WithStep(step float64) Option {
	return func(a *Aggregator) {
		if step > 0 {
			a.step = step
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(a *Aggregator) { a.now = fn }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Aggregator) { a.log = l }
}

// NewAggregator creates an Aggregator over store.
func NewAggregator(store *words.Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		words: store,
		step:  DefaultMeaningStep,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StartSession records that a session on listID began.
func (a *Aggregator) StartSession(listID string) error {
	if _, err := a.words.List(listID); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	a.records = append(a.records, SessionRecord{ListID: listID, Kind: RecordStarted, At: a.now()})
	return nil
}

// ApplySessionResult raises the meaning progress of every mastered word by
// the step, clamped to 1.0. Every mastered word is checked against the list
// before anything changes. Results are not deduplicated: applying the same
// result twice counts twice.
func (a *Aggregator) ApplySessionResult(listID string, res quiz.Result) (words.WordList, error) {
	for _, text := range res.Mastered {
		if _, err := a.words.FindWord(listID, text); err != nil {
			return words.WordList{}, fmt.Errorf("apply session result: %w", err)
		}
	}

	var newly []string
	for _, text := range res.Mastered {
		w, err := a.words.FindWord(listID, text)
		if err != nil {
			return words.WordList{}, fmt.Errorf("apply session result: %w", err)
		}
		before := w.Status()
		meaning := min(1.0, w.MeaningProgress+a.step)
		updated, err := a.words.UpdateWord(listID, w.ID, words.WordPatch{MeaningProgress: &meaning})
		if err != nil {
			return words.WordList{}, fmt.Errorf("apply session result: %w", err)
		}
		if before != words.StatusMastered && updated.Status() == words.StatusMastered {
			newly = append(newly, updated.Text)
		}
	}

	at := res.CompletedAt
	if at.IsZero() {
		at = a.now()
	}
	a.records = append(a.records, SessionRecord{
		ListID:        listID,
		Kind:          RecordCompleted,
		At:            at,
		Score:         res.Score,
		Total:         res.Total,
		Mastered:      slices.Clone(res.Mastered),
		NewlyMastered: newly,
	})

	l, err := a.words.List(listID)
	if err != nil {
		return words.WordList{}, fmt.Errorf("apply session result: %w", err)
	}
	a.log.WithFields(logrus.Fields{
		"list_id":  listID,
		"score":    res.Score,
		"total":    res.Total,
		"mastered": len(newly),
	}).Info("session result applied")
	return l, nil
}

// Records returns a copy of the session history, oldest first.
func (a *Aggregator) Records() []SessionRecord {
	return slices.Clone(a.records)
}

// RestoreRecords replaces the session history.
func (a *Aggregator) RestoreRecords(rs []SessionRecord) {
	a.records = slices.Clone(rs)
	slices.SortStableFunc(a.records, func(x, y SessionRecord) int { return x.At.Compare(y.At) })
}
