package words

import (
	"slices"
	"time"
)

// SourceCustom marks a list created by hand rather than imported from a pack.
const SourceCustom = "custom"

// WordList is a named, ordered collection of words with cached aggregates.
type WordList struct {
	ID        string
	Name      string
	Source    string
	Words     []Word
	Stats     Stats
	CreatedAt time.Time
}

// clone returns a deep copy safe to hand to callers.
func (l *WordList) clone() WordList {
	c := *l
	c.Words = slices.Clone(l.Words)
	return c
}

// recompute refreshes the cached aggregates after a mutation.
func (l *WordList) recompute() {
	l.Stats = ComputeStats(l.Words)
}

func (l *WordList) indexOf(wordID string) int {
	return slices.IndexFunc(l.Words, func(w Word) bool { return w.ID == wordID })
}
