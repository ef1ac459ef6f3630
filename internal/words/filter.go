package words

import (
	"iter"
	"slices"
	"strings"
)

// Filter selects words by search text, status and priority.
type Filter struct {
	// Search matches case-insensitively against word text or definition.
	// Blank means no text restriction.
	Search string

	// Statuses is an inclusive-OR set. Empty means no status restriction.
	Statuses []Status

	// PriorityOnly restricts the result to priority words.
	PriorityOnly bool
}

// Match reports whether w passes every active predicate.
func (f Filter) Match(w Word) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(w.Text), q) &&
			!strings.Contains(strings.ToLower(w.Definition), q) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, w.Status()) {
		return false
	}
	if f.PriorityOnly && !w.IsPriority {
		return false
	}
	return true
}

// FilterWords lazily yields the words of seq that match f, preserving order.
func FilterWords(seq iter.Seq[Word], f Filter) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		for w := range seq {
			if !f.Match(w) {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}
