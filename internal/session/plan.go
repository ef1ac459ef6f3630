package session

import "time"

// Kind tells whether a list is being learned for the first time or revisited.
type Kind string

const (
	KindNew    Kind = "new"
	KindReview Kind = "review"
)

// Label returns the display label for the kind.
func (k Kind) Label() string {
	if k == KindReview {
		return "Review"
	}
	return "New"
}

// SessionWordList is an entry the learner can pick to start a session.
type SessionWordList struct {
	ID        string
	Name      string
	WordCount int
	Kind      Kind
}

// Lookup maps a list name to the words practised when that list is chosen.
type Lookup map[string][]string

// DefaultSessionSize is the number of words a session selects from a list.
const DefaultSessionSize = 5

// DefaultSessionDuration is the target session length.
const DefaultSessionDuration = 15 * time.Minute
