package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// Phase is the current step of a learning session.
type Phase int

const (
	PhaseChoosing Phase = iota // Picking a list
	PhaseLoading               // Story generation in flight
	PhaseStory                 // Reading slides
	PhaseQuiz                  // Answering definition questions
	PhaseSummary               // Showing results
)

func (p Phase) String() string {
	switch p {
	case PhaseChoosing:
		return "choosing"
	case PhaseLoading:
		return "loading"
	case PhaseStory:
		return "story"
	case PhaseQuiz:
		return "quiz"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}

var transitions = map[Phase][]Phase{
	PhaseChoosing: {PhaseLoading},
	PhaseLoading:  {PhaseStory, PhaseChoosing},
	PhaseStory:    {PhaseQuiz, PhaseSummary},
	PhaseQuiz:     {PhaseSummary},
}

// Session tracks one run from list choice through story and quiz.
type Session struct {
	ID        string
	List      SessionWordList
	Words     []string
	Phase     Phase
	StartedAt time.Time
	EndedAt   time.Time
}

// Start opens a session for the chosen list in the loading phase.
func Start(list SessionWordList, ws []string, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		List:      list,
		Words:     slices.Clone(ws),
		Phase:     PhaseLoading,
		StartedAt: now,
	}
}

// Advance moves the session to the next phase. Entering the summary phase
// stamps the end time.
func (s *Session) Advance(to Phase, now time.Time) error {
	if !slices.Contains(transitions[s.Phase], to) {
		return domain.InvalidState("advance to "+to.String(), s.Phase.String())
	}
	s.Phase = to
	if to == PhaseSummary {
		s.EndedAt = now
	}
	return nil
}

// Elapsed returns the session duration so far, or the final duration once
// the summary has been reached.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.EndedAt.IsZero() {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
