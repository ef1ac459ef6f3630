// Package quiz runs the multiple-choice meaning quiz that follows a story.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// State is the quiz engine phase.
type State int

const (
	StatePresenting State = iota
	StateFeedback
	StateSummary
)

func (s State) String() string {
	switch s {
	case StatePresenting:
		return "presenting"
	case StateFeedback:
		return "feedback"
	case StateSummary:
		return "summary"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config controls question construction.
type Config struct {
	// DistractorPool defaults to DefaultDistractorPool.
	DistractorPool []string
	// Rand drives distractor and option order. Defaults to a random seed.
	Rand *rand.Rand
	// Now stamps the result. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of a finished quiz.
type Result struct {
	Words       []string
	Score       int
	Total       int
	Mastered    []string
	CompletedAt time.Time
}

// Accuracy returns Score/Total, or 0 for an empty quiz.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

// Engine walks one question per word through
// Presenting → Feedback → Presenting | Summary. It is not safe for
// concurrent use.
type Engine struct {
	questions []Question
	rng       *rand.Rand
	now       func() time.Time

	state    State
	index    int
	options  []string
	correct  bool
	score    int
	mastered []string
	done     time.Time
}

// NewEngine builds the questions for ws. Each question gets the word's
// definition from defs and three distractors from the pool.
func NewEngine(ws []string, defs Definitions, cfg Config) (*Engine, error) {
	ws = lo.Map(ws, func(w string, _ int) string { return strings.TrimSpace(w) })
	if len(ws) == 0 {
		return nil, domain.NewValidationError("words", "at least one word is required")
	}
	if lo.Contains(ws, "") {
		return nil, domain.NewValidationError("words", "words must not be blank")
	}

	pool := cfg.DistractorPool
	if pool == nil {
		pool = DefaultDistractorPool()
	}
	pool = lo.Uniq(lo.Filter(pool, func(p string, _ int) bool { return strings.TrimSpace(p) != "" }))

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if defs == nil {
		defs = Definitions{}
	}

	qs := make([]Question, len(ws))
	for i, w := range ws {
		correct := defs.Lookup(w)
		ds, ok := pickDistractors(rng, pool, correct, DistractorsPerQuestion)
		if !ok {
			return nil, domain.NewValidationError("distractor_pool",
				fmt.Sprintf("need %d distractors besides the answer for %q", DistractorsPerQuestion, w))
		}
		qs[i] = Question{Word: w, Correct: correct, Distractors: ds}
	}

	return &Engine{questions: qs, rng: rng, now: now}, nil
}

// State returns the current phase.
func (e *Engine) State() State { return e.state }

// Index returns the zero-based index of the current question. In Summary it
// equals Total.
func (e *Engine) Index() int { return e.index }

// Total returns the number of questions.
func (e *Engine) Total() int { return len(e.questions) }

// Score returns the number of correct answers so far.
func (e *Engine) Score() int { return e.score }

// LastCorrect reports whether the answer being shown in Feedback was right.
func (e *Engine) LastCorrect() bool { return e.correct }

// Question returns the current question. It fails in Summary.
func (e *Engine) Question() (Question, error) {
	if e.state == StateSummary {
		return Question{}, domain.InvalidState("question", e.state.String())
	}
	return e.questions[e.index], nil
}

// Options renders the current question's four options in a new random
// order. SubmitAnswer indexes into the most recent rendering.
func (e *Engine) Options() ([]string, error) {
	if e.state != StatePresenting {
		return nil, domain.InvalidState("options", e.state.String())
	}
	e.options = e.questions[e.index].Options(e.rng)
	return append([]string(nil), e.options...), nil
}

// SubmitAnswer checks the option at idx of the last rendering against the
// correct definition and moves to Feedback. It reports whether the answer
// was right.
func (e *Engine) SubmitAnswer(idx int) (bool, error) {
	if e.state != StatePresenting {
		return false, domain.InvalidState("submit answer", e.state.String())
	}
	if e.options == nil {
		e.options = e.questions[e.index].Options(e.rng)
	}
	if idx < 0 || idx >= len(e.options) {
		return false, domain.NewValidationError("answer", fmt.Sprintf("index %d out of range [0,%d)", idx, len(e.options)))
	}

	q := e.questions[e.index]
	e.correct = e.options[idx] == q.Correct
	if e.correct {
		e.score++
		e.mastered = append(e.mastered, q.Word)
	}
	e.state = StateFeedback
	return e.correct, nil
}

// Acknowledge leaves Feedback for the next question, or Summary after the
// last one.
func (e *Engine) Acknowledge() error {
	if e.state != StateFeedback {
		return domain.InvalidState("acknowledge", e.state.String())
	}
	e.index++
	e.options = nil
	if e.index == len(e.questions) {
		e.state = StateSummary
		e.done = e.now()
		return nil
	}
	e.state = StatePresenting
	return nil
}

// Result returns the quiz outcome. It is only available in Summary.
func (e *Engine) Result() (Result, error) {
	if e.state != StateSummary {
		return Result{}, domain.InvalidState("result", e.state.String())
	}
	return Result{
		Words:       lo.Map(e.questions, func(q Question, _ int) string { return q.Word }),
		Score:       e.score,
		Total:       len(e.questions),
		Mastered:    append([]string(nil), e.mastered...),
		CompletedAt: e.done,
	}, nil
}
