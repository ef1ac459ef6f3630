package quiz

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// DistractorsPerQuestion is the number of wrong options per question.
const DistractorsPerQuestion = 3

// Question asks for the meaning of one word.
type Question struct {
	Word        string
	Correct     string
	Distractors []string
}

// Options returns the correct definition and the distractors in a fresh
// random order.
func (q Question) Options(rng *rand.Rand) []string {
	opts := make([]string, 0, len(q.Distractors)+1)
	opts = append(opts, q.Correct)
	opts = append(opts, q.Distractors...)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

// pickDistractors draws n entries of pool without replacement, skipping any
// equal to correct ignoring case and surrounding space. ok is false when too
// few remain.
func pickDistractors(rng *rand.Rand, pool []string, correct string, n int) ([]string, bool) {
	correct = strings.TrimSpace(correct)
	usable := slices.DeleteFunc(slices.Clone(pool), func(p string) bool {
		return strings.EqualFold(strings.TrimSpace(p), correct)
	})
	if len(usable) < n {
		return nil, false
	}
	out := make([]string, n)
	for i, j := range rng.Perm(len(usable))[:n] {
		out[i] = usable[j]
	}
	return out, true
}
