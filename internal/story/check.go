package story

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Check inspects generated passages. Implementations are stateless.
type Check interface {
	Name() string
	Check(passages []string, b Brief) *RejectError
}

// RejectError explains why generated passages were refused.
type RejectError struct {
	Check   string
	Message string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("check %q: %s", e.Check, e.Message)
}

// PassageCountCheck requires at least one passage and no more than twice
// the requested number.
type PassageCountCheck struct{}

func (PassageCountCheck) Name() string { return "passage-count" }

func (c PassageCountCheck) Check(passages []string, b Brief) *RejectError {
	if len(passages) == 0 {
		return &RejectError{Check: c.Name(), Message: "no passages"}
	}
	if b.Passages > 0 && len(passages) > 2*b.Passages {
		return &RejectError{Check: c.Name(), Message: fmt.Sprintf("%d passages, asked for %d", len(passages), b.Passages)}
	}
	return nil
}

// PassageLengthCheck rejects empty passages and passages over the word limit.
type PassageLengthCheck struct{}

func (PassageLengthCheck) Name() string { return "passage-length" }

func (c PassageLengthCheck) Check(passages []string, b Brief) *RejectError {
	for i, p := range passages {
		n := len(strings.Fields(p))
		if n == 0 {
			return &RejectError{Check: c.Name(), Message: fmt.Sprintf("passage %d is empty", i+1)}
		}
		if b.MaxWords > 0 && n > b.MaxWords {
			return &RejectError{Check: c.Name(), Message: fmt.Sprintf("passage %d has %d words, limit %d", i+1, n, b.MaxWords)}
		}
	}
	return nil
}

// WordUsageCheck requires the story to use at least one session word.
type WordUsageCheck struct{}

func (WordUsageCheck) Name() string { return "word-usage" }

func (c WordUsageCheck) Check(passages []string, b Brief) *RejectError {
	used := lo.SomeBy(passages, func(p string) bool { return len(Highlight(p, b.Words)) > 0 })
	if !used && len(b.Words) > 0 {
		return &RejectError{Check: c.Name(), Message: "story uses none of the vocabulary words"}
	}
	return nil
}
