package profile

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/progress"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Profile is one child's isolated state. It is not safe for concurrent use.
type Profile struct {
	Child    Child
	Words    *words.Store
	Progress *progress.Aggregator

	sessionSize int
	deferred    []string
}

// Planner returns a session planner over the profile's current lists, with
// deferred lists moved to the end in the order they were deferred.
func (p *Profile) Planner() *session.Planner {
	pl := session.FromStore(p.Words, p.sessionSize)
	for _, id := range p.deferred {
		// Lists that became empty or were deleted are no longer offered.
		_ = pl.ReorderToEnd(id)
	}
	return pl
}

// Defer moves a list to the end of the session picker.
func (p *Profile) Defer(listID string) error {
	if _, err := p.Words.List(listID); err != nil {
		return err
	}
	p.deferred = append(slices.DeleteFunc(p.deferred, func(id string) bool { return id == listID }), listID)
	return nil
}

// Deferred returns the deferred list ids, oldest first.
func (p *Profile) Deferred() []string {
	return slices.Clone(p.deferred)
}

// SessionWords returns the words practised when the given list is chosen.
func (p *Profile) SessionWords(listID string) (session.SessionWordList, []string, error) {
	pl := p.Planner()
	sl, err := pl.Select(listID)
	if err != nil {
		return session.SessionWordList{}, nil, err
	}
	ws, err := pl.WordsFor(sl)
	if err != nil {
		return session.SessionWordList{}, nil, err
	}
	if len(ws) == 0 {
		return session.SessionWordList{}, nil, domain.NewValidationError("list", "list has no words")
	}
	return sl, ws, nil
}

// SeedSamples imports the built-in sample lists into the profile. define
// supplies the definition stored with each word.
func (p *Profile) SeedSamples(define func(word string) string) error {
	lists, lookup := session.DefaultCatalog()
	for _, l := range lists {
		pack := lo.Map(lookup[l.Name], func(w string, _ int) words.PackWord {
			return words.PackWord{Text: w, Definition: define(w)}
		})
		if _, err := p.Words.ImportPack(l.Name, pack, words.PackOptions{AllowSpelling: true, AllowMeaning: true}); err != nil {
			return fmt.Errorf("seed %q: %w", l.Name, err)
		}
	}
	return nil
}

// MasteredCount returns the number of mastered words across all lists.
func (p *Profile) MasteredCount() int {
	return lo.SumBy(p.Words.Lists(), func(l words.WordList) int { return l.Stats.Mastered })
}
