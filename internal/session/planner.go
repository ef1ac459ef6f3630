package session

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/words"
)

// Planner holds the ordered session lists and resolves the words of a chosen
// list. It is not safe for concurrent use.
type Planner struct {
	lists  []SessionWordList
	lookup Lookup
}

// New creates a planner over copies of lists and lookup.
func New(lists []SessionWordList, lookup Lookup) *Planner {
	lk := make(Lookup, len(lookup))
	for name, ws := range lookup {
		lk[name] = slices.Clone(ws)
	}
	return &Planner{lists: slices.Clone(lists), lookup: lk}
}

// Lists returns the entries in their current order.
func (p *Planner) Lists() []SessionWordList {
	return slices.Clone(p.lists)
}

// Select returns the entry with the given id.
func (p *Planner) Select(id string) (SessionWordList, error) {
	i := p.indexOf(id)
	if i < 0 {
		return SessionWordList{}, domain.NotFound("session list", id)
	}
	return p.lists[i], nil
}

// SelectByName returns the first entry whose name matches case-insensitively.
func (p *Planner) SelectByName(name string) (SessionWordList, error) {
	name = strings.TrimSpace(name)
	l, ok := lo.Find(p.lists, func(l SessionWordList) bool { return strings.EqualFold(l.Name, name) })
	if !ok {
		return SessionWordList{}, domain.NotFound("session list", name)
	}
	return l, nil
}

// ReorderToEnd moves the entry to the tail, keeping every other entry in
// its relative order.
func (p *Planner) ReorderToEnd(id string) error {
	i := p.indexOf(id)
	if i < 0 {
		return domain.NotFound("session list", id)
	}
	l := p.lists[i]
	p.lists = append(slices.Delete(p.lists, i, i+1), l)
	return nil
}

// WordsFor resolves the words for a list through the lookup table.
func (p *Planner) WordsFor(list SessionWordList) ([]string, error) {
	ws, ok := p.lookup[list.Name]
	if !ok {
		return nil, fmt.Errorf("words for %q: %w", list.Name, domain.ErrNotFound)
	}
	return slices.Clone(ws), nil
}

func (p *Planner) indexOf(id string) int {
	return slices.IndexFunc(p.lists, func(l SessionWordList) bool { return l.ID == id })
}

// FromStore builds a planner from the lists of a word store. A list is a
// review list once any of its words has progress. The lookup holds the
// session selection of at most size words per list.
func FromStore(s *words.Store, size int) *Planner {
	var (
		lists  []SessionWordList
		lookup = make(Lookup)
	)
	for _, l := range s.Lists() {
		if len(l.Words) == 0 {
			continue
		}
		kind := KindNew
		if lo.SomeBy(l.Words, func(w words.Word) bool { return w.SpellingProgress > 0 || w.MeaningProgress > 0 }) {
			kind = KindReview
		}
		lists = append(lists, SessionWordList{
			ID:        l.ID,
			Name:      l.Name,
			WordCount: len(l.Words),
			Kind:      kind,
		})
		lookup[l.Name] = lo.Map(SessionWords(l, size), func(w words.Word, _ int) string { return w.Text })
	}
	return &Planner{lists: lists, lookup: lookup}
}

// SessionWords picks up to size words from the list. Priority words come
// first, then struggling, progressing and mastered words. Order within each
// group follows the list. A non-positive size uses DefaultSessionSize.
func SessionWords(l words.WordList, size int) []words.Word {
	if size <= 0 {
		size = DefaultSessionSize
	}
	ws := slices.Clone(l.Words)
	slices.SortStableFunc(ws, func(a, b words.Word) int {
		return rank(a) - rank(b)
	})
	if len(ws) > size {
		ws = ws[:size]
	}
	return ws
}

func rank(w words.Word) int {
	r := 1
	switch w.Status() {
	case words.StatusProgressing:
		r = 2
	case words.StatusMastered:
		r = 3
	}
	if w.IsPriority {
		r = 0
	}
	return r
}
