package words

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// PackWord is one entry of a word pack being imported.
type PackWord struct {
	Text       string
	Definition string
}

// PackOptions are the practice modes applied to every imported pack word.
type PackOptions struct {
	AllowSpelling bool
	AllowMeaning  bool
}

// Store holds the word lists of a single learner. It is not safe for
// concurrent use; each profile owns its own Store.
type Store struct {
	lists map[string]*WordList
	order []string

	newID func() string
	now   func() time.Time
	log   logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides the identifier generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		lists: make(map[string]*WordList),
		newID: uuid.NewString,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore replaces the store content with previously exported lists.
// Every word is re-validated; the store is left untouched on error. A list
// whose name repeats an earlier one is renamed with a numeric suffix.
func (s *Store) Restore(lists []WordList) error {
	restored := make(map[string]*WordList, len(lists))
	order := make([]string, 0, len(lists))
	for _, l := range lists {
		for _, w := range l.Words {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("restore list %q word %q: %w", l.Name, w.Text, err)
			}
		}
		c := l.clone()
		c.recompute()
		if name := uniqueName(c.Name, restored); name != c.Name {
			s.log.WithFields(logrus.Fields{"list_id": c.ID, "name": c.Name, "renamed": name}).Warn("duplicate list name on restore")
			c.Name = name
		}
		restored[c.ID] = &c
		order = append(order, c.ID)
	}
	s.lists = restored
	s.order = order
	return nil
}

// CreateList adds an empty custom list. Names are unique ignoring case.
func (s *Store) CreateList(name string) (WordList, error) {
	name = strings.TrimSpace(name)
	if err := s.checkName(name); err != nil {
		return WordList{}, fmt.Errorf("create list: %w", err)
	}
	l := s.insertList(name, SourceCustom, nil)
	return l.clone(), nil
}

// UniqueName returns name, or name with the lowest free " (n)" suffix when
// a list already uses it.
func (s *Store) UniqueName(name string) string {
	return uniqueName(strings.TrimSpace(name), s.lists)
}

func (s *Store) checkName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if nameTaken(name, s.lists) {
		return domain.NewValidationError("name", fmt.Sprintf("a list named %q already exists", name))
	}
	return nil
}

func nameTaken(name string, lists map[string]*WordList) bool {
	return lo.SomeBy(lo.Values(lists), func(l *WordList) bool { return strings.EqualFold(l.Name, name) })
}

func uniqueName(name string, lists map[string]*WordList) string {
	if !nameTaken(name, lists) {
		return name
	}
	for n := 2; ; n++ {
		if c := fmt.Sprintf("%s (%d)", name, n); !nameTaken(c, lists) {
			return c
		}
	}
}

// ImportPack creates a list populated from a word pack. Either every pack
// word is valid and the list is created, or nothing changes. The title must
// not name an existing list; see UniqueName.
func (s *Store) ImportPack(title string, pack []PackWord, opts PackOptions) (WordList, error) {
	title = strings.TrimSpace(title)
	if err := s.checkName(title); err != nil {
		return WordList{}, fmt.Errorf("import pack: %w", err)
	}
	if !opts.AllowSpelling && !opts.AllowMeaning {
		return WordList{}, fmt.Errorf("import pack %q: %w", title,
			domain.NewValidationError("practice", "at least one of spelling or meaning practice must be allowed"))
	}

	ws := make([]Word, 0, len(pack))
	for _, pw := range pack {
		w := Word{
			ID:            s.newID(),
			Text:          normalizeText(pw.Text),
			Definition:    strings.TrimSpace(pw.Definition),
			AllowSpelling: opts.AllowSpelling,
			AllowMeaning:  opts.AllowMeaning,
		}
		if err := w.Validate(); err != nil {
			return WordList{}, fmt.Errorf("import pack %q word %q: %w", title, pw.Text, err)
		}
		ws = append(ws, w)
	}

	l := s.insertList(title, title, ws)
	s.log.WithFields(logrus.Fields{"list_id": l.ID, "words": len(ws)}).Debug("imported word pack")
	return l.clone(), nil
}

func (s *Store) insertList(name, source string, ws []Word) *WordList {
	l := &WordList{
		ID:        s.newID(),
		Name:      name,
		Source:    source,
		Words:     ws,
		CreatedAt: s.now(),
	}
	l.recompute()
	s.lists[l.ID] = l
	s.order = append(s.order, l.ID)
	return l
}

// DeleteList removes a list. Lists are only ever removed explicitly.
func (s *Store) DeleteList(listID string) error {
	if _, ok := s.lists[listID]; !ok {
		return domain.NotFound("word list", listID)
	}
	delete(s.lists, listID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == listID })
	return nil
}

// List returns a copy of the list with the given id.
func (s *Store) List(listID string) (WordList, error) {
	l, err := s.get(listID)
	if err != nil {
		return WordList{}, err
	}
	return l.clone(), nil
}

// Lists returns copies of all lists in creation order.
func (s *Store) Lists() []WordList {
	return lo.Map(s.order, func(id string, _ int) WordList { return s.lists[id].clone() })
}

// AddWord validates the input and appends a new word with zero progress.
func (s *Store) AddWord(listID string, in WordInput) (Word, error) {
	l, err := s.get(listID)
	if err != nil {
		return Word{}, fmt.Errorf("add word: %w", err)
	}

	w := Word{
		ID:            s.newID(),
		Text:          normalizeText(in.Text),
		Definition:    strings.TrimSpace(in.Definition),
		AllowSpelling: in.AllowSpelling,
		AllowMeaning:  in.AllowMeaning,
		IsPriority:    in.IsPriority,
	}
	if err := w.Validate(); err != nil {
		return Word{}, fmt.Errorf("add word: %w", err)
	}

	l.Words = append(l.Words, w)
	l.recompute()
	return w, nil
}

// UpdateWord applies a validated patch to an existing word.
func (s *Store) UpdateWord(listID, wordID string, patch WordPatch) (Word, error) {
	l, err := s.get(listID)
	if err != nil {
		return Word{}, fmt.Errorf("update word: %w", err)
	}
	i := l.indexOf(wordID)
	if i < 0 {
		return Word{}, fmt.Errorf("update word: %w", domain.NotFound("word", wordID))
	}

	updated := patch.apply(l.Words[i])
	if err := updated.Validate(); err != nil {
		return Word{}, fmt.Errorf("update word: %w", err)
	}

	l.Words[i] = updated
	l.recompute()
	return updated, nil
}

// TogglePriority flips the priority flag of a word.
func (s *Store) TogglePriority(listID, wordID string) (Word, error) {
	l, err := s.get(listID)
	if err != nil {
		return Word{}, fmt.Errorf("toggle priority: %w", err)
	}
	i := l.indexOf(wordID)
	if i < 0 {
		return Word{}, fmt.Errorf("toggle priority: %w", domain.NotFound("word", wordID))
	}
	l.Words[i].IsPriority = !l.Words[i].IsPriority
	return l.Words[i], nil
}

// RemoveWord deletes a word from a list.
func (s *Store) RemoveWord(listID, wordID string) error {
	l, err := s.get(listID)
	if err != nil {
		return fmt.Errorf("remove word: %w", err)
	}
	i := l.indexOf(wordID)
	if i < 0 {
		return fmt.Errorf("remove word: %w", domain.NotFound("word", wordID))
	}
	l.Words = slices.Delete(l.Words, i, i+1)
	l.recompute()
	return nil
}

// FindWord looks a word up by its text, case-insensitively.
func (s *Store) FindWord(listID, text string) (Word, error) {
	l, err := s.get(listID)
	if err != nil {
		return Word{}, err
	}
	text = normalizeText(text)
	for _, w := range l.Words {
		if strings.EqualFold(w.Text, text) {
			return w, nil
		}
	}
	return Word{}, domain.NotFound("word", text)
}

// Filter returns a lazy, order-preserving view of the list's words that
// match f. The view reads a snapshot taken at call time.
func (s *Store) Filter(listID string, f Filter) (iter.Seq[Word], error) {
	l, err := s.get(listID)
	if err != nil {
		return nil, fmt.Errorf("filter words: %w", err)
	}
	return FilterWords(slices.Values(slices.Clone(l.Words)), f), nil
}

func (s *Store) get(listID string) (*WordList, error) {
	l, ok := s.lists[listID]
	if !ok {
		return nil, domain.NotFound("word list", listID)
	}
	return l, nil
}
