package words

import (
	"math"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// Status is the learning status of a word, derived from its progress values.
type Status string

const (
	StatusStruggling  Status = "struggling"
	StatusProgressing Status = "progressing"
	StatusMastered    Status = "mastered"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusStruggling, StatusProgressing, StatusMastered}

// Thresholds used by StatusFor.
const (
	// MasteredThreshold is the progress both skills need to reach for mastery.
	MasteredThreshold = 0.8

	// StrugglingThreshold is the progress below which either skill marks
	// the word as struggling.
	StrugglingThreshold = 0.5
)

// StatusFor maps spelling and meaning progress to a status. It is the only
// place the thresholds are applied.
func StatusFor(spelling, meaning float64) Status {
	switch {
	case spelling >= MasteredThreshold && meaning >= MasteredThreshold:
		return StatusMastered
	case spelling < StrugglingThreshold || meaning < StrugglingThreshold:
		return StatusStruggling
	default:
		return StatusProgressing
	}
}

// ParseStatus converts a user-supplied label into a Status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, lo.Contains(AllStatuses, st)
}

// Word is a single vocabulary entry in a list.
type Word struct {
	ID         string
	Text       string
	Definition string

	// SpellingProgress and MeaningProgress are in [0,1].
	SpellingProgress float64
	MeaningProgress  float64

	AllowSpelling bool
	AllowMeaning  bool
	IsPriority    bool
}

// Status returns the derived learning status.
func (w Word) Status() Status {
	return StatusFor(w.SpellingProgress, w.MeaningProgress)
}

// Composite returns the mean of spelling and meaning progress.
func (w Word) Composite() float64 {
	return (w.SpellingProgress + w.MeaningProgress) / 2
}

// WordInput carries the fields accepted when a word is added.
type WordInput struct {
	Text          string
	Definition    string
	AllowSpelling bool
	AllowMeaning  bool
	IsPriority    bool
}

// WordPatch describes a partial update. Nil fields are left unchanged.
type WordPatch struct {
	Text             *string
	Definition       *string
	AllowSpelling    *bool
	AllowMeaning     *bool
	IsPriority       *bool
	SpellingProgress *float64
	MeaningProgress  *float64
}

// apply returns a copy of w with the patch applied. Validation happens on
// the result so that the practice-flag invariant covers the merged value.
func (p WordPatch) apply(w Word) Word {
	if p.Text != nil {
		w.Text = normalizeText(*p.Text)
	}
	if p.Definition != nil {
		w.Definition = strings.TrimSpace(*p.Definition)
	}
	if p.AllowSpelling != nil {
		w.AllowSpelling = *p.AllowSpelling
	}
	if p.AllowMeaning != nil {
		w.AllowMeaning = *p.AllowMeaning
	}
	if p.IsPriority != nil {
		w.IsPriority = *p.IsPriority
	}
	if p.SpellingProgress != nil {
		w.SpellingProgress = *p.SpellingProgress
	}
	if p.MeaningProgress != nil {
		w.MeaningProgress = *p.MeaningProgress
	}
	return w
}

func normalizeText(s string) string {
	return strings.TrimSpace(s)
}

// Validate checks the invariants every stored word satisfies.
func (w Word) Validate() error {
	var errs []domain.FieldError

	switch {
	case w.Text == "":
		errs = append(errs, domain.FieldError{Field: "text", Message: "must not be empty"})
	case strings.IndexFunc(w.Text, unicode.IsSpace) >= 0:
		errs = append(errs, domain.FieldError{Field: "text", Message: "must be a single word without spaces"})
	}

	if !w.AllowSpelling && !w.AllowMeaning {
		errs = append(errs, domain.FieldError{Field: "practice", Message: "at least one of spelling or meaning practice must be allowed"})
	}

	if !inUnitRange(w.SpellingProgress) {
		errs = append(errs, domain.FieldError{Field: "spelling_progress", Message: "must be within [0,1]"})
	}
	if !inUnitRange(w.MeaningProgress) {
		errs = append(errs, domain.FieldError{Field: "meaning_progress", Message: "must be within [0,1]"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
