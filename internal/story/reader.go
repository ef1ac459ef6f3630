package story

import (
	"slices"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// Reader is a linear cursor over the slides of one story.
type Reader struct {
	slides    []Slide
	pos       int
	paused    bool
	completed bool
}

// NewReader opens slides at the first slide.
func NewReader(slides []Slide) *Reader {
	return &Reader{slides: slides}
}

// Current returns the slide under the cursor.
func (r *Reader) Current() Slide { return r.slides[r.pos] }

// Slides returns a copy of all slides.
func (r *Reader) Slides() []Slide { return slices.Clone(r.slides) }

// Position returns the one-based slide number and the slide count.
func (r *Reader) Position() (int, int) { return r.pos + 1, len(r.slides) }

// AtEnd reports whether the cursor is on the last slide.
func (r *Reader) AtEnd() bool { return r.pos == len(r.slides)-1 }

// Next advances the cursor. On the last slide it marks the story
// completed instead.
func (r *Reader) Next() error {
	if err := r.checkNavigable("next"); err != nil {
		return err
	}
	if r.AtEnd() {
		r.completed = true
		return nil
	}
	r.pos++
	return nil
}

// Prev moves the cursor back. It has no effect on the first slide.
func (r *Reader) Prev() error {
	if err := r.checkNavigable("prev"); err != nil {
		return err
	}
	if r.pos > 0 {
		r.pos--
	}
	return nil
}

func (r *Reader) checkNavigable(op string) error {
	switch {
	case r.paused:
		return domain.InvalidState(op, "paused")
	case r.completed:
		return domain.InvalidState(op, "completed")
	}
	return nil
}

// Pause stops navigation until Resume.
func (r *Reader) Pause() { r.paused = true }

// Resume continues after Pause.
func (r *Reader) Resume() { r.paused = false }

// Paused reports whether the reader is paused.
func (r *Reader) Paused() bool { return r.paused }

// Completed reports whether Next was pressed on the last slide.
func (r *Reader) Completed() bool { return r.completed }

// Restart rewinds to the first slide for another read.
func (r *Reader) Restart() {
	r.pos = 0
	r.completed = false
	r.paused = false
}
