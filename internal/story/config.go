// Package story turns a session's words into a paged story with the
// vocabulary highlighted on every slide.
package story

import "time"

// Story shape limits.
const (
	MinSlides        = 10
	MaxSlides        = 20
	MaxWordsPerSlide = 150
	MinHighlighted   = 3
	MaxHighlighted   = 5
)

// Config controls story generation.
type Config struct {
	MinSlides        int           `mapstructure:"min_slides"`
	MaxSlides        int           `mapstructure:"max_slides"`
	MinHighlighted   int           `mapstructure:"min_highlighted"`
	MaxHighlighted   int           `mapstructure:"max_highlighted"`
	MaxWordsPerSlide int           `mapstructure:"max_words_per_slide"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the standard story shape with a 30s budget.
func DefaultConfig() Config {
	return Config{
		MinSlides:        MinSlides,
		MaxSlides:        MaxSlides,
		MinHighlighted:   MinHighlighted,
		MaxHighlighted:   MaxHighlighted,
		MaxWordsPerSlide: MaxWordsPerSlide,
		Timeout:          30 * time.Second,
	}
}

// normalized fills zero fields from the defaults and repairs inverted
// bounds.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MinSlides <= 0 {
		c.MinSlides = d.MinSlides
	}
	if c.MaxSlides < c.MinSlides {
		c.MaxSlides = max(d.MaxSlides, c.MinSlides)
	}
	if c.MinHighlighted <= 0 {
		c.MinHighlighted = d.MinHighlighted
	}
	if c.MaxHighlighted < c.MinHighlighted {
		c.MaxHighlighted = max(d.MaxHighlighted, c.MinHighlighted)
	}
	if c.MaxWordsPerSlide <= 0 {
		c.MaxWordsPerSlide = d.MaxWordsPerSlide
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}
