package story

import (
	"context"
	"fmt"
	"sync"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// ErrGenerationPending is returned when a load starts while another is
// still running.
var ErrGenerationPending = fmt.Errorf("story generation already in progress: %w", domain.ErrInvalidState)

// Loader runs at most one generation at a time and only publishes a
// Reader when the caller is still waiting for it.
type Loader struct {
	gen *Generator

	mu      sync.Mutex
	pending bool
}

// NewLoader creates a Loader around gen.
func NewLoader(gen *Generator) *Loader {
	return &Loader{gen: gen}
}

// Load generates slides for words and opens a Reader on them. If ctx is
// cancelled before generation resolves, the result is dropped and the
// context error returned.
func (l *Loader) Load(ctx context.Context, words []string) (*Reader, error) {
	l.mu.Lock()
	if l.pending {
		l.mu.Unlock()
		return nil, ErrGenerationPending
	}
	l.pending = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.pending = false
		l.mu.Unlock()
	}()

	slides, err := l.gen.Generate(ctx, words)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewReader(slides), nil
}

// Pending reports whether a generation is running.
func (l *Loader) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}
