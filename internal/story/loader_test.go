package story

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
)

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) Passages(ctx context.Context, _ Brief) ([]string, error) {
	close(b.started)
	select {
	case <-b.release:
		return []string{"A gentle story."}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestLoader_RejectsConcurrentLoad(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	l := NewLoader(testGenerator(src))

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), []string{"gentle"})
		done <- err
	}()
	<-src.started
	assert.True(t, l.Pending())

	_, err := l.Load(context.Background(), []string{"gentle"})
	require.ErrorIs(t, err, ErrGenerationPending)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	close(src.release)
	require.NoError(t, <-done)
	assert.False(t, l.Pending())
}

func TestLoader_CancelPublishesNothing(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	l := NewLoader(testGenerator(src))
	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		r   *Reader
		err error
	}
	done := make(chan result, 1)
	go func() {
		r, err := l.Load(ctx, []string{"gentle"})
		done <- result{r, err}
	}()
	<-src.started
	cancel()

	select {
	case res := <-done:
		assert.Nil(t, res.r)
		require.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("load did not return after cancel")
	}
	assert.False(t, l.Pending())
}

func TestLoader_Success(t *testing.T) {
	l := NewLoader(testGenerator(instant()))
	r, err := l.Load(context.Background(), []string{"ancient", "winding", "majestic"})
	require.NoError(t, err)

	cur, total := r.Position()
	assert.Equal(t, 1, cur)
	assert.Equal(t, MinSlides, total)
}
