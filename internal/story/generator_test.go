package story

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
)

type fixedSource struct {
	pool []string
	err  error
}

func (f fixedSource) Passages(ctx context.Context, _ Brief) ([]string, error) {
	return f.pool, f.err
}

func testGenerator(src ContentSource) *Generator {
	return NewGenerator(src, DefaultConfig(), WithRand(rand.New(rand.NewPCG(1, 2))))
}

func instant() *CannedSource { return &CannedSource{} }

func TestGenerate_ThreeWordsPadsToMinimum(t *testing.T) {
	ws := []string{"ancient", "winding", "majestic"}
	slides, err := testGenerator(instant()).Generate(context.Background(), ws)
	require.NoError(t, err)

	require.Len(t, slides, MinSlides)
	for i, s := range slides {
		assert.Equal(t, i, s.Index)
		assert.Len(t, s.Highlighted, 3)
		assert.Subset(t, ws, s.Highlighted)
		for _, m := range s.Marks {
			assert.Contains(t, s.Highlighted, m.Word)
		}
	}
}

func TestGenerate_SlideCountBounds(t *testing.T) {
	passage := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "Passage about gentle things."
		}
		return out
	}

	tests := []struct {
		pool int
		want int
	}{
		{1, MinSlides},
		{3, MinSlides},
		{10, 10},
		{14, 14},
		{20, 20},
		{35, MaxSlides},
	}
	for _, tt := range tests {
		slides, err := testGenerator(fixedSource{pool: passage(tt.pool)}).Generate(context.Background(), []string{"gentle"})
		require.NoError(t, err)
		assert.Len(t, slides, tt.want, "pool of %d", tt.pool)
	}
}

func TestGenerate_CyclesPoolInOrder(t *testing.T) {
	pool := []string{"one gentle", "two gentle", "three gentle"}
	slides, err := testGenerator(fixedSource{pool: pool}).Generate(context.Background(), []string{"gentle"})
	require.NoError(t, err)
	for i, s := range slides {
		assert.Equal(t, pool[i%3], s.Text)
	}
}

func TestGenerate_HighlightCountWithinBounds(t *testing.T) {
	ws := strings.Fields("ancient winding enchanting majestic wonder shimmering rustling gentle exploring trusty")
	g := testGenerator(instant())

	for range 20 {
		slides, err := g.Generate(context.Background(), ws)
		require.NoError(t, err)
		for _, s := range slides {
			assert.GreaterOrEqual(t, len(s.Highlighted), MinHighlighted)
			assert.LessOrEqual(t, len(s.Highlighted), MaxHighlighted)
			seen := map[string]bool{}
			for _, w := range s.Highlighted {
				assert.False(t, seen[w], "sampled without replacement")
				seen[w] = true
			}
		}
	}
}

func TestGenerate_DedupesWords(t *testing.T) {
	slides, err := testGenerator(instant()).Generate(context.Background(), []string{"Ancient", "ancient", " ", "ANCIENT"})
	require.NoError(t, err)
	for _, s := range slides {
		assert.Equal(t, []string{"Ancient"}, s.Highlighted)
	}
}

func TestGenerate_EmptyWords(t *testing.T) {
	_, err := testGenerator(instant()).Generate(context.Background(), []string{" ", ""})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerate_SourceFailure(t *testing.T) {
	_, err := testGenerator(fixedSource{err: errors.New("model down")}).Generate(context.Background(), []string{"gentle"})
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "model down")
}

func TestGenerate_EmptyPoolFails(t *testing.T) {
	_, err := testGenerator(fixedSource{pool: []string{"  "}}).Generate(context.Background(), []string{"gentle"})
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerate_TimeoutIsGenerationFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	g := NewGenerator(&CannedSource{Delay: time.Minute}, cfg)

	_, err := g.Generate(context.Background(), []string{"gentle"})
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testGenerator(&CannedSource{Delay: time.Minute}).Generate(ctx, []string{"gentle"})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestGenerate_LimitsWordsPerSlide(t *testing.T) {
	long := strings.Repeat("gentle ", 200)
	slides, err := testGenerator(fixedSource{pool: []string{long}}).Generate(context.Background(), []string{"gentle"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(slides[0].Text), MaxWordsPerSlide)
}

func TestConfigNormalized(t *testing.T) {
	c := Config{MinSlides: 12, MaxSlides: 5}.normalized()
	assert.Equal(t, 12, c.MinSlides)
	assert.Equal(t, MaxSlides, c.MaxSlides)
	assert.Equal(t, MinHighlighted, c.MinHighlighted)
	assert.Equal(t, 30*time.Second, c.Timeout)
}
