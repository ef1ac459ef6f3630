package story

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// Generator pages content from a source into slides and picks the words
// highlighted on each. It is not safe for concurrent use.
type Generator struct {
	source ContentSource
	cfg    Config
	rng    *rand.Rand
	grade  string
	log    logrus.FieldLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for highlight sampling.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithGradeLevel passes the learner's grade to the content source.
func WithGradeLevel(grade string) Option {
	return func(g *Generator) { g.grade = grade }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator creates a Generator reading from source.
func NewGenerator(source ContentSource, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		source: source,
		cfg:    cfg.normalized(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the slides for a session's words. Blank entries are
// ignored and duplicates are removed case-insensitively. The slide count is
// the pool size clamped to [MinSlides, MaxSlides]; a short pool is cycled in
// order. Source failures and timeouts wrap domain.ErrGenerationFailed; if
// ctx itself is done its error is returned instead.
func (g *Generator) Generate(ctx context.Context, sessionWords []string) ([]Slide, error) {
	ws := lo.UniqBy(
		lo.FilterMap(sessionWords, func(w string, _ int) (string, bool) {
			w = strings.TrimSpace(w)
			return w, w != ""
		}),
		strings.ToLower,
	)
	if len(ws) == 0 {
		return nil, domain.NewValidationError("words", "at least one word is required")
	}

	tctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	pool, err := g.source.Passages(tctx, Brief{
		Words:      ws,
		GradeLevel: g.grade,
		Passages:   g.cfg.MinSlides,
		MaxWords:   g.cfg.MaxWordsPerSlide,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	pool = lo.Filter(pool, func(p string, _ int) bool { return strings.TrimSpace(p) != "" })
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: content source returned no passages", domain.ErrGenerationFailed)
	}

	n := max(g.cfg.MinSlides, min(len(pool), g.cfg.MaxSlides))
	slides := make([]Slide, n)
	for i := range slides {
		text := limitWords(pool[i%len(pool)], g.cfg.MaxWordsPerSlide)
		picked := g.sample(ws)
		slides[i] = Slide{
			Index:       i,
			Text:        text,
			Highlighted: picked,
			Marks:       Highlight(text, picked),
		}
	}

	g.log.WithFields(logrus.Fields{"words": len(ws), "pool": len(pool), "slides": n}).Debug("story generated")
	return slides, nil
}

// sample draws a count uniformly from [MinHighlighted, MaxHighlighted] and
// picks that many distinct words, or all of them when there are fewer.
func (g *Generator) sample(ws []string) []string {
	k := g.cfg.MinHighlighted + g.rng.IntN(g.cfg.MaxHighlighted-g.cfg.MinHighlighted+1)
	k = min(k, len(ws))
	perm := g.rng.Perm(len(ws))
	out := make([]string, k)
	for i := range out {
		out[i] = ws[perm[i]]
	}
	return out
}

// limitWords cuts text after max whitespace-separated words.
func limitWords(text string, limit int) string {
	fields := strings.Fields(text)
	if len(fields) <= limit {
		return text
	}
	return strings.Join(fields[:limit], " ")
}
