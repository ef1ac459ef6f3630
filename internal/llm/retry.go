package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryProvider retries transient failures with capped exponential backoff.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	log   logrus.FieldLogger
}

// WithRetry wraps p with retries. A nil logger discards retry notices.
func WithRetry(p Provider, cfg RetryConfig, log logrus.FieldLogger) Provider {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr        error
		invalidRetried bool
	)
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return nil, err
		}
		// A malformed response gets exactly one more chance.
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if invalidRetried {
				return nil, err
			}
			invalidRetried = true
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.WithFields(logrus.Fields{
			"model":   r.inner.ModelID(),
			"attempt": attempt + 1,
			"wait":    wait,
		}).WithError(err).Warn("retrying model request")

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	// ±20% jitter
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}
