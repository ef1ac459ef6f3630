package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is the record kept for every model request.
type Event struct {
	Provider     string
	Model        string
	Purpose      string
	Latency      time.Duration
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Success      bool
	Error        string
	RequestBody  string
	ResponseBody string
}

// EventRecorder persists request events.
type EventRecorder interface {
	RecordLLMEvent(ctx context.Context, ev Event) error
}

// LoggingProvider logs every request and hands it to an optional recorder.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder EventRecorder
	log      logrus.FieldLogger
}

// WithLogging wraps p. recorder may be nil.
func WithLogging(p Provider, provider string, recorder EventRecorder, log logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, provider: provider, recorder: recorder, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := Event{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		Latency:     time.Since(start),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if c := LookupCost(resp.Model); c != nil {
			ev.CostUSD = c.Cost(ev.InputTokens, ev.OutputTokens)
		}
	}
	if err != nil {
		ev.Error = err.Error()
	}

	entry := l.log.WithFields(logrus.Fields{
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.Latency.Milliseconds(),
		"tokens_in":  ev.InputTokens,
		"tokens_out": ev.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("model request failed")
	} else {
		entry.Debug("model request")
	}

	if l.recorder != nil {
		if recErr := l.recorder.RecordLLMEvent(ctx, ev); recErr != nil {
			l.log.WithError(recErr).Warn("failed to record model request")
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
