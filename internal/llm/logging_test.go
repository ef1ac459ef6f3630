package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (m *memRecorder) RecordLLMEvent(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"passages":["x"]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: errors.New("boom")},
	)
	rec := &memRecorder{}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := WithLogging(mock, ProviderMock, rec, logger)
	ctx := WithPurpose(context.Background(), "story")

	_, err := p.Generate(ctx, storyRequest())
	require.NoError(t, err)
	_, err = p.Generate(ctx, storyRequest())
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, "story", rec.events[0].Purpose)
	assert.Equal(t, 10, rec.events[0].InputTokens)
	assert.Contains(t, rec.events[0].RequestBody, "[schema: test-passages]")
	assert.False(t, rec.events[1].Success)
	assert.Equal(t, "boom", rec.events[1].Error)

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoggingProvider_RecorderFailureIsNotFatal(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	logger, hook := test.NewNullLogger()

	p := WithLogging(mock, ProviderMock, &memRecorder{err: errors.New("disk full")}, logger)
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "failed to record model request", hook.LastEntry().Message)
}
