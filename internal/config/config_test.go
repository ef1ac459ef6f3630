package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/llm"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/story"
)

// isolate clears the environment variables that would leak into Load.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Session.Size)
	assert.Equal(t, story.DefaultConfig(), cfg.Story.Config)
	assert.Equal(t, SourceCanned, cfg.Story.Source)
	assert.Equal(t, story.DefaultCannedDelay, cfg.Story.CannedDelay)
	assert.Equal(t, quiz.DefaultDistractorPool(), cfg.Quiz.DistractorPool)
	assert.InDelta(t, 0.2, cfg.Progress.MeaningStep, 1e-9)
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, llm.DefaultOpenRouterBaseURL, cfg.LLM.OpenRouter.BaseURL)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, "vocabflow.yaml", `
log:
  level: debug
  format: json
story:
  min_slides: 12
  timeout: 45s
  source: llm
llm:
  provider: openai
  openai:
    api_key: sk-test
    model: gpt-4o
progress:
  meaning_step: 0.25
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 12, cfg.Story.MinSlides)
	assert.Equal(t, story.MaxSlides, cfg.Story.MaxSlides)
	assert.Equal(t, 45*time.Second, cfg.Story.Timeout)
	assert.Equal(t, SourceLLM, cfg.Story.Source)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Backend().Model)
	assert.InDelta(t, 0.25, cfg.Progress.MeaningStep, 1e-9)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "vocabflow.yaml", "log:\n  level: debug\n")
	t.Setenv("VOCABFLOW_LOG_LEVEL", "warn")
	t.Setenv("VOCABFLOW_STORY_MAX_SLIDES", "15")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 15, cfg.Story.MaxSlides)
}

func TestLoad_DiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"unknown source", "story:\n  source: magic\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"step out of range", "progress:\n  meaning_step: 1.5\n"},
		{"llm without key", "story:\n  source: llm\nllm:\n  provider: anthropic\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), writeFile(t, "c.yaml", tt.body))
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := NewLogger(LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	require.NoError(t, closer.Close())

	_, _, err = NewLogger(LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabflow.log")
	logger, closer, err := NewLogger(LogConfig{Level: "info", Format: "text", File: path})
	require.NoError(t, err)

	logger.WithField("list_id", "l1").Info("hello")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
	assert.Contains(t, string(b), "list_id=l1")
}
