// Package config loads vocabflow settings from defaults, an optional YAML
// file and VOCABFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vocabflow/vocabflow/internal/llm"
	"github.com/vocabflow/vocabflow/internal/progress"
	"github.com/vocabflow/vocabflow/internal/quiz"
	"github.com/vocabflow/vocabflow/internal/session"
	"github.com/vocabflow/vocabflow/internal/story"
)

// EnvPrefix is prepended to every environment override, e.g.
// VOCABFLOW_LOG_LEVEL.
const EnvPrefix = "VOCABFLOW"

// Story content sources.
const (
	SourceCanned = "canned"
	SourceLLM    = "llm"
)

// Config holds all settings.
type Config struct {
	DB       string         `mapstructure:"db"`
	Profile  string         `mapstructure:"profile"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Story    StoryConfig    `mapstructure:"story"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Progress ProgressConfig `mapstructure:"progress"`
	LLM      llm.Config     `mapstructure:"llm"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	File   string `mapstructure:"file"`   // empty logs to stderr
}

// SessionConfig controls session word selection.
type SessionConfig struct {
	Size int `mapstructure:"size"`
}

// StoryConfig controls story generation and where passages come from.
type StoryConfig struct {
	story.Config `mapstructure:",squash"`

	Source      string        `mapstructure:"source"`
	CannedDelay time.Duration `mapstructure:"canned_delay"`
}

// QuizConfig controls quiz construction.
type QuizConfig struct {
	DistractorPool []string `mapstructure:"distractor_pool"`
}

// ProgressConfig controls how quiz results move progress.
type ProgressConfig struct {
	MeaningStep float64 `mapstructure:"meaning_step"`
}

// New returns a viper instance with defaults and environment binding set
// up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("profile", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("session.size", session.DefaultSessionSize)

	sc := story.DefaultConfig()
	v.SetDefault("story.min_slides", sc.MinSlides)
	v.SetDefault("story.max_slides", sc.MaxSlides)
	v.SetDefault("story.min_highlighted", sc.MinHighlighted)
	v.SetDefault("story.max_highlighted", sc.MaxHighlighted)
	v.SetDefault("story.max_words_per_slide", sc.MaxWordsPerSlide)
	v.SetDefault("story.timeout", sc.Timeout)
	v.SetDefault("story.source", SourceCanned)
	v.SetDefault("story.canned_delay", story.DefaultCannedDelay)

	v.SetDefault("quiz.distractor_pool", quiz.DefaultDistractorPool())
	v.SetDefault("progress.meaning_step", progress.DefaultMeaningStep)

	lc := llm.DefaultConfig()
	// Empty means: pick the first backend with an API key in the
	// environment, else the mock.
	v.SetDefault("llm.provider", "")
	for name, b := range map[string]llm.BackendConfig{
		llm.ProviderAnthropic:  lc.Anthropic,
		llm.ProviderOpenAI:     lc.OpenAI,
		llm.ProviderGemini:     lc.Gemini,
		llm.ProviderOpenRouter: lc.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", b.APIKey)
		v.SetDefault("llm."+name+".model", b.Model)
		v.SetDefault("llm."+name+".base_url", b.BaseURL)
	}
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lc.Retry.Multiplier)
	v.SetDefault("llm.timeout", lc.Timeout)
}

// Load reads the optional config file at path and decodes the result.
// A missing default config file is not an error; a missing explicit path is.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llm.ProviderMock
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Story.Source {
	case SourceCanned, SourceLLM:
	default:
		return fmt.Errorf("story.source must be %q or %q, got %q", SourceCanned, SourceLLM, c.Story.Source)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Progress.MeaningStep <= 0 || c.Progress.MeaningStep > 1 {
		return fmt.Errorf("progress.meaning_step must be in (0,1], got %v", c.Progress.MeaningStep)
	}
	if c.Story.Source == SourceLLM {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	return nil
}
