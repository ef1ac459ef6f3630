package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// DefaultOpenRouterBaseURL is the OpenAI-compatible endpoint of OpenRouter.
const DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures a backend.
type Config struct {
	Provider string `mapstructure:"provider"`

	Anthropic  BackendConfig `mapstructure:"anthropic"`
	OpenAI     BackendConfig `mapstructure:"openai"`
	Gemini     BackendConfig `mapstructure:"gemini"`
	OpenRouter BackendConfig `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackendConfig holds the credentials and model of one backend.
type BackendConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the configuration used when nothing is set.
// Without an API key the mock backend is selected.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderMock,
		Anthropic:  BackendConfig{Model: "claude-haiku"},
		OpenAI:     BackendConfig{Model: "gpt-4o-mini"},
		Gemini:     BackendConfig{Model: "gemini-flash"},
		OpenRouter: BackendConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: DefaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// DiscoverConfig checks the well-known API key variables in order and
// returns a config for the first backend found.
func DiscoverConfig(base Config) (Config, bool) {
	probes := []struct {
		env      string
		provider string
		target   *BackendConfig
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &base.Anthropic},
		{"OPENAI_API_KEY", ProviderOpenAI, &base.OpenAI},
		{"GEMINI_API_KEY", ProviderGemini, &base.Gemini},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &base.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			p.target.APIKey = k
			base.Provider = p.provider
			return base, true
		}
	}
	return base, false
}

// Backend returns the settings of the selected provider.
func (c Config) Backend() BackendConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return BackendConfig{}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Backend().APIKey == "" {
			return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
