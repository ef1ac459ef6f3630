package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, log logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		or := cfg.OpenRouter
		if or.BaseURL == "" {
			or.BaseURL = DefaultOpenRouterBaseURL
		}
		base, err = NewOpenAIProvider(or)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	log = log.WithField("component", "llm")
	return WithRetry(WithLogging(base, cfg.Provider, recorder, log), cfg.Retry, log), nil
}
