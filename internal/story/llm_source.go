package story

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vocabflow/vocabflow/internal/llm"
)

// LLMSourceConfig controls the model-backed content source.
type LLMSourceConfig struct {
	// Checks run in order on every reply; the first rejection wins.
	Checks      []Check
	MaxTokens   int
	Temperature float64
}

// DefaultLLMSourceConfig returns the standard check chain.
func DefaultLLMSourceConfig() LLMSourceConfig {
	return LLMSourceConfig{
		Checks:      []Check{PassageCountCheck{}, PassageLengthCheck{}, WordUsageCheck{}},
		MaxTokens:   4096,
		Temperature: 0.8,
	}
}

// LLMSource writes passages with a language model.
type LLMSource struct {
	provider llm.Provider
	cfg      LLMSourceConfig
}

// NewLLMSource creates a content source backed by provider.
func NewLLMSource(provider llm.Provider, cfg LLMSourceConfig) *LLMSource {
	return &LLMSource{provider: provider, cfg: cfg}
}

type passagesOutput struct {
	Passages []string `json:"passages"`
}

func (s *LLMSource) Passages(ctx context.Context, b Brief) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "story")

	req := llm.UserPrompt(systemPrompt, buildPrompt(b), PassagesSchema)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("story generation failed: %w", err)
	}

	var out passagesOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse story response: %w", err)
	}
	for i, p := range out.Passages {
		out.Passages[i] = strings.TrimSpace(p)
	}

	for _, c := range s.cfg.Checks {
		if rej := c.Check(out.Passages, b); rej != nil {
			return nil, rej
		}
	}
	return out.Passages, nil
}

// PassagesSchema is the JSON shape requested from the model.
var PassagesSchema = &llm.Schema{
	Name:        "story-passages",
	Description: "A short children's story split into ordered passages",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passages": map[string]any{
				"type":        "array",
				"minItems":    1,
				"items":       map[string]any{"type": "string"},
				"description": "Consecutive passages of one story, each shown on its own page",
			},
		},
		"required":             []any{"passages"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You write short, warm adventure stories for children learning new vocabulary.

Rules:
- Write one continuous story split into the requested number of passages.
- Each passage is plain prose with no headings, lists or markup.
- Keep every passage under the given word limit.
- Use each vocabulary word naturally, in a sentence that hints at its meaning.
- Match the reading level to the given grade.
- Keep the content gentle and age-appropriate.`

func buildPrompt(b Brief) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Vocabulary words: %s\n", strings.Join(b.Words, ", "))
	if b.GradeLevel != "" {
		fmt.Fprintf(&sb, "Grade: %s\n", b.GradeLevel)
	}
	fmt.Fprintf(&sb, "Passages: %d\n", b.Passages)
	fmt.Fprintf(&sb, "Maximum words per passage: %d\n", b.MaxWords)
	return sb.String()
}
