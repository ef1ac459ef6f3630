package story

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/llm"
)

func passagesJSON(ps ...string) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"passages": ps})
	return b
}

func testBrief() Brief {
	return Brief{Words: []string{"ancient", "gentle"}, GradeLevel: "2nd Grade", Passages: 10, MaxWords: 150}
}

func TestLLMSource_Passages(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: passagesJSON(" The ancient tree waited. ", "A gentle wind blew."),
	})
	src := NewLLMSource(mock, DefaultLLMSourceConfig())

	ps, err := src.Passages(context.Background(), testBrief())
	require.NoError(t, err)
	assert.Equal(t, []string{"The ancient tree waited.", "A gentle wind blew."}, ps)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, PassagesSchema, call.Schema)
	assert.Equal(t, 4096, call.MaxTokens)
	prompt := call.Messages[0].Content
	assert.Contains(t, prompt, "ancient, gentle")
	assert.Contains(t, prompt, "Grade: 2nd Grade")
	assert.Contains(t, prompt, "Maximum words per passage: 150")
}

func TestLLMSource_Checks(t *testing.T) {
	tests := []struct {
		name      string
		passages  []string
		wantCheck string
	}{
		{"no passages", nil, "passage-count"},
		{"too many passages", strings.Fields(strings.Repeat("ancient ", 25)), "passage-count"},
		{"empty passage", []string{"The ancient tree.", "  "}, "passage-length"},
		{"too long", []string{strings.Repeat("ancient ", 151)}, "passage-length"},
		{"no vocabulary", []string{"A dog ran home."}, "word-usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: passagesJSON(tt.passages...)})
			_, err := NewLLMSource(mock, DefaultLLMSourceConfig()).Passages(context.Background(), testBrief())

			var rej *RejectError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.wantCheck, rej.Check)
		})
	}
}

func TestLLMSource_ProviderErrorBecomesGenerationFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	g := NewGenerator(NewLLMSource(mock, DefaultLLMSourceConfig()), DefaultConfig(), WithRand(rand.New(rand.NewPCG(3, 4))))

	_, err := g.Generate(context.Background(), []string{"gentle"})
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestLLMSource_EndToEnd(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: passagesJSON("The ancient oak.", "A gentle breeze.", "The ancient path."),
	})
	g := NewGenerator(NewLLMSource(mock, DefaultLLMSourceConfig()), DefaultConfig(),
		WithRand(rand.New(rand.NewPCG(5, 6))), WithGradeLevel("3rd Grade"))

	slides, err := g.Generate(context.Background(), []string{"ancient", "gentle"})
	require.NoError(t, err)
	assert.Len(t, slides, MinSlides)
	assert.Equal(t, "The ancient oak.", slides[3].Text)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "3rd Grade")
}
