package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(80, 24))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Lists", HeaderInfo{Learner: "Lily", Mastered: 4}, 100)
	assert.Contains(t, h, "vocabflow")
	assert.Contains(t, h, "Lists")
	assert.Contains(t, h, "Lily")
	assert.Contains(t, h, "4 mastered")

	h = RenderHeader("Profiles", HeaderInfo{}, 100)
	assert.NotContains(t, h, "mastered")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("t", HeaderInfo{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.True(t, strings.Contains(frame, "Esc"))
}
