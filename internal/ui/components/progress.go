package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a value in [0,1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// View renders the bar. The bar itself is at least four cells wide.
func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6
	}
	barWidth := max(p.Width-lipgloss.Width(out)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return out
}
