package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vocabflow/vocabflow/internal/ui/theme"
)

// ContentWidth returns the inner width boxes on a screen share so that
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border and centres it in the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box of the given width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Button renders a pill-shaped action label.
func Button(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			BorderForeground(theme.Primary).
			Render("▸ " + label)
	}
	return style.
		Foreground(theme.Text).
		BorderForeground(theme.Border).
		Render(label)
}

// Buttons stacks labels vertically with one selected.
func Buttons(labels []string, selected, width int) string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = Button(l, i == selected, width)
	}
	return lipgloss.JoinVertical(lipgloss.Center, out...)
}
