package components

import (
	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards inside a frame of
// the given width.
func ContentWidth(frameWidth int) int {
	return max(30, min(frameWidth-6, 96))
}

// Card wraps content in a rounded border with an optional heading.
func Card(heading, content string, cw int) string {
	if heading != "" {
		content = theme.Heading.Render(heading) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
