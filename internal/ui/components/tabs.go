package components

import (
	"strings"

	"github.com/arjun222-afk/careerprep/internal/network"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// TabBar renders a network.Tabs strip with the active tab highlighted.
func TabBar(t network.Tabs) string {
	parts := make([]string, len(t.Labels))
	for i, label := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(label)
		} else {
			parts[i] = theme.TabInactive.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
