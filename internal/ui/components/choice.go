package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// Choice is a single-answer option list. Options are lettered A, B, C...
// and can be picked with the arrow keys or by letter.
type Choice struct {
	Options  []string
	Selected int
}

// ChoiceMadeMsg is emitted when the user confirms an option.
type ChoiceMadeMsg struct {
	Index  int
	Option string
}

// NewChoice creates an option list with the first option highlighted.
func NewChoice(options []string) Choice {
	return Choice{Options: options}
}

// Update handles navigation and confirmation.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		return c, c.confirm()
	}

	if len(key) == 1 {
		idx := int(strings.ToLower(key)[0] - 'a')
		if idx >= 0 && idx < len(c.Options) {
			c.Selected = idx
			return c, c.confirm()
		}
	}
	return c, nil
}

func (c Choice) confirm() tea.Cmd {
	idx, opt := c.Selected, c.Options[c.Selected]
	return func() tea.Msg { return ChoiceMadeMsg{Index: idx, Option: opt} }
}

// View renders the options.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		letter := string(rune('A' + i))
		if i == c.Selected {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("▸ %s)  %s", letter, opt)))
		} else {
			b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %s)  %s", letter, opt)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
