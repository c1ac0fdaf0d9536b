package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// Button is a focusable action. While Busy it shows BusyLabel and ignores
// presses, the way a form button is disabled during a request.
type Button struct {
	Label     string
	BusyLabel string
	Active    bool
	Disabled  bool
	Busy      bool
	OnPress   func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Pressable reports whether Enter would fire the button.
func (b Button) Pressable() bool {
	return b.Active && !b.Disabled && !b.Busy && b.OnPress != nil
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Pressable() {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Busy && b.BusyLabel != "" {
		label = b.BusyLabel
	}
	switch {
	case b.Disabled || b.Busy:
		return theme.Disabled.Render("  " + label + " ")
	case b.Active:
		return theme.ButtonActive.Render("  ▸ " + label + " ")
	default:
		return theme.ButtonInactive.Render("    " + label + " ")
	}
}
