package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// NoticeKind selects the colour of a Notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// NoticeTTL is how long a notice stays visible.
const NoticeTTL = 4 * time.Second

// Notice is a transient one-line status message. Each Show bumps the
// sequence so that only the latest notice's expiry clears it.
type Notice struct {
	Kind NoticeKind
	Text string
	seq  int
}

// noticeExpiredMsg clears the notice with the matching sequence.
type noticeExpiredMsg struct{ seq int }

// Show sets the message and returns the command that expires it.
func (n *Notice) Show(kind NoticeKind, text string) tea.Cmd {
	n.seq++
	n.Kind = kind
	n.Text = text
	seq := n.seq
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update clears the notice when its expiry arrives. It reports whether
// msg was a notice message.
func (n *Notice) Update(msg tea.Msg) bool {
	m, ok := msg.(noticeExpiredMsg)
	if !ok {
		return false
	}
	if m.seq == n.seq {
		n.Text = ""
	}
	return true
}

// View renders the notice, or "" when there is none.
func (n Notice) View() string {
	if n.Text == "" {
		return ""
	}
	switch n.Kind {
	case NoticeSuccess:
		return theme.Good.Render("✓ " + n.Text)
	case NoticeError:
		return theme.Bad.Render("✗ " + n.Text)
	default:
		return theme.Body.Render(n.Text)
	}
}
