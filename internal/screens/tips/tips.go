// Package tips is the preparation tips screen: pick resume or interview
// tips, enter a job role and read the generated advice.
package tips

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/tips"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// Generator produces tips for a role.
type Generator interface {
	Generate(ctx context.Context, kind tips.Kind, role string) (*tips.Tips, error)
}

// NoProviderMessage is shown when no language model is configured.
const NoProviderMessage = "Preparation tips need a language model. Set CAREERPREP_LLM_PROVIDER and the matching API key, then restart."

const noticeFailed = "Could not generate tips. Please try again."

type generatedMsg struct {
	Tips *tips.Tips
	Err  error
}

// TipsScreen generates and shows preparation tips.
type TipsScreen struct {
	gen    Generator
	kinds  []tips.Kind
	kind   int
	role   components.TextInput
	notice components.Notice

	generating bool
	result     *tips.Tips
	offset     int
}

var _ screen.Screen = (*TipsScreen)(nil)
var _ screen.KeyHintProvider = (*TipsScreen)(nil)

// New creates a TipsScreen. A nil generator shows NoProviderMessage.
func New(gen Generator) *TipsScreen {
	return &TipsScreen{
		gen:   gen,
		kinds: []tips.Kind{tips.KindResume, tips.KindInterview},
		role:  components.NewTextInput("Job role", "e.g. Data Analyst", 80),
	}
}

func (s *TipsScreen) Init() tea.Cmd {
	if s.gen == nil {
		return nil
	}
	return s.role.Focus()
}

func (s *TipsScreen) Title() string {
	return "Preparation Tips"
}

func (s *TipsScreen) KeyHints() []layout.KeyHint {
	if s.gen == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Resume/Interview"},
		{Key: "Enter", Description: "Generate"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TipsScreen) currentKind() tips.Kind {
	return s.kinds[s.kind]
}

func (s *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.gen == nil {
		return s, nil
	}
	if s.notice.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case generatedMsg:
		s.generating = false
		if msg.Err != nil {
			if errors.Is(msg.Err, tips.ErrBlankRole) {
				return s, s.notice.Show(components.NoticeError, "Please enter a job role.")
			}
			return s, s.notice.Show(components.NoticeError, noticeFailed)
		}
		s.result = msg.Tips
		s.offset = 0
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			s.kind = (s.kind + 1) % len(s.kinds)
			return s, nil
		case "enter":
			return s, s.generate()
		case "pgdown", "ctrl+d":
			s.offset += 5
			return s, nil
		case "pgup", "ctrl+u":
			s.offset = max(0, s.offset-5)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.role, cmd = s.role.Update(msg)
	return s, cmd
}

func (s *TipsScreen) generate() tea.Cmd {
	if s.generating {
		return nil
	}
	role := strings.TrimSpace(s.role.Value())
	if role == "" {
		return s.notice.Show(components.NoticeError, "Please enter a job role.")
	}
	s.generating = true
	gen, kind := s.gen, s.currentKind()
	return func() tea.Msg {
		t, err := gen.Generate(context.Background(), kind, role)
		return generatedMsg{Tips: t, Err: err}
	}
}

func (s *TipsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.gen == nil {
		return components.Center(theme.Body.Width(cw).Render(NoProviderMessage), width, height)
	}

	var kinds []string
	for i, k := range s.kinds {
		label := "Resume"
		if k == tips.KindInterview {
			label = "Interview"
		}
		if i == s.kind {
			kinds = append(kinds, theme.TabActive.Render(label))
		} else {
			kinds = append(kinds, theme.TabInactive.Render(label))
		}
	}

	button := components.Button{Label: "Get Tips", BusyLabel: "Generating tips...", Active: true, Busy: s.generating}

	form := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(kinds, " "),
		"",
		s.role.View(),
		"",
		button.View(),
	)
	if n := s.notice.View(); n != "" {
		form += "\n\n" + n
	}

	if s.result == nil {
		return components.Center(form, width, height)
	}

	formHeight := lipgloss.Height(form) + 1
	avail := max(3, height-formHeight-2)
	return lipgloss.JoinVertical(lipgloss.Left, form, "", s.renderTips(cw, avail))
}

// renderTips renders the tip set, scrolled by offset and clipped to height
// lines.
func (s *TipsScreen) renderTips(cw, height int) string {
	t := s.result
	var b strings.Builder
	b.WriteString(theme.Title.Render(t.Title()) + "\n")
	for _, sec := range t.Sections {
		b.WriteString("\n" + theme.Heading.Render(sec.Title) + "\n")
		for _, p := range sec.Points {
			b.WriteString(theme.Body.Width(cw).Render("  • "+p) + "\n")
		}
	}
	if len(t.Resources) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Resources") + "\n")
		for _, r := range t.Resources {
			fmt.Fprintf(&b, "  %s %s\n    %s\n", theme.Label.Render("["+string(r.Kind)+"]"), r.Title, theme.Hint.Render(r.URL))
		}
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	s.offset = min(s.offset, max(0, len(lines)-height))
	end := min(len(lines), s.offset+height)
	return strings.Join(lines[s.offset:end], "\n")
}
