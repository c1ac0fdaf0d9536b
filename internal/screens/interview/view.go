package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.answer.SetWidth(cw - 4)

	var body string
	switch s.session.Phase {
	case interview.PhaseInProgress:
		body = s.renderInProgress(cw)
	case interview.PhaseCompleted:
		body = s.renderCompleted(cw)
	default:
		body = s.renderSetup(cw)
	}

	if n := s.notice.View(); n != "" {
		body += "\n\n" + n
	}
	return components.Center(body, width, height)
}

// actionButton renders the control Affordance enables, or the pending one
// with its progress label.
func (s *InterviewScreen) actionButton() string {
	if a := interview.PendingAction(s.session); a != interview.ActionNone {
		return components.Button{Label: a.String(), BusyLabel: a.Progress(), Busy: true}.View()
	}
	a := interview.Affordance(s.session)
	if a == interview.ActionNone {
		return ""
	}
	return components.Button{Label: a.String(), Active: true}.View()
}

func (s *InterviewScreen) renderSetup(cw int) string {
	intro := theme.Body.Width(cw).Render(
		"Practise answering interview questions for the role you are preparing for. Your answers are analysed when the interview is complete.")
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Set up your interview"),
		"",
		intro,
		"",
		s.role.View(),
		"",
		s.area.View(),
		"",
		s.actionButton(),
	)
}

func (s *InterviewScreen) renderInProgress(cw int) string {
	sess := s.session

	header := theme.Heading.Render(interview.InterviewerName(sess.JobRole))
	if sess.Greeting != "" {
		header += "\n" + theme.Body.Width(cw-4).Render(sess.Greeting)
	}

	label := fmt.Sprintf("Question %d", sess.QuestionNumber)
	if sess.Final {
		label += " (final)"
	}
	question := theme.Label.Render(label) + "\n" + theme.Body.Bold(true).Width(cw-4).Render(sess.CurrentQuestion)

	parts := []string{
		components.Card("", header+"\n\n"+question, cw),
		"",
		s.answer.View(),
	}
	if s.listening() {
		parts = append(parts, theme.Good.Render("● ")+theme.Hint.Render(s.buffer.Status()))
	}
	parts = append(parts, "", s.actionButton())

	if len(sess.Transcript) > 0 {
		parts = append(parts, "", components.Card("Transcript",
			theme.Body.Width(cw-4).Render(interview.TranscriptText(sess)), cw))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *InterviewScreen) renderCompleted(cw int) string {
	sess := s.session
	if sess.Analysis == nil || sess.Feedback == nil {
		return ""
	}
	a, f := sess.Analysis, sess.Feedback

	var b strings.Builder
	fmt.Fprintf(&b, "Technical score:      %s\n", theme.Title.Render(interview.FormatScore(a.TechnicalScore)))
	fmt.Fprintf(&b, "Communication score:  %s\n", theme.Title.Render(interview.FormatScore(a.CommunicationScore)))
	writeList(&b, theme.Good.Render("Strengths"), a.Strengths)
	writeList(&b, theme.Bad.Render("Areas for improvement"), f.AreasForImprovement)
	writeList(&b, theme.Heading.Render("Next steps"), f.NextSteps)
	b.WriteString("\n" + theme.Body.Width(cw-4).Render(f.OverallFeedback))

	parts := []string{components.Card("Interview Analysis", b.String(), cw), ""}
	if sess.Saved {
		parts = append(parts, theme.Good.Render("✓ Saved to your profile"))
	} else {
		parts = append(parts, s.actionButton())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + heading + "\n")
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}
