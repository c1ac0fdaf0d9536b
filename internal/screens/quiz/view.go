package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/skills"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.errMsg != "":
		body = theme.Bad.Render(s.errMsg) + "\n\n" + theme.Hint.Render("Press any key to start over.")
	case s.loading:
		body = theme.Subtitle.Render("Loading questions...")
	case s.session.Phase == quiz.PhaseInProgress:
		body = s.renderQuestion(cw)
	case s.session.Phase == quiz.PhaseFinished:
		body = s.renderResult(cw)
	default:
		body = s.renderCategories(cw)
	}

	if n := s.notice.View(); n != "" {
		body += "\n\n" + n
	}
	return components.Center(body, width, height)
}

func (s *QuizScreen) renderCategories(cw int) string {
	intro := theme.Body.Width(cw).Render(
		"Answer a short set of questions to find the skills you are strong in and the ones worth practising.")
	return theme.Title.Render("Choose a category") + "\n\n" + intro + "\n\n" + s.categories.View()
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q, ok := quiz.Current(s.session)
	if !ok {
		return ""
	}
	cur, total := quiz.Progress(s.session)

	bar := components.NewProgressBar("", float64(cur)/float64(total), false, cw)
	counter := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", cur, total))
	text := theme.Body.Bold(true).Width(cw).Render(q.Text)

	return lipgloss.JoinVertical(lipgloss.Left,
		counter,
		bar.View(),
		"",
		components.Card("", text+"\n\n"+s.choice.View(), cw),
	)
}

func (s *QuizScreen) renderResult(cw int) string {
	if s.outcome == nil {
		return theme.Subtitle.Render("Scoring your answers...")
	}
	r := s.outcome.Result

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Title.Render(fmt.Sprintf("Score: %d%%", r.Score)))
	fmt.Fprintf(&b, "Correct answers: %d out of %d\n", r.Correct, r.Total)
	fmt.Fprintf(&b, "Time taken: %s\n", r.ElapsedText)

	b.WriteString("\n" + theme.Good.Render("Proficient skills") + "\n")
	b.WriteString(skillList(r.Classification.Proficient))
	b.WriteString("\n" + theme.Bad.Render("Skills to improve") + "\n")
	b.WriteString(skillList(r.Classification.NeedsImprovement))

	if s.submitting {
		b.WriteString("\n" + theme.Hint.Render("Submitting results..."))
	}
	return components.Card("Assessment Results", strings.TrimRight(b.String(), "\n"), cw)
}

func skillList(tags []string) string {
	if len(tags) == 0 {
		return theme.Hint.Render("  none") + "\n"
	}
	var b strings.Builder
	for _, label := range skills.Labels(tags) {
		b.WriteString("  • " + label + "\n")
	}
	return b.String()
}
