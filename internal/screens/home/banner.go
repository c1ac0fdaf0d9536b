package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/store"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

const wordmark = "C A R E E R P R E P"

const tagline = "Assess your skills. Practise interviews. Find what to learn next."

// renderTitle returns the centred wordmark and tagline.
func renderTitle(cw int) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	return center.Render(theme.Title.Render(wordmark)) + "\n" +
		center.Render(theme.Subtitle.Render(tagline))
}

// lastResultLine summarizes the stored result in one line.
func lastResultLine(snap *store.ResultSnapshot) string {
	if snap == nil {
		return theme.Hint.Render("No results yet")
	}
	when := snap.CompletedAt.Local().Format("Jan 2")
	if snap.Kind == store.KindInterview && snap.Interview != nil {
		return fmt.Sprintf("Last interview: %s, %s",
			theme.Body.Render(snap.Interview.JobRole),
			theme.Good.Render(fmt.Sprintf("%d%% technical", snap.Score))) +
			theme.Hint.Render("  "+when)
	}
	return fmt.Sprintf("Last assessment (%s): %s", snap.Category,
		theme.Good.Render(fmt.Sprintf("%d%%", snap.Score))) +
		theme.Hint.Render("  "+when)
}
