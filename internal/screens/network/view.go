package network

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/network"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

func (s *NetworkScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var panel string
	if kind, ok := s.activeKind(); ok {
		panel = s.renderVisualization(kind, cw)
	} else if s.tabs.Current() == tabStats {
		panel = components.Card("Network Statistics", s.renderStats(), cw)
	} else {
		panel = components.Card("Recommended Skills", s.renderRecommendations(cw), cw)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, components.TabBar(s.tabs), "", panel)
	if n := s.notice.View(); n != "" {
		body += "\n\n" + n
	}
	return components.Center(body, width, height)
}

func (s *NetworkScreen) renderVisualization(kind network.Kind, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Panel: ") + theme.Body.Render(kind.Frame()) + "\n\n")
	if u, ok := s.urls[kind]; ok {
		b.WriteString(theme.Body.Render("Open the visualization in a browser:") + "\n")
		b.WriteString(theme.Selected.Render(u) + "\n\n")
	} else {
		b.WriteString(theme.Hint.Render("Not generated yet.") + "\n\n")
	}
	b.WriteString(components.Button{
		Label:     "Refresh " + kind.Title(),
		BusyLabel: "Loading...",
		Active:    true,
		Busy:      s.refreshing[kind],
	}.View())
	return components.Card(kind.Title(), b.String(), cw)
}

func (s *NetworkScreen) renderStats() string {
	switch {
	case s.statsErr != "":
		return theme.Bad.Render(s.statsErr)
	case s.stats == nil:
		return theme.Subtitle.Render("Loading...")
	}
	st := s.stats
	var b strings.Builder
	fmt.Fprintf(&b, "Users   %s\n", theme.Title.Render(fmt.Sprint(st.UserCount)))
	fmt.Fprintf(&b, "Skills  %s\n", theme.Title.Render(fmt.Sprint(st.SkillCount)))
	fmt.Fprintf(&b, "Jobs    %s\n", theme.Title.Render(fmt.Sprint(st.JobCount)))
	if len(st.TopSkills) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Top skills") + "\n")
		for _, sk := range st.TopSkills {
			fmt.Fprintf(&b, "  %-24s %s\n", sk.Name, theme.Good.Render(fmt.Sprint(sk.Connections)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *NetworkScreen) renderRecommendations(cw int) string {
	switch {
	case s.recsErr != "":
		return theme.Body.Render(s.recsErr)
	case !s.recsDone:
		return theme.Subtitle.Render("Loading...")
	case len(s.recs) == 0:
		return theme.Body.Width(cw - 4).Render(network.EmptyRecommendations)
	}

	barWidth := max(10, cw-60)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Label.Render(fmt.Sprintf("%-20s %-12s %-12s %s", "Skill", "Peer Usage", "Job Demand", "Relevance")))
	for _, r := range s.recs {
		rel := network.Relevance(r.PeerFrequency, r.JobDemand)
		bar := components.ProgressBar{
			Percent:     float64(rel) / 100,
			ShowPercent: true,
			Width:       barWidth,
			Color:       theme.BandColor(string(network.BandFor(rel))),
		}
		fmt.Fprintf(&b, "%-20s %-12s %-12s %s\n",
			network.Capitalize(r.Skill),
			fmt.Sprintf("%d users", r.PeerFrequency),
			fmt.Sprintf("%d jobs", r.JobDemand),
			bar.View())
	}
	return strings.TrimRight(b.String(), "\n")
}
