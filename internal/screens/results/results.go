// Package results shows the most recent stored quiz or interview result.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/export"
	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/skills"
	"github.com/arjun222-afk/careerprep/internal/store"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
	"github.com/arjun222-afk/careerprep/internal/ui/theme"
)

// exportEventLimit caps the request log copied into an export.
const exportEventLimit = 500

const noResult = "No results yet. Complete a skill assessment or an interview first."

type loadedMsg struct {
	Snap *store.ResultSnapshot
	Err  error
}

type clearedMsg struct{ Err error }

type exportedMsg struct {
	Path string
	Err  error
}

// ResultsScreen shows the latest result snapshot.
type ResultsScreen struct {
	results    store.ResultRepo
	events     store.EventRepo
	exportPath string

	snap    *store.ResultSnapshot
	loaded  bool
	loadErr error
	notice  components.Notice
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. events may be nil; an empty exportPath
// disables export.
func New(results store.ResultRepo, events store.EventRepo, exportPath string) *ResultsScreen {
	return &ResultsScreen{results: results, events: events, exportPath: exportPath}
}

func (s *ResultsScreen) Init() tea.Cmd {
	repo := s.results
	return func() tea.Msg {
		snap, err := repo.Latest(context.Background())
		return loadedMsg{Snap: snap, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return "Last Result"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if s.snap != nil {
		if s.exportPath != "" {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Export .xlsx"})
		}
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.notice.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.snap, s.loadErr = msg.Snap, msg.Err
		return s, nil

	case clearedMsg:
		if msg.Err != nil {
			return s, s.notice.Show(components.NoticeError, "Could not clear the result: "+msg.Err.Error())
		}
		s.snap = nil
		return s, s.notice.Show(components.NoticeSuccess, "Result cleared.")

	case exportedMsg:
		if msg.Err != nil {
			return s, s.notice.Show(components.NoticeError, "Export failed: "+msg.Err.Error())
		}
		return s, s.notice.Show(components.NoticeSuccess, "Exported to "+msg.Path)

	case tea.KeyPressMsg:
		if s.snap == nil {
			return s, nil
		}
		switch msg.String() {
		case "c":
			repo := s.results
			return s, func() tea.Msg {
				return clearedMsg{Err: repo.Clear(context.Background())}
			}
		case "e":
			if s.exportPath == "" {
				return s, nil
			}
			return s, s.export()
		}
	}
	return s, nil
}

func (s *ResultsScreen) export() tea.Cmd {
	snap, events, path := s.snap, s.events, s.exportPath
	return func() tea.Msg {
		var log []store.APIRequestEvent
		if events != nil {
			var err error
			log, err = events.QueryAPIEvents(context.Background(), store.QueryOpts{Limit: exportEventLimit})
			if err != nil {
				return exportedMsg{Err: err}
			}
		}
		return exportedMsg{Path: path, Err: export.WriteFile(path, snap, log)}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case !s.loaded:
		body = theme.Subtitle.Render("Loading...")
	case s.loadErr != nil:
		body = theme.Bad.Render("Could not read the stored result: " + s.loadErr.Error())
	case s.snap == nil:
		body = theme.Body.Render(noResult)
	case s.snap.Kind == store.KindInterview && s.snap.Interview != nil:
		body = components.Card("Interview", renderInterview(s.snap), cw)
	default:
		body = components.Card("Skill Assessment", renderQuiz(s.snap), cw)
	}

	if n := s.notice.View(); n != "" {
		body += "\n\n" + n
	}
	return components.Center(body, width, height)
}

func renderQuiz(snap *store.ResultSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category:  %s\n", snap.Category)
	fmt.Fprintf(&b, "Score:     %s\n", theme.Title.Render(fmt.Sprintf("%d%%", snap.Score)))
	fmt.Fprintf(&b, "Completed: %s\n", snap.CompletedAt.Local().Format("2006-01-02 15:04"))
	list(&b, theme.Good.Render("Proficient skills"), skills.Labels(snap.ProficientSkills))
	list(&b, theme.Bad.Render("Skills to improve"), skills.Labels(snap.ImprovementSkills))
	return strings.TrimRight(b.String(), "\n")
}

func renderInterview(snap *store.ResultSnapshot) string {
	iv := snap.Interview
	var b strings.Builder
	fmt.Fprintf(&b, "Role:          %s (%s)\n", iv.JobRole, iv.SkillArea)
	fmt.Fprintf(&b, "Technical:     %s\n", theme.Title.Render(interview.FormatScore(iv.TechnicalScore)))
	fmt.Fprintf(&b, "Communication: %s\n", theme.Title.Render(interview.FormatScore(iv.CommunicationScore)))
	fmt.Fprintf(&b, "Answers:       %d\n", iv.Turns)
	fmt.Fprintf(&b, "Completed:     %s\n", snap.CompletedAt.Local().Format("2006-01-02 15:04"))
	if iv.SavedToProfile {
		b.WriteString(theme.Good.Render("Saved to profile") + "\n")
	}
	list(&b, theme.Good.Render("Strengths"), iv.Strengths)
	list(&b, theme.Bad.Render("Areas for improvement"), iv.AreasForImprovement)
	list(&b, theme.Heading.Render("Next steps"), iv.NextSteps)
	if iv.OverallFeedback != "" {
		b.WriteString("\n" + iv.OverallFeedback + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func list(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + heading + "\n")
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}
