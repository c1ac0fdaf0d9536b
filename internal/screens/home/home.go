// Package home is the main menu.
package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/router"
	"github.com/arjun222-afk/careerprep/internal/screen"
	interviewscreen "github.com/arjun222-afk/careerprep/internal/screens/interview"
	networkscreen "github.com/arjun222-afk/careerprep/internal/screens/network"
	quizscreen "github.com/arjun222-afk/careerprep/internal/screens/quiz"
	resultsscreen "github.com/arjun222-afk/careerprep/internal/screens/results"
	tipsscreen "github.com/arjun222-afk/careerprep/internal/screens/tips"
	"github.com/arjun222-afk/careerprep/internal/store"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
)

// Deps are the services the screens reachable from home need. Nil fields
// disable the matching menu entry; Tips and Transcriber degrade in place.
type Deps struct {
	Quiz        *quiz.Engine
	Interview   *interview.Engine
	Transcriber transcribe.Transcriber
	Network     networkscreen.API
	APIBaseURL  string
	Tips        tipsscreen.Generator
	Results     store.ResultRepo
	Events      store.EventRepo
	ExportPath  string
	UserID      *int
	Logger      *slog.Logger
}

type latestMsg struct {
	Snap *store.ResultSnapshot
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	latest *store.ResultSnapshot
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "Skill Assessment", Hint: "quiz your technical or soft skills",
			Disabled: deps.Quiz == nil,
			Action:   func() tea.Cmd { return router.Push(quizscreen.New(deps.Quiz, deps.UserID)) },
		},
		{
			Label: "Virtual Interview", Hint: "answer questions, get an analysis",
			Disabled: deps.Interview == nil,
			Action: func() tea.Cmd {
				return router.Push(interviewscreen.New(deps.Interview, deps.Transcriber, deps.Logger))
			},
		},
		{
			Label: "Network Insights", Hint: "skill networks and recommendations",
			Disabled: deps.Network == nil,
			Action:   func() tea.Cmd { return router.Push(networkscreen.New(deps.Network, deps.APIBaseURL)) },
		},
		{
			Label: "Preparation Tips", Hint: "resume and interview advice",
			Action: func() tea.Cmd { return router.Push(tipsscreen.New(deps.Tips)) },
		},
		{
			Label: "Last Result", Hint: "your most recent score",
			Disabled: deps.Results == nil,
			Action: func() tea.Cmd {
				return router.Push(resultsscreen.New(deps.Results, deps.Events, deps.ExportPath))
			},
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	return h
}

// Init loads the stored result for the summary line.
func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLatest()
}

func (h *HomeScreen) loadLatest() tea.Cmd {
	repo := h.deps.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := repo.Latest(context.Background())
		if err != nil {
			return latestMsg{}
		}
		return latestMsg{Snap: snap}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(latestMsg); ok {
		h.latest = m.Snap
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Refresh reloads the summary line. The app calls it when home becomes
// active again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadLatest()
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 64)

	sections := []string{
		renderTitle(cw),
		components.Card("", h.menu.View(), cw),
	}
	if h.deps.Results != nil {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(lastResultLine(h.latest)))
	}
	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
