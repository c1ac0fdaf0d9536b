package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/router"
	quizscreen "github.com/arjun222-afk/careerprep/internal/screens/quiz"
	tipsscreen "github.com/arjun222-afk/careerprep/internal/screens/tips"
	"github.com/arjun222-afk/careerprep/internal/store"
)

type memResults struct{ snap *store.ResultSnapshot }

func (m *memResults) Put(_ context.Context, s *store.ResultSnapshot) error {
	m.snap = s
	return nil
}
func (m *memResults) Latest(context.Context) (*store.ResultSnapshot, error) { return m.snap, nil }
func (m *memResults) Clear(context.Context) error                           { return nil }

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func TestHome_MissingDepsDisableEntries(t *testing.T) {
	h := New(Deps{})
	if h.Init() != nil {
		t.Error("Init() without a result repo should not load")
	}

	_, cmd := h.Update(enter)
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want PushScreenMsg", cmd())
	}
	if _, ok := push.Screen.(*tipsscreen.TipsScreen); !ok {
		t.Errorf("pushed %T, want the tips screen as the first enabled entry", push.Screen)
	}

	h.Update(down)
	_, cmd = h.Update(enter)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Quit entry produced %T, want tea.QuitMsg", cmd())
	}
}

func TestHome_OpensQuiz(t *testing.T) {
	h := New(Deps{Quiz: quiz.NewEngine(nil, nil, nil)})
	_, cmd := h.Update(enter)
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed %T, want the quiz screen", push.Screen)
	}
}

func TestHome_LastResultLine(t *testing.T) {
	repo := &memResults{snap: &store.ResultSnapshot{
		Kind: store.KindQuiz, Category: "technical", Score: 80,
		CompletedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	h := New(Deps{Results: repo})
	if !strings.Contains(h.View(100, 30), "No results yet") {
		t.Error("View() before load missing placeholder")
	}

	h.Update(h.Init()())
	view := h.View(100, 30)
	if !strings.Contains(view, "Last assessment (technical)") || !strings.Contains(view, "80%") {
		t.Errorf("View() missing last result line:\n%s", view)
	}

	repo.snap = nil
	h.Update(h.Refresh()())
	if !strings.Contains(h.View(100, 30), "No results yet") {
		t.Error("Refresh did not pick up the cleared result")
	}
}
