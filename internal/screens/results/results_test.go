package results

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/store"
)

type memResults struct {
	snap    *store.ResultSnapshot
	cleared bool
}

func (m *memResults) Put(_ context.Context, s *store.ResultSnapshot) error {
	m.snap = s
	return nil
}

func (m *memResults) Latest(context.Context) (*store.ResultSnapshot, error) { return m.snap, nil }

func (m *memResults) Clear(context.Context) error {
	m.snap, m.cleared = nil, true
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func quizSnap() *store.ResultSnapshot {
	return &store.ResultSnapshot{
		Kind:              store.KindQuiz,
		Category:          "technical",
		ProficientSkills:  []string{"front_end"},
		ImprovementSkills: []string{"data_structures"},
		Score:             60,
		CompletedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func loaded(t *testing.T, repo *memResults, exportPath string) *ResultsScreen {
	t.Helper()
	s := New(repo, nil, exportPath)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("loaded = false after Init")
	}
	return s
}

func TestResultsScreen_Quiz(t *testing.T) {
	s := loaded(t, &memResults{snap: quizSnap()}, "")
	view := s.View(100, 30)
	for _, want := range []string{"60%", "Front-End Development", "Data Structures & Algorithms"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	for _, h := range s.KeyHints() {
		if h.Key == "E" {
			t.Error("export hint shown without an export path")
		}
	}
}

func TestResultsScreen_Interview(t *testing.T) {
	snap := &store.ResultSnapshot{
		Kind:  store.KindInterview,
		Score: 80,
		Interview: &store.InterviewSnapshot{
			JobRole: "SRE", SkillArea: "Linux", Turns: 3,
			TechnicalScore: 80, CommunicationScore: 75,
			Strengths: []string{"Calm under pressure"}, SavedToProfile: true,
		},
	}
	s := loaded(t, &memResults{snap: snap}, "")
	view := s.View(100, 30)
	for _, want := range []string{"SRE (Linux)", "80%", "75%", "Calm under pressure", "Saved to profile"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestResultsScreen_Empty(t *testing.T) {
	s := loaded(t, &memResults{}, "")
	if !strings.Contains(s.View(100, 30), "No results yet.") {
		t.Error("View() missing empty message")
	}
	if _, cmd := s.Update(keyPress('c')); cmd != nil {
		t.Error("clear with no result returned a command")
	}
}

func TestResultsScreen_Clear(t *testing.T) {
	repo := &memResults{snap: quizSnap()}
	s := loaded(t, repo, "")
	_, cmd := s.Update(keyPress('c'))
	s.Update(cmd())
	if !repo.cleared || s.snap != nil {
		t.Errorf("cleared = %v snap = %v, want true nil", repo.cleared, s.snap)
	}
}

func TestResultsScreen_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.xlsx")
	s := loaded(t, &memResults{snap: quizSnap()}, path)

	_, cmd := s.Update(keyPress('e'))
	if cmd == nil {
		t.Fatal("e returned no command")
	}
	s.Update(cmd())

	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file: %v", err)
	}
	if s.notice.Text != "Exported to "+path {
		t.Errorf("notice = %q", s.notice.Text)
	}
}
