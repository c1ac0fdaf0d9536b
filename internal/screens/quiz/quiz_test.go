package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
)

type fakeAPI struct {
	questions []resultsapi.Question
	quizErr   error
	submitErr error
	submitted int
	updated   int
}

func (f *fakeAPI) Quiz(context.Context, string) ([]resultsapi.Question, error) {
	return f.questions, f.quizErr
}

func (f *fakeAPI) SubmitQuizResults(context.Context, resultsapi.QuizResults) (*resultsapi.Ack, error) {
	f.submitted++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &resultsapi.Ack{Success: true}, nil
}

func (f *fakeAPI) UpdateUserSkills(context.Context, resultsapi.QuizResults) (*resultsapi.Ack, error) {
	f.updated++
	return &resultsapi.Ack{Success: true}, nil
}

func twoQuestions() []resultsapi.Question {
	return []resultsapi.Question{
		{ID: 1, Question: "Pick Go", Options: []string{"Go", "Rust"}, CorrectAnswer: "Go", Skill: "back_end"},
		{ID: 2, Question: "Pick SQL", Options: []string{"CSV", "SQL"}, CorrectAnswer: "SQL", Skill: "database"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func newScreen(api *fakeAPI, userID *int) *QuizScreen {
	s := New(quiz.NewEngine(api, nil, nil), userID)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		t0 = t0.Add(20 * time.Second)
		return t0
	}
	return s
}

// send feeds msg to the screen and returns the follow-up command.
func send(t *testing.T, s *QuizScreen, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := s.Update(msg)
	if updated != s {
		t.Fatalf("Update returned a different screen")
	}
	return cmd
}

// start selects the highlighted category and delivers the loaded set.
func start(t *testing.T, s *QuizScreen) tea.Cmd {
	t.Helper()
	cmd := send(t, s, enter)
	if cmd == nil {
		t.Fatal("selecting a category returned no command")
	}
	if !s.loading {
		t.Error("loading = false after selecting a category")
	}
	return send(t, s, cmd())
}

func answer(t *testing.T, s *QuizScreen, r rune) tea.Cmd {
	t.Helper()
	cmd := send(t, s, keyPress(r))
	if cmd == nil {
		t.Fatalf("answer %q returned no command", r)
	}
	return send(t, s, cmd())
}

func TestQuizScreen_FullRun(t *testing.T) {
	api := &fakeAPI{questions: twoQuestions()}
	uid := 7
	s := newScreen(api, &uid)

	start(t, s)
	if s.session.Phase != quiz.PhaseInProgress {
		t.Fatalf("Phase = %v, want in-progress", s.session.Phase)
	}
	if got := s.View(100, 30); !strings.Contains(got, "Question 1 of 2") {
		t.Errorf("View() missing counter:\n%s", got)
	}

	if cmd := answer(t, s, 'a'); cmd != nil {
		t.Error("non-final answer returned a command")
	}
	complete := answer(t, s, 'a')
	if complete == nil || !s.submitting {
		t.Fatal("final answer did not start submission")
	}
	send(t, s, complete())

	if s.outcome == nil {
		t.Fatal("outcome not set")
	}
	if s.outcome.Result.Score != 50 {
		t.Errorf("Score = %d, want 50", s.outcome.Result.Score)
	}
	if api.submitted != 1 || api.updated != 1 {
		t.Errorf("submitted = %d updated = %d, want 1 and 1", api.submitted, api.updated)
	}
	if s.notice.Text != noticeSubmitted {
		t.Errorf("notice = %q, want %q", s.notice.Text, noticeSubmitted)
	}

	view := s.View(100, 40)
	for _, want := range []string{"Score: 50%", "Back-End Development", "Database Management"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}

	send(t, s, keyPress('n'))
	if s.session.Phase != quiz.PhaseStart || s.outcome != nil {
		t.Errorf("after n: Phase = %v outcome = %v, want start and nil", s.session.Phase, s.outcome)
	}
}

func TestQuizScreen_FallbackNotice(t *testing.T) {
	api := &fakeAPI{quizErr: errors.New("connection refused")}
	s := newScreen(api, nil)

	start(t, s)
	if s.session.Source != quiz.SourceFallback {
		t.Errorf("Source = %v, want fallback", s.session.Source)
	}
	if _, total := quiz.Progress(s.session); total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if s.notice.Text != noticeFallback {
		t.Errorf("notice = %q, want %q", s.notice.Text, noticeFallback)
	}
}

func TestQuizScreen_RetrySubmit(t *testing.T) {
	api := &fakeAPI{questions: twoQuestions(), submitErr: errors.New("503")}
	s := newScreen(api, nil)

	start(t, s)
	answer(t, s, 'a')
	send(t, s, answer(t, s, 'b')())

	if s.notice.Text != noticeSubmitFailed {
		t.Fatalf("notice = %q, want %q", s.notice.Text, noticeSubmitFailed)
	}
	if !s.canRetry() {
		t.Fatal("canRetry() = false after failed submit")
	}
	if s.outcome.Result.Score != 100 {
		t.Errorf("Score = %d, want 100", s.outcome.Result.Score)
	}

	api.submitErr = nil
	retry := send(t, s, keyPress('r'))
	if retry == nil {
		t.Fatal("r returned no command")
	}
	if s.KeyHints()[0].Key != "N" || s.canRetry() {
		t.Error("retry should be disabled while submitting")
	}
	send(t, s, retry())

	if api.submitted != 2 {
		t.Errorf("submitted = %d, want 2", api.submitted)
	}
	if api.updated != 0 {
		t.Errorf("updated = %d, want 0 without a user id", api.updated)
	}
	if s.notice.Text != noticeSubmitted {
		t.Errorf("notice = %q, want %q", s.notice.Text, noticeSubmitted)
	}
	if s.outcome.Result.Score != 100 {
		t.Errorf("Score after retry = %d, want 100", s.outcome.Result.Score)
	}
}

func TestQuizScreen_ChoiceIgnoredOutsideQuestion(t *testing.T) {
	s := newScreen(&fakeAPI{questions: twoQuestions()}, nil)
	if cmd := send(t, s, components.ChoiceMadeMsg{Index: 0, Option: "Go"}); cmd != nil {
		t.Error("choice before start returned a command")
	}
	if s.session.Phase != quiz.PhaseStart {
		t.Errorf("Phase = %v, want start", s.session.Phase)
	}
}
