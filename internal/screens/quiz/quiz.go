// Package quiz is the skill assessment screen: category selection, one
// question at a time, then the scored result.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
)

// Notices shown on the result view.
const (
	noticeFallback     = "Could not load questions from the server. Using the built-in set."
	noticeSubmitted    = "Results submitted."
	noticeSubmitFailed = "Results saved locally, but submitting them failed. Press r to retry."
	noticeUpdateFailed = "Results submitted, but updating your skills failed. Press r to retry."
)

// QuizScreen runs one assessment at a time.
type QuizScreen struct {
	engine  *quiz.Engine
	userID  *int
	now     func() time.Time
	session *quiz.Session

	categories components.Menu
	choice     components.Choice
	notice     components.Notice

	loading    bool
	submitting bool
	outcome    *quiz.Outcome
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. userID is sent with the submission when set.
func New(engine *quiz.Engine, userID *int) *QuizScreen {
	s := &QuizScreen{
		engine:  engine,
		userID:  userID,
		now:     time.Now,
		session: quiz.NewSession(),
	}
	s.categories = components.NewMenu([]components.MenuItem{
		{Label: "Technical Skills", Hint: "front end, back end, databases", Action: s.selectAction(quiz.CategoryTechnical)},
		{Label: "Soft Skills", Hint: "communication, teamwork, feedback", Action: s.selectAction(quiz.CategorySoft)},
	})
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Skill Assessment"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case quiz.PhaseStart:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "A-Z", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
		}
	case quiz.PhaseFinished:
		hints := []layout.KeyHint{{Key: "N", Description: "New assessment"}}
		if s.canRetry() {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry submit"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.notice.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case components.ChoiceMadeMsg:
		return s.handleChoice(msg)

	case completedMsg:
		return s.handleCompleted(msg)

	case resubmittedMsg:
		s.submitting = false
		if s.outcome != nil {
			msg.Outcome.Result = s.outcome.Result
			msg.Outcome.Stored = s.outcome.Stored
			msg.Outcome.StoreErr = s.outcome.StoreErr
		}
		s.outcome = &msg.Outcome
		return s, s.showOutcome()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) selectAction(category string) func() tea.Cmd {
	return func() tea.Cmd {
		if err := quiz.SelectCategory(s.session, category); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.loading = true
		return s.loadQuestions(category)
	}
}

func (s *QuizScreen) loadQuestions(category string) tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		return questionsLoadedMsg{Result: engine.LoadQuestions(context.Background(), category)}
	}
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	res := msg.Result
	if err := quiz.Begin(s.session, res.Questions, res.Source, s.now()); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.resetChoice()

	if res.Source == quiz.SourceFallback {
		return s, s.notice.Show(components.NoticeInfo, noticeFallback)
	}
	return s, nil
}

func (s *QuizScreen) resetChoice() {
	if q, ok := quiz.Current(s.session); ok {
		s.choice = components.NewChoice(q.Options)
	}
}

func (s *QuizScreen) handleChoice(msg components.ChoiceMadeMsg) (screen.Screen, tea.Cmd) {
	if s.session.Phase != quiz.PhaseInProgress {
		return s, nil
	}
	if _, err := quiz.Answer(s.session, msg.Option, s.now()); err != nil {
		return s, s.notice.Show(components.NoticeError, err.Error())
	}
	if s.session.Phase != quiz.PhaseFinished {
		s.resetChoice()
		return s, nil
	}

	s.submitting = true
	engine, sess, userID := s.engine, s.session, s.userID
	return s, func() tea.Msg {
		out, err := engine.Complete(context.Background(), sess, userID)
		return completedMsg{Outcome: out, Err: err}
	}
}

func (s *QuizScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.outcome = &msg.Outcome
	return s, s.showOutcome()
}

func (s *QuizScreen) showOutcome() tea.Cmd {
	out := s.outcome
	switch {
	case out.SubmitErr != nil:
		return s.notice.Show(components.NoticeError, noticeSubmitFailed)
	case out.UpdateErr != nil:
		return s.notice.Show(components.NoticeError, noticeUpdateFailed)
	default:
		return s.notice.Show(components.NoticeSuccess, noticeSubmitted)
	}
}

func (s *QuizScreen) canRetry() bool {
	return s.outcome != nil && !s.submitting &&
		(s.outcome.SubmitErr != nil || s.outcome.UpdateErr != nil)
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		s.errMsg = ""
		quiz.Reset(s.session)
		return s, nil
	}

	var cmd tea.Cmd
	switch s.session.Phase {
	case quiz.PhaseStart:
		s.categories, cmd = s.categories.Update(msg)
		return s, cmd

	case quiz.PhaseInProgress:
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case quiz.PhaseFinished:
		if s.submitting {
			return s, nil
		}
		switch msg.String() {
		case "n":
			quiz.Reset(s.session)
			s.outcome = nil
			s.notice = components.Notice{}
			return s, nil
		case "r":
			if !s.canRetry() {
				return s, nil
			}
			s.submitting = true
			engine, sub := s.engine, s.outcome.Submission
			return s, func() tea.Msg {
				return resubmittedMsg{Outcome: engine.Submit(context.Background(), sub)}
			}
		}
	}
	return s, nil
}
