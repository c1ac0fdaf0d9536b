// Package interview is the virtual interview screen: setup form, question
// and answer turns with optional voice input, and the final analysis.
package interview

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
)

const noticeRecordFailed = "Could not store the result locally."

// InterviewScreen drives one interview session.
type InterviewScreen struct {
	engine      *interview.Engine
	transcriber transcribe.Transcriber
	logger      *slog.Logger
	now         func() time.Time
	session     *interview.Session

	role   components.TextInput
	area   components.TextInput
	answer components.TextInput
	notice components.Notice

	buffer   transcribe.Buffer
	segments <-chan transcribe.Segment
	capture  int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.Closer = (*InterviewScreen)(nil)

// New creates an InterviewScreen. A nil transcriber disables voice input.
func New(engine *interview.Engine, tr transcribe.Transcriber, logger *slog.Logger) *InterviewScreen {
	if tr == nil {
		tr = transcribe.Noop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &InterviewScreen{
		engine:      engine,
		transcriber: tr,
		logger:      logger,
		now:         time.Now,
		session:     interview.NewSession(),
	}
	s.resetInputs()
	return s
}

func (s *InterviewScreen) resetInputs() {
	s.role = components.NewTextInput("Job role", "e.g. Backend Engineer", 80)
	s.area = components.NewTextInput("Skill area", "e.g. Databases", 80)
	s.answer = components.NewTextInput("Your answer", "Type your answer...", 2000)
	s.buffer.Reset()
}

func (s *InterviewScreen) Init() tea.Cmd {
	return s.role.Focus()
}

func (s *InterviewScreen) Title() string {
	return "Virtual Interview"
}

// Close stops any running voice capture.
func (s *InterviewScreen) Close() {
	s.stopVoice()
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case interview.PhaseSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case interview.PhaseInProgress:
		hints := []layout.KeyHint{{Key: "Enter", Description: interview.Affordance(s.session).String()}}
		if s.transcriber.Available() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+V", Description: "Voice"})
		}
		return append(hints,
			layout.KeyHint{Key: "Ctrl+R", Description: "Restart"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	case interview.PhaseCompleted:
		hints := []layout.KeyHint{}
		if interview.Affordance(s.session) == interview.ActionSave {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Save to profile"})
		}
		return append(hints,
			layout.KeyHint{Key: "N", Description: "New interview"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	}
	return nil
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.notice.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)
	case answeredMsg:
		return s.handleAnswered(msg)
	case completedMsg:
		return s.handleCompleted(msg)
	case savedMsg:
		return s.handleSaved(msg)
	case recordedMsg:
		if msg.Err != nil {
			s.logger.Warn("failed to record interview", "err", msg.Err)
			return s, s.notice.Show(components.NoticeError, noticeRecordFailed)
		}
		return s, nil
	case segmentMsg:
		return s.handleSegment(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, s.forward(msg)
}

// forward passes msg to the focused input.
func (s *InterviewScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.session.Phase == interview.PhaseSetup && s.role.Focused():
		s.role, cmd = s.role.Update(msg)
	case s.session.Phase == interview.PhaseSetup && s.area.Focused():
		s.area, cmd = s.area.Update(msg)
	case s.session.Phase == interview.PhaseInProgress:
		s.answer, cmd = s.answer.Update(msg)
	}
	return cmd
}

func (s *InterviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.session.Phase {
	case interview.PhaseSetup:
		switch key {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleSetupFocus()
		case "enter":
			return s, s.start()
		}

	case interview.PhaseInProgress:
		switch key {
		case "enter":
			return s, s.submit()
		case "ctrl+v":
			return s, s.toggleVoice()
		case "ctrl+r":
			return s, s.reset()
		}

	case interview.PhaseCompleted:
		switch key {
		case "s":
			return s, s.save()
		case "n":
			return s, s.reset()
		}
		return s, nil
	}

	return s, s.forward(msg)
}

func (s *InterviewScreen) toggleSetupFocus() tea.Cmd {
	if s.role.Focused() {
		s.role.Blur()
		return s.area.Focus()
	}
	s.area.Blur()
	return s.role.Focus()
}

func (s *InterviewScreen) showError(err error) tea.Cmd {
	var verr interview.ValidationError
	if errors.As(err, &verr) {
		return s.notice.Show(components.NoticeError, verr.Error())
	}
	if errors.Is(err, interview.ErrBusy) {
		return nil
	}
	return s.notice.Show(components.NoticeError, err.Error())
}

func (s *InterviewScreen) start() tea.Cmd {
	req, err := interview.BeginStart(s.session, s.role.Value(), s.area.Value())
	if err != nil {
		return s.showError(err)
	}
	engine := s.engine
	return func() tea.Msg {
		resp, err := engine.Start(context.Background(), req)
		return startedMsg{Req: req, Resp: resp, Err: err}
	}
}

func (s *InterviewScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.failed(msg.Req) {
			return s, s.notice.Show(components.NoticeError, interview.NoticeStartFailed)
		}
		return s, nil
	}
	if err := interview.ApplyStart(s.session, msg.Req, msg.Resp); err != nil {
		s.logger.Debug("dropping start reply", "err", err)
		return s, nil
	}
	s.role.Blur()
	s.area.Blur()
	return s, s.answer.Focus()
}

// failed clears the pending flag for req. It reports false when req belongs
// to a reset session.
func (s *InterviewScreen) failed(req interview.Request) bool {
	if err := interview.Fail(s.session, req); err != nil {
		s.logger.Debug("dropping failed reply", "err", err)
		return false
	}
	return true
}

// submit sends the answer field as a turn, or as the final answer once the
// last question is reached. Voice capture stops first.
func (s *InterviewScreen) submit() tea.Cmd {
	if interview.Affordance(s.session) == interview.ActionNone {
		return nil
	}
	s.stopVoice()
	text := s.answer.Value()
	engine := s.engine

	if s.session.Final {
		req, err := interview.BeginCompletion(s.session, text)
		if err != nil {
			return s.showError(err)
		}
		return func() tea.Msg {
			resp, err := engine.Complete(context.Background(), req)
			return completedMsg{Req: req, Resp: resp, Err: err}
		}
	}

	req, err := interview.BeginTurn(s.session, text)
	if err != nil {
		return s.showError(err)
	}
	return func() tea.Msg {
		resp, err := engine.Submit(context.Background(), req)
		return answeredMsg{Req: req, Resp: resp, Err: err}
	}
}

func (s *InterviewScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.failed(msg.Req) {
			return s, s.notice.Show(components.NoticeError, interview.NoticeSubmitFailed)
		}
		return s, nil
	}
	if err := interview.ApplyTurn(s.session, msg.Req, msg.Resp); err != nil {
		s.logger.Debug("dropping answer reply", "err", err)
		return s, nil
	}
	s.answer.Reset()
	s.buffer.Reset()
	return s, nil
}

func (s *InterviewScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.failed(msg.Req) {
			return s, s.notice.Show(components.NoticeError, interview.NoticeCompleteFailed)
		}
		return s, nil
	}
	if err := interview.ApplyCompletion(s.session, msg.Req, msg.Resp); err != nil {
		s.logger.Debug("dropping completion reply", "err", err)
		return s, nil
	}
	s.answer.Reset()
	s.answer.Blur()
	s.buffer.Reset()
	return s, s.record()
}

// record stores a copy of the completed session as the latest result.
func (s *InterviewScreen) record() tea.Cmd {
	snap := *s.session
	engine, now := s.engine, s.now()
	return func() tea.Msg {
		return recordedMsg{Err: engine.Record(context.Background(), &snap, now)}
	}
}

func (s *InterviewScreen) save() tea.Cmd {
	req, err := interview.BeginSave(s.session)
	if err != nil {
		return s.showError(err)
	}
	engine := s.engine
	return func() tea.Msg {
		return savedMsg{Req: req, Err: engine.Save(context.Background(), req)}
	}
}

func (s *InterviewScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if !s.failed(msg.Req) {
			return s, nil
		}
		if interview.IsRejected(msg.Err) {
			return s, s.notice.Show(components.NoticeError, msg.Err.Error())
		}
		return s, s.notice.Show(components.NoticeError, interview.NoticeSaveFailed)
	}
	if err := interview.ApplySave(s.session, msg.Req); err != nil {
		s.logger.Debug("dropping save reply", "err", err)
		return s, nil
	}
	return s, tea.Batch(
		s.notice.Show(components.NoticeSuccess, interview.NoticeSaved),
		s.record(),
	)
}

// reset abandons the interview and returns to the setup form.
func (s *InterviewScreen) reset() tea.Cmd {
	s.capture++
	s.segments = nil
	err := interview.Reset(s.session, s.transcriber)
	s.resetInputs()
	cmd := s.role.Focus()
	if err != nil {
		s.logger.Warn("failed to stop transcription", "err", err)
		return tea.Batch(cmd, s.notice.Show(components.NoticeError, err.Error()))
	}
	return cmd
}
