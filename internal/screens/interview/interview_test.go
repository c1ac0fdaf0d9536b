package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
)

type fakeAPI struct {
	answers   []resultsapi.AnswerRequest
	submitErr error
	saveAck   *resultsapi.Ack
}

func (f *fakeAPI) StartInterview(_ context.Context, req resultsapi.StartInterviewRequest) (*resultsapi.StartInterviewResponse, error) {
	return &resultsapi.StartInterviewResponse{
		InterviewID:   resultsapi.NumericID(9),
		Greeting:      "Welcome to your " + req.JobRole + " interview.",
		FirstQuestion: "Tell me about yourself.",
	}, nil
}

func (f *fakeAPI) SubmitInterviewAnswer(_ context.Context, req resultsapi.AnswerRequest) (*resultsapi.AnswerResponse, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.answers = append(f.answers, req)
	if req.IsFinal {
		return &resultsapi.AnswerResponse{IsFinal: true}, nil
	}
	return &resultsapi.AnswerResponse{NextQuestion: "Why this role?", IsFinal: true}, nil
}

func (f *fakeAPI) CompleteInterview(context.Context, resultsapi.InterviewID) (*resultsapi.CompleteResponse, error) {
	return &resultsapi.CompleteResponse{
		Analysis: resultsapi.Analysis{TechnicalScore: 80, CommunicationScore: 72.5, Strengths: []string{"Clear examples"}},
		Feedback: resultsapi.Feedback{NextSteps: []string{"Practise system design"}},
	}, nil
}

func (f *fakeAPI) SaveInterviewResults(context.Context, resultsapi.InterviewID) (*resultsapi.Ack, error) {
	if f.saveAck != nil && !f.saveAck.Success {
		return nil, &resultsapi.RejectedError{Endpoint: "save_interview_results", Message: f.saveAck.Error}
	}
	return &resultsapi.Ack{Success: true}, nil
}

type fakeTranscriber struct {
	ch     chan transcribe.Segment
	active bool
	stops  int
}

func (f *fakeTranscriber) Available() bool { return true }
func (f *fakeTranscriber) Active() bool    { return f.active }

func (f *fakeTranscriber) Start(context.Context) (<-chan transcribe.Segment, error) {
	f.active = true
	f.ch = make(chan transcribe.Segment, 4)
	return f.ch, nil
}

func (f *fakeTranscriber) Stop() error {
	if f.active {
		f.active = false
		f.stops++
		close(f.ch)
	}
	return nil
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func send(t *testing.T, s *InterviewScreen, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(msg)
	return cmd
}

func started(t *testing.T, api *fakeAPI, tr transcribe.Transcriber) *InterviewScreen {
	t.Helper()
	s := New(interview.NewEngine(api, nil, nil), tr, nil)
	s.Init()
	s.role.SetValue("Backend Engineer")
	s.area.SetValue("Databases")

	cmd := send(t, s, enter)
	if cmd == nil {
		t.Fatal("enter on setup returned no command")
	}
	send(t, s, cmd())
	if s.session.Phase != interview.PhaseInProgress {
		t.Fatalf("Phase = %v, want in-progress", s.session.Phase)
	}
	return s
}

func TestInterviewScreen_FullRun(t *testing.T) {
	api := &fakeAPI{}
	s := started(t, api, nil)

	view := s.View(100, 40)
	for _, want := range []string{"Backend Engineer Interviewer", "Question 1", "Tell me about yourself."} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	send(t, s, enter)
	if s.notice.Text != string(interview.ErrBlankAnswer) {
		t.Errorf("notice = %q, want blank-answer message", s.notice.Text)
	}

	s.answer.SetValue("I build APIs in Go.")
	cmd := send(t, s, enter)
	if interview.PendingAction(s.session) != interview.ActionSubmit {
		t.Errorf("PendingAction = %v, want submit", interview.PendingAction(s.session))
	}
	if !strings.Contains(s.View(100, 40), "Processing...") {
		t.Error("View() does not show the progress label while pending")
	}
	send(t, s, cmd())

	if !s.session.Final || s.session.QuestionNumber != 1 {
		t.Errorf("Final = %v QuestionNumber = %d, want true 1", s.session.Final, s.session.QuestionNumber)
	}
	if s.answer.Value() != "" {
		t.Errorf("answer = %q, want cleared", s.answer.Value())
	}
	if interview.Affordance(s.session) != interview.ActionComplete {
		t.Errorf("Affordance = %v, want complete", interview.Affordance(s.session))
	}

	s.answer.SetValue("I like data.")
	cmd = send(t, s, enter)
	record := send(t, s, cmd())
	if s.session.Phase != interview.PhaseCompleted {
		t.Fatalf("Phase = %v, want completed", s.session.Phase)
	}
	if record == nil {
		t.Fatal("completion did not record the result")
	}
	send(t, s, record())

	if len(api.answers) != 2 || !api.answers[1].IsFinal {
		t.Errorf("answers = %+v, want two with the last final", api.answers)
	}
	view = s.View(100, 50)
	for _, want := range []string{"80%", "72.5%", "Clear examples", interview.DefaultOverallFeedback} {
		if !strings.Contains(view, want) {
			t.Errorf("analysis view missing %q", want)
		}
	}

	save := send(t, s, keyPress('s'))
	send(t, s, save())
	if !s.session.Saved {
		t.Error("Saved = false after save")
	}
	if s.notice.Text != interview.NoticeSaved {
		t.Errorf("notice = %q, want %q", s.notice.Text, interview.NoticeSaved)
	}

	send(t, s, keyPress('n'))
	if s.session.Phase != interview.PhaseSetup || len(s.session.Transcript) != 0 {
		t.Errorf("after n: Phase = %v transcript = %d, want setup and empty", s.session.Phase, len(s.session.Transcript))
	}
}

func TestInterviewScreen_SubmitFailureKeepsQuestion(t *testing.T) {
	api := &fakeAPI{submitErr: errors.New("connection reset")}
	s := started(t, api, nil)

	s.answer.SetValue("An answer")
	cmd := send(t, s, enter)
	send(t, s, cmd())

	if s.session.Pending {
		t.Error("Pending = true after failed submit")
	}
	if s.notice.Text != interview.NoticeSubmitFailed {
		t.Errorf("notice = %q, want %q", s.notice.Text, interview.NoticeSubmitFailed)
	}
	if s.answer.Value() != "An answer" {
		t.Errorf("answer = %q, want it kept for retry", s.answer.Value())
	}
	if s.session.CurrentQuestion != "Tell me about yourself." {
		t.Errorf("CurrentQuestion = %q, want unchanged", s.session.CurrentQuestion)
	}
}

func TestInterviewScreen_StaleReplyDropped(t *testing.T) {
	s := started(t, &fakeAPI{}, nil)

	s.answer.SetValue("An answer")
	cmd := send(t, s, enter)
	send(t, s, ctrl('r'))
	send(t, s, cmd())

	if s.session.Phase != interview.PhaseSetup {
		t.Errorf("Phase = %v, want setup", s.session.Phase)
	}
	if len(s.session.Transcript) != 0 {
		t.Errorf("stale reply reached the transcript: %+v", s.session.Transcript)
	}
}

func TestInterviewScreen_SaveRejected(t *testing.T) {
	api := &fakeAPI{saveAck: &resultsapi.Ack{Success: false, Error: "Interview has not been completed"}}
	s := started(t, api, nil)

	s.answer.SetValue("one")
	send(t, s, send(t, s, enter)())
	s.answer.SetValue("two")
	send(t, s, send(t, s, enter)())

	send(t, s, send(t, s, keyPress('s'))())
	if s.session.Saved {
		t.Error("Saved = true after rejected save")
	}
	if s.notice.Text != "Interview has not been completed" {
		t.Errorf("notice = %q, want server message", s.notice.Text)
	}
	if interview.Affordance(s.session) != interview.ActionSave {
		t.Errorf("Affordance = %v, want save re-enabled", interview.Affordance(s.session))
	}
}

func TestInterviewScreen_VoiceInput(t *testing.T) {
	tr := &fakeTranscriber{}
	api := &fakeAPI{}
	s := started(t, api, tr)

	wait := send(t, s, ctrl('v'))
	if wait == nil || !tr.active {
		t.Fatal("ctrl+v did not start capture")
	}

	tr.ch <- transcribe.Segment{Text: "I design"}
	wait = send(t, s, wait())
	if s.answer.Value() != "I design" {
		t.Errorf("answer = %q, want interim text", s.answer.Value())
	}
	if !strings.Contains(s.View(100, 40), "Listening: I design") {
		t.Error("View() missing listening status")
	}

	tr.ch <- transcribe.Segment{Text: "I design schemas.", Final: true}
	send(t, s, wait())
	if s.answer.Value() != "I design schemas." {
		t.Errorf("answer = %q, want final text", s.answer.Value())
	}

	cmd := send(t, s, enter)
	if tr.stops != 1 || tr.active {
		t.Errorf("stops = %d active = %v, want capture stopped before submit", tr.stops, tr.active)
	}
	send(t, s, cmd())
	if len(api.answers) != 1 || api.answers[0].Answer != "I design schemas." {
		t.Errorf("answers = %+v, want the transcribed text", api.answers)
	}
}

func TestInterviewScreen_VoiceUnavailable(t *testing.T) {
	s := started(t, &fakeAPI{}, transcribe.Noop{})
	send(t, s, ctrl('v'))
	if s.notice.Text != transcribe.UnsupportedMessage {
		t.Errorf("notice = %q, want %q", s.notice.Text, transcribe.UnsupportedMessage)
	}
}

func TestInterviewScreen_CloseStopsCapture(t *testing.T) {
	tr := &fakeTranscriber{}
	s := started(t, &fakeAPI{}, tr)
	send(t, s, ctrl('v'))
	s.Close()
	if tr.active || tr.stops != 1 {
		t.Errorf("active = %v stops = %d, want stopped once", tr.active, tr.stops)
	}
}
