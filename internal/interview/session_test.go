package interview

import (
	"errors"
	"testing"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

func started(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	req, err := BeginStart(s, " Backend Developer ", "Go")
	if err != nil {
		t.Fatalf("BeginStart: %v", err)
	}
	err = ApplyStart(s, req, &resultsapi.StartInterviewResponse{
		InterviewID:   resultsapi.NumericID(5),
		Greeting:      "Welcome.",
		FirstQuestion: "Tell me about yourself.",
	})
	if err != nil {
		t.Fatalf("ApplyStart: %v", err)
	}
	return s
}

func turn(t *testing.T, s *Session, answer, next string, final bool) {
	t.Helper()
	req, err := BeginTurn(s, answer)
	if err != nil {
		t.Fatalf("BeginTurn: %v", err)
	}
	if err := ApplyTurn(s, req, &resultsapi.AnswerResponse{NextQuestion: next, IsFinal: final}); err != nil {
		t.Fatalf("ApplyTurn: %v", err)
	}
}

func TestStart(t *testing.T) {
	s := started(t)
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase = %v, want in-progress", s.Phase)
	}
	if s.JobRole != "Backend Developer" {
		t.Errorf("JobRole = %q", s.JobRole)
	}
	if s.QuestionNumber != 1 || s.CurrentQuestion != "Tell me about yourself." {
		t.Errorf("question %d %q", s.QuestionNumber, s.CurrentQuestion)
	}
	if s.ID.String() != "5" {
		t.Errorf("ID = %q", s.ID)
	}
	if got := Affordance(s); got != ActionSubmit {
		t.Errorf("Affordance = %v, want submit", got)
	}
}

func TestBeginStart_Validation(t *testing.T) {
	tests := []struct{ role, area string }{
		{"", "Go"},
		{"Dev", "  "},
		{"", ""},
	}
	for _, tt := range tests {
		s := NewSession()
		if _, err := BeginStart(s, tt.role, tt.area); !errors.Is(err, ErrBlankField) {
			t.Errorf("BeginStart(%q, %q) = %v, want ErrBlankField", tt.role, tt.area, err)
		}
		if s.Pending {
			t.Error("validation failure left session pending")
		}
	}
}

func TestBeginTurn_BlankAnswer(t *testing.T) {
	s := started(t)
	_, err := BeginTurn(s, "   ")
	if !errors.Is(err, ErrBlankAnswer) {
		t.Fatalf("err = %v, want ErrBlankAnswer", err)
	}
	if err.Error() != "Please provide an answer before continuing." {
		t.Errorf("message = %q", err.Error())
	}
	if s.Pending || len(s.Transcript) != 0 || s.QuestionNumber != 1 {
		t.Error("blank answer changed state")
	}
}

func TestPendingBlocksSecondRequest(t *testing.T) {
	s := started(t)
	req, err := BeginTurn(s, "first")
	if err != nil {
		t.Fatalf("BeginTurn: %v", err)
	}
	if Affordance(s) != ActionNone {
		t.Error("control still enabled while pending")
	}
	if PendingAction(s) != ActionSubmit {
		t.Errorf("PendingAction = %v, want submit", PendingAction(s))
	}
	if _, err := BeginTurn(s, "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("second BeginTurn = %v, want ErrBusy", err)
	}

	if err := Fail(s, req); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if s.Pending || len(s.Transcript) != 0 || s.CurrentQuestion != "Tell me about yourself." {
		t.Error("failure changed state beyond clearing pending")
	}
	if Affordance(s) != ActionSubmit {
		t.Error("control not re-enabled after failure")
	}
}

func TestTurnsThroughCompletion(t *testing.T) {
	s := started(t)
	turn(t, s, "I write Go.", "Why Go?", false)
	if s.QuestionNumber != 2 || len(s.Transcript) != 1 {
		t.Fatalf("after turn 1: number=%d transcript=%d", s.QuestionNumber, len(s.Transcript))
	}

	turn(t, s, "Simplicity.", "Describe a hard bug.", true)
	if !s.Final {
		t.Fatal("Final not set")
	}
	if s.QuestionNumber != 2 {
		t.Errorf("QuestionNumber = %d, want 2 (final does not bump)", s.QuestionNumber)
	}
	if s.CurrentQuestion != "Describe a hard bug." {
		t.Errorf("CurrentQuestion = %q", s.CurrentQuestion)
	}
	if Affordance(s) != ActionComplete {
		t.Errorf("Affordance = %v, want complete", Affordance(s))
	}
	if _, err := BeginTurn(s, "x"); !errors.Is(err, ErrFinalQuestionReached) {
		t.Errorf("BeginTurn on final = %v", err)
	}

	if _, err := BeginCompletion(s, ""); !errors.Is(err, ErrBlankFinalAnswer) {
		t.Errorf("blank completion = %v", err)
	}
	req, err := BeginCompletion(s, "A race in a cache.")
	if err != nil {
		t.Fatalf("BeginCompletion: %v", err)
	}
	err = ApplyCompletion(s, req, &resultsapi.CompleteResponse{
		Analysis: resultsapi.Analysis{TechnicalScore: 80, CommunicationScore: 72.5},
	})
	if err != nil {
		t.Fatalf("ApplyCompletion: %v", err)
	}
	if s.Phase != PhaseCompleted {
		t.Errorf("Phase = %v", s.Phase)
	}
	if s.Feedback.OverallFeedback != DefaultOverallFeedback {
		t.Errorf("OverallFeedback = %q", s.Feedback.OverallFeedback)
	}
	if Affordance(s) != ActionSave {
		t.Errorf("Affordance = %v, want save", Affordance(s))
	}

	want := "Q1: Tell me about yourself.\nA: I write Go.\n" +
		"Q2: Why Go?\nA: Simplicity.\n" +
		"Q2: Describe a hard bug.\nA: A race in a cache."
	if got := TranscriptText(s); got != want {
		t.Errorf("TranscriptText =\n%s\nwant\n%s", got, want)
	}
}

func TestBeginCompletion_NotFinal(t *testing.T) {
	s := started(t)
	if _, err := BeginCompletion(s, "answer"); !errors.Is(err, ErrNotFinalQuestion) {
		t.Errorf("err = %v, want ErrNotFinalQuestion", err)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	s := started(t)
	req, err := BeginTurn(s, "answer")
	if err != nil {
		t.Fatalf("BeginTurn: %v", err)
	}

	stopped := false
	if err := Reset(s, stopFunc(func() error { stopped = true; return nil })); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !stopped {
		t.Error("transcriber not stopped on reset")
	}

	err = ApplyTurn(s, req, &resultsapi.AnswerResponse{NextQuestion: "late"})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("ApplyTurn after reset = %v, want ErrStale", err)
	}
	if s.Phase != PhaseSetup || len(s.Transcript) != 0 || s.CurrentQuestion != "" || !s.ID.IsZero() {
		t.Errorf("stale response mutated session: %+v", s)
	}
	if err := Fail(s, req); !errors.Is(err, ErrStale) {
		t.Errorf("Fail after reset = %v, want ErrStale", err)
	}
	if Affordance(s) != ActionStart {
		t.Errorf("Affordance = %v, want start", Affordance(s))
	}
}

type stopFunc func() error

func (f stopFunc) Stop() error { return f() }

func TestReset_StopError(t *testing.T) {
	s := started(t)
	gen := s.Generation
	err := Reset(s, stopFunc(func() error { return errors.New("device busy") }))
	if err == nil {
		t.Error("stop error not returned")
	}
	if s.Phase != PhaseSetup || s.Generation == gen {
		t.Error("session not reset")
	}
}

func TestSave(t *testing.T) {
	s := NewSession()
	if _, err := BeginSave(s); !errors.Is(err, ErrNothingToSave) {
		t.Errorf("BeginSave on new session = %v, want ErrNothingToSave", err)
	}

	s = started(t)
	var pe *PhaseError
	if _, err := BeginSave(s); !errors.As(err, &pe) {
		t.Errorf("BeginSave in progress = %v, want PhaseError", err)
	}

	turn(t, s, "a", "final?", true)
	creq, _ := BeginCompletion(s, "b")
	_ = ApplyCompletion(s, creq, &resultsapi.CompleteResponse{})

	req, err := BeginSave(s)
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if err := ApplySave(s, req); err != nil {
		t.Fatalf("ApplySave: %v", err)
	}
	if !s.Saved || Affordance(s) != ActionNone {
		t.Errorf("Saved=%v Affordance=%v", s.Saved, Affordance(s))
	}
	if _, err := BeginSave(s); !errors.Is(err, ErrAlreadySaved) {
		t.Errorf("second BeginSave = %v", err)
	}
}

func TestSaveRejectedError(t *testing.T) {
	if got := (&SaveRejectedError{}).Error(); got != "Failed to save results" {
		t.Errorf("default = %q", got)
	}
	if got := (&SaveRejectedError{Message: "login required"}).Error(); got != "login required" {
		t.Errorf("message = %q", got)
	}
}

func TestInterviewerName(t *testing.T) {
	if got := InterviewerName("Data Analyst"); got != "Data Analyst Interviewer" {
		t.Errorf("InterviewerName = %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{80: "80%", 72.5: "72.5%", 0: "0%"}
	for v, want := range tests {
		if got := FormatScore(v); got != want {
			t.Errorf("FormatScore(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestActionLabels(t *testing.T) {
	tests := []struct {
		a        Action
		label    string
		progress string
	}{
		{ActionStart, "Start Interview", "Starting..."},
		{ActionSubmit, "Submit Answer", "Processing..."},
		{ActionComplete, "Complete Interview", "Analyzing interview..."},
		{ActionSave, "Save Results to Profile", "Saving..."},
		{ActionNone, "", ""},
	}
	for _, tt := range tests {
		if tt.a.String() != tt.label || tt.a.Progress() != tt.progress {
			t.Errorf("Action %d = %q/%q", tt.a, tt.a.String(), tt.a.Progress())
		}
	}
}
