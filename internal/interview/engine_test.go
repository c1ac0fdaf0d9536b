package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/store"
)

type fakeAPI struct {
	answers     []resultsapi.AnswerRequest
	completed   int
	answerErr   error
	completeErr error
	saveAck     resultsapi.Ack
}

func (f *fakeAPI) StartInterview(_ context.Context, req resultsapi.StartInterviewRequest) (*resultsapi.StartInterviewResponse, error) {
	return &resultsapi.StartInterviewResponse{
		InterviewID:   resultsapi.StringID("iv-1"),
		Greeting:      "Hi, I am your " + req.JobRole + " interviewer.",
		FirstQuestion: "First?",
	}, nil
}

func (f *fakeAPI) SubmitInterviewAnswer(_ context.Context, req resultsapi.AnswerRequest) (*resultsapi.AnswerResponse, error) {
	f.answers = append(f.answers, req)
	if f.answerErr != nil {
		return nil, f.answerErr
	}
	return &resultsapi.AnswerResponse{NextQuestion: "Last?", IsFinal: true}, nil
}

func (f *fakeAPI) CompleteInterview(context.Context, resultsapi.InterviewID) (*resultsapi.CompleteResponse, error) {
	f.completed++
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &resultsapi.CompleteResponse{
		Analysis: resultsapi.Analysis{TechnicalScore: 66.6, CommunicationScore: 90, Strengths: []string{"clarity"}},
		Feedback: resultsapi.Feedback{OverallFeedback: "Good."},
	}, nil
}

func (f *fakeAPI) SaveInterviewResults(context.Context, resultsapi.InterviewID) (*resultsapi.Ack, error) {
	if !f.saveAck.Success {
		return &f.saveAck, &resultsapi.RejectedError{Endpoint: "/api/save_interview_results", Message: f.saveAck.Error}
	}
	return &f.saveAck, nil
}

type memResults struct{ snap *store.ResultSnapshot }

func (m *memResults) Put(_ context.Context, s *store.ResultSnapshot) error {
	m.snap = s
	return nil
}
func (m *memResults) Latest(context.Context) (*store.ResultSnapshot, error) { return m.snap, nil }
func (m *memResults) Clear(context.Context) error                           { return nil }

func runToFinal(t *testing.T, e *Engine) *Session {
	t.Helper()
	ctx := context.Background()
	s := NewSession()
	sreq, _ := BeginStart(s, "QA Engineer", "Testing")
	resp, err := e.Start(ctx, sreq)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := ApplyStart(s, sreq, resp); err != nil {
		t.Fatalf("ApplyStart: %v", err)
	}
	treq, _ := BeginTurn(s, "I test things.")
	next, err := e.Submit(ctx, treq)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := ApplyTurn(s, treq, next); err != nil {
		t.Fatalf("ApplyTurn: %v", err)
	}
	return s
}

func TestEngine_FullInterview(t *testing.T) {
	api := &fakeAPI{saveAck: resultsapi.Ack{Success: true}}
	results := &memResults{}
	e := NewEngine(api, results, nil)
	ctx := context.Background()

	s := runToFinal(t, e)
	if !s.Final || s.CurrentQuestion != "Last?" {
		t.Fatalf("Final=%v question=%q", s.Final, s.CurrentQuestion)
	}

	creq, err := BeginCompletion(s, "Done.")
	if err != nil {
		t.Fatalf("BeginCompletion: %v", err)
	}
	resp, err := e.Complete(ctx, creq)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := ApplyCompletion(s, creq, resp); err != nil {
		t.Fatalf("ApplyCompletion: %v", err)
	}

	last := api.answers[len(api.answers)-1]
	if !last.IsFinal || last.Answer != "Done." || last.InterviewID.String() != "iv-1" {
		t.Errorf("final answer request = %+v", last)
	}
	if api.answers[0].IsFinal {
		t.Error("first answer sent with is_final")
	}

	sreq, err := BeginSave(s)
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if err := e.Save(ctx, sreq); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = ApplySave(s, sreq)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := e.Record(ctx, s, now); err != nil {
		t.Fatalf("Record: %v", err)
	}
	snap := results.snap
	if snap == nil || snap.Kind != store.KindInterview || snap.Score != 67 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Interview.Turns != 2 || !snap.Interview.SavedToProfile || snap.Interview.InterviewID != "iv-1" {
		t.Errorf("interview snapshot = %+v", snap.Interview)
	}
}

func TestEngine_CompleteRetryResendsFinalAnswer(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api, nil, nil)
	s := runToFinal(t, e)

	creq, _ := BeginCompletion(s, "Done.")
	api.completeErr = &resultsapi.StatusError{Endpoint: "/api/complete_interview", StatusCode: 502}
	if _, err := e.Complete(context.Background(), creq); err == nil {
		t.Fatal("Complete succeeded")
	}
	_ = Fail(s, creq)
	if s.Phase != PhaseInProgress || !s.Final || len(s.Transcript) != 1 {
		t.Errorf("failure changed state: phase=%v final=%v transcript=%d", s.Phase, s.Final, len(s.Transcript))
	}

	api.completeErr = nil
	creq, _ = BeginCompletion(s, "Done.")
	resp, err := e.Complete(context.Background(), creq)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	_ = ApplyCompletion(s, creq, resp)

	finals := 0
	for _, a := range api.answers {
		if a.IsFinal {
			finals++
		}
	}
	if finals != 2 || api.completed != 2 {
		t.Errorf("final answers=%d completes=%d, want 2 and 2", finals, api.completed)
	}
	if len(s.Transcript) != 2 {
		t.Errorf("transcript = %d turns, want 2", len(s.Transcript))
	}
}

func TestEngine_FinalAnswerFailureSkipsComplete(t *testing.T) {
	api := &fakeAPI{}
	e := NewEngine(api, nil, nil)
	s := runToFinal(t, e)

	api.answerErr = &resultsapi.TransportError{Endpoint: "/api/submit_interview_answer", Err: errors.New("reset")}
	creq, _ := BeginCompletion(s, "Done.")
	if _, err := e.Complete(context.Background(), creq); err == nil {
		t.Fatal("Complete succeeded")
	}
	if api.completed != 0 {
		t.Error("complete_interview called after final answer failed")
	}
}

func TestEngine_SaveRejected(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"with message", "Not logged in", "Not logged in"},
		{"default", "", "Failed to save results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&fakeAPI{saveAck: resultsapi.Ack{Success: false, Error: tt.msg}}, nil, nil)
			err := e.Save(context.Background(), SaveRequest{ID: resultsapi.NumericID(1)})
			if !IsRejected(err) {
				t.Fatalf("err = %v, want SaveRejectedError", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSnapshot_RequiresCompleted(t *testing.T) {
	if _, err := Snapshot(NewSession(), time.Now()); err == nil {
		t.Error("Snapshot of setup session succeeded")
	}
}
