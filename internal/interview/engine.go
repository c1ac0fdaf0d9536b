package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/store"
)

// API is the subset of the Results API the interview needs.
type API interface {
	StartInterview(ctx context.Context, req resultsapi.StartInterviewRequest) (*resultsapi.StartInterviewResponse, error)
	SubmitInterviewAnswer(ctx context.Context, req resultsapi.AnswerRequest) (*resultsapi.AnswerResponse, error)
	CompleteInterview(ctx context.Context, id resultsapi.InterviewID) (*resultsapi.CompleteResponse, error)
	SaveInterviewResults(ctx context.Context, id resultsapi.InterviewID) (*resultsapi.Ack, error)
}

// Engine executes interview requests against the API. It holds no session
// state; callers apply the results to their Session.
type Engine struct {
	api     API
	results store.ResultRepo
	logger  *slog.Logger
}

// NewEngine creates an Engine. results may be nil to skip local storage.
func NewEngine(api API, results store.ResultRepo, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{api: api, results: results, logger: logger}
}

// Start opens an interview on the server.
func (e *Engine) Start(ctx context.Context, req StartRequest) (*resultsapi.StartInterviewResponse, error) {
	resp, err := e.api.StartInterview(ctx, resultsapi.StartInterviewRequest{
		JobRole:   req.JobRole,
		SkillArea: req.SkillArea,
	})
	if err != nil {
		e.logger.Warn("start interview failed", "role", req.JobRole, "err", err)
		return nil, err
	}
	e.logger.Info("interview started", "interview_id", resp.InterviewID.String())
	return resp, nil
}

// Submit sends a non-final answer.
func (e *Engine) Submit(ctx context.Context, req TurnRequest) (*resultsapi.AnswerResponse, error) {
	resp, err := e.api.SubmitInterviewAnswer(ctx, resultsapi.AnswerRequest{
		InterviewID: req.ID,
		Question:    req.Question,
		Answer:      req.Answer,
	})
	if err != nil {
		e.logger.Warn("submit answer failed", "interview_id", req.ID.String(), "err", err)
		return nil, err
	}
	return resp, nil
}

// Complete sends the final answer with is_final set, then requests the
// analysis. A retry after a failed analysis sends the final answer again.
func (e *Engine) Complete(ctx context.Context, req CompletionRequest) (*resultsapi.CompleteResponse, error) {
	_, err := e.api.SubmitInterviewAnswer(ctx, resultsapi.AnswerRequest{
		InterviewID: req.ID,
		Question:    req.Question,
		Answer:      req.Answer,
		IsFinal:     true,
	})
	if err != nil {
		e.logger.Warn("submit final answer failed", "interview_id", req.ID.String(), "err", err)
		return nil, err
	}
	resp, err := e.api.CompleteInterview(ctx, req.ID)
	if err != nil {
		e.logger.Warn("complete interview failed", "interview_id", req.ID.String(), "err", err)
		return nil, err
	}
	return resp, nil
}

// Save stores the interview on the user's profile. A success=false reply is
// returned as *SaveRejectedError.
func (e *Engine) Save(ctx context.Context, req SaveRequest) error {
	_, err := e.api.SaveInterviewResults(ctx, req.ID)
	if msg, ok := resultsapi.IsRejected(err); ok {
		err = &SaveRejectedError{Message: msg}
	}
	if err != nil {
		e.logger.Warn("save interview failed", "interview_id", req.ID.String(), "err", err)
		return err
	}
	return nil
}

// Snapshot converts a completed session into a stored result.
func Snapshot(s *Session, now time.Time) (*store.ResultSnapshot, error) {
	if s.Phase != PhaseCompleted || s.Analysis == nil || s.Feedback == nil {
		return nil, &PhaseError{Op: "snapshot", Phase: s.Phase}
	}
	return &store.ResultSnapshot{
		Kind:        store.KindInterview,
		Category:    s.SkillArea,
		Score:       int(math.Round(s.Analysis.TechnicalScore)),
		CompletedAt: now,
		Interview: &store.InterviewSnapshot{
			InterviewID:         s.ID.String(),
			JobRole:             s.JobRole,
			SkillArea:           s.SkillArea,
			Turns:               len(s.Transcript),
			TechnicalScore:      s.Analysis.TechnicalScore,
			CommunicationScore:  s.Analysis.CommunicationScore,
			Strengths:           s.Analysis.Strengths,
			AreasForImprovement: s.Feedback.AreasForImprovement,
			NextSteps:           s.Feedback.NextSteps,
			OverallFeedback:     s.Feedback.OverallFeedback,
			SavedToProfile:      s.Saved,
		},
	}, nil
}

// Record keeps the completed interview as the latest local result.
func (e *Engine) Record(ctx context.Context, s *Session, now time.Time) error {
	if e.results == nil {
		return nil
	}
	snap, err := Snapshot(s, now)
	if err != nil {
		return err
	}
	if err := e.results.Put(ctx, snap); err != nil {
		return fmt.Errorf("store interview result: %w", err)
	}
	return nil
}

// IsRejected reports whether err is a rejected save.
func IsRejected(err error) bool {
	var re *SaveRejectedError
	return errors.As(err, &re)
}
