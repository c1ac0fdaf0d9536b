package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/store"
)

// API is the subset of the Results API the quiz needs.
type API interface {
	Quiz(ctx context.Context, category string) ([]resultsapi.Question, error)
	SubmitQuizResults(ctx context.Context, r resultsapi.QuizResults) (*resultsapi.Ack, error)
	UpdateUserSkills(ctx context.Context, r resultsapi.QuizResults) (*resultsapi.Ack, error)
}

// Engine performs the quiz's I/O: loading questions, storing the snapshot
// and submitting results.
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

// LoadResult is the question set chosen for a category.
type LoadResult struct {
	Questions []Question
	Source    Source

	// FetchErr is why the API set was not used, when Source is SourceFallback.
	FetchErr error
}

// LoadQuestions fetches the set for category from the API, falling back to
// the built-in set on any failure. The returned set is never empty.
func (e *Engine) LoadQuestions(ctx context.Context, category string) LoadResult {
	qs, err := e.fetch(ctx, category)
	if err == nil {
		return LoadResult{Questions: qs, Source: SourceAPI}
	}
	e.logger.Warn("using fallback questions", "category", category, "err", err)
	return LoadResult{
		Questions: FallbackQuestions(category),
		Source:    SourceFallback,
		FetchErr:  err,
	}
}

func (e *Engine) fetch(ctx context.Context, category string) ([]Question, error) {
	if e.api == nil {
		return nil, errors.New("no results api configured")
	}
	wire, err := e.api.Quiz(ctx, category)
	if err != nil {
		return nil, err
	}
	qs := make([]Question, len(wire))
	for i, w := range wire {
		qs[i] = Question{
			ID:            w.ID,
			Text:          w.Question,
			Options:       w.Options,
			CorrectAnswer: w.CorrectAnswer,
			Skill:         w.Skill,
		}
	}
	if err := ValidateQuestions(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Outcome reports what happened to each step of completing a quiz. Remote
// failures are reported here rather than returned so the caller can show a
// notice and call Submit again.
type Outcome struct {
	Result     Result
	Submission resultsapi.QuizResults

	Stored   bool
	StoreErr error

	Submitted bool
	SubmitErr error

	SkillsUpdated bool
	UpdateErr     error
}

// BuildSubmission converts a result into the submission payload. userID is
// sent only when known.
func BuildSubmission(r Result, userID *int) resultsapi.QuizResults {
	return resultsapi.QuizResults{
		Category:          r.Category,
		ProficientSkills:  r.Classification.Proficient,
		ImprovementSkills: r.Classification.NeedsImprovement,
		Score:             r.Score,
		CompletedAt:       r.CompletedAt.UTC().Format(time.RFC3339),
		UserID:            userID,
	}
}

// Complete stores the finished session's snapshot locally and then submits
// it. It fails only when the session is not finished.
func (e *Engine) Complete(ctx context.Context, s *Session, userID *int) (Outcome, error) {
	result, err := Summarize(s)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Result: result, Submission: BuildSubmission(result, userID)}

	if e.results != nil {
		snap := &store.ResultSnapshot{
			Kind:              store.KindQuiz,
			Category:          result.Category,
			ProficientSkills:  result.Classification.Proficient,
			ImprovementSkills: result.Classification.NeedsImprovement,
			Score:             result.Score,
			CompletedAt:       result.CompletedAt,
		}
		if err := e.results.Put(ctx, snap); err != nil {
			out.StoreErr = fmt.Errorf("store result: %w", err)
			e.logger.Warn("failed to store quiz result", "err", err)
		} else {
			out.Stored = true
		}
	}

	e.submitInto(ctx, &out)
	return out, nil
}

// Submit retries the remote half of Complete for a previously built payload.
func (e *Engine) Submit(ctx context.Context, sub resultsapi.QuizResults) Outcome {
	out := Outcome{Submission: sub}
	e.submitInto(ctx, &out)
	return out
}

func (e *Engine) submitInto(ctx context.Context, out *Outcome) {
	if e.api == nil {
		out.SubmitErr = errors.New("no results api configured")
		return
	}
	if _, err := e.api.SubmitQuizResults(ctx, out.Submission); err != nil {
		out.SubmitErr = err
		e.logger.Warn("failed to submit quiz results", "err", err)
		return
	}
	out.Submitted = true

	if out.Submission.UserID == nil {
		return
	}
	if _, err := e.api.UpdateUserSkills(ctx, out.Submission); err != nil {
		out.UpdateErr = err
		e.logger.Warn("failed to update user skills", "user_id", *out.Submission.UserID, "err", err)
		return
	}
	out.SkillsUpdated = true
}
