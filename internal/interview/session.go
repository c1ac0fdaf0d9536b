// Package interview implements the virtual interview as an explicit state
// machine. Network calls are split into Begin/Apply pairs: Begin validates
// and stamps a request with the session generation, Apply consumes the
// response only if the generation still matches.
package interview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

// Phase is the interview lifecycle stage.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Action is the control currently enabled for the user.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionSubmit
	ActionComplete
	ActionSave
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "Start Interview"
	case ActionSubmit:
		return "Submit Answer"
	case ActionComplete:
		return "Complete Interview"
	case ActionSave:
		return "Save Results to Profile"
	default:
		return ""
	}
}

// Progress label shown on the control while its call is outstanding.
func (a Action) Progress() string {
	switch a {
	case ActionStart:
		return "Starting..."
	case ActionSubmit:
		return "Processing..."
	case ActionComplete:
		return "Analyzing interview..."
	case ActionSave:
		return "Saving..."
	default:
		return ""
	}
}

// Notices shown when a call fails. The session is left as it was.
const (
	NoticeStartFailed    = "There was an error starting the interview. Please try again."
	NoticeSubmitFailed   = "There was an error processing your answer. Please try again."
	NoticeCompleteFailed = "There was an error analyzing your interview. Please try again."
	NoticeSaveFailed     = "There was an error saving your results. Please try again."
	NoticeSaved          = "Interview results saved to your profile!"
)

// DefaultOverallFeedback is used when the server sends none.
const DefaultOverallFeedback = "Thank you for completing the practice interview."

// ValidationError is user-facing text for input rejected before any call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrBlankField       ValidationError = "Please enter a job role and a skill area."
	ErrBlankAnswer      ValidationError = "Please provide an answer before continuing."
	ErrBlankFinalAnswer ValidationError = "Please provide an answer before completing the interview."
	ErrNothingToSave    ValidationError = "No interview data to save."
)

var (
	ErrAlreadySaved         = errors.New("interview results already saved")
	ErrBusy                 = errors.New("a request is already in progress")
	ErrStale                = errors.New("response belongs to a reset interview")
	ErrNotFinalQuestion     = errors.New("the final question has not been reached")
	ErrFinalQuestionReached = errors.New("the final question must be completed, not submitted")
)

// PhaseError is returned when an operation is attempted in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s not allowed in phase %s", e.Op, e.Phase)
}

// SaveRejectedError is a save reply with success=false.
type SaveRejectedError struct {
	Message string
}

func (e *SaveRejectedError) Error() string {
	if e.Message == "" {
		return "Failed to save results"
	}
	return e.Message
}

// Turn is one answered question.
type Turn struct {
	Number   int
	Question string
	Answer   string
}

// Session is the local state of one interview.
type Session struct {
	// ID is assigned by the server and sent back unchanged.
	ID resultsapi.InterviewID

	// Generation changes on every reset. Responses to requests stamped with
	// an older generation are discarded.
	Generation string

	Phase           Phase
	Pending         bool
	JobRole         string
	SkillArea       string
	Greeting        string
	CurrentQuestion string
	QuestionNumber  int
	Final           bool
	Transcript      []Turn

	Analysis *resultsapi.Analysis
	Feedback *resultsapi.Feedback
	Saved    bool
}

// NewSession returns a session in PhaseSetup.
func NewSession() *Session {
	return &Session{Generation: uuid.NewString(), Phase: PhaseSetup}
}

// Request is implemented by every Begin* result.
type Request interface {
	Gen() string
}

// Stamp carries the generation a request was issued under.
type Stamp struct {
	Generation string
}

// Gen returns the generation.
func (s Stamp) Gen() string { return s.Generation }

// StartRequest asks the server to open an interview.
type StartRequest struct {
	Stamp
	JobRole   string
	SkillArea string
}

// TurnRequest submits an answer to a non-final question.
type TurnRequest struct {
	Stamp
	ID       resultsapi.InterviewID
	Question string
	Answer   string
}

// CompletionRequest submits the final answer and asks for the analysis.
type CompletionRequest struct {
	Stamp
	ID       resultsapi.InterviewID
	Question string
	Answer   string
}

// SaveRequest saves a completed interview to the user's profile.
type SaveRequest struct {
	Stamp
	ID resultsapi.InterviewID
}

func (s *Session) stamp() Stamp { return Stamp{Generation: s.Generation} }

func begin(s *Session, op string, phase Phase) error {
	if s.Phase != phase {
		return &PhaseError{Op: op, Phase: s.Phase}
	}
	if s.Pending {
		return ErrBusy
	}
	return nil
}

func current(s *Session, req Request) error {
	if req.Gen() != s.Generation {
		return ErrStale
	}
	return nil
}

// BeginStart validates the setup form.
func BeginStart(s *Session, jobRole, skillArea string) (StartRequest, error) {
	if err := begin(s, "start", PhaseSetup); err != nil {
		return StartRequest{}, err
	}
	jobRole = strings.TrimSpace(jobRole)
	skillArea = strings.TrimSpace(skillArea)
	if jobRole == "" || skillArea == "" {
		return StartRequest{}, ErrBlankField
	}
	s.Pending = true
	return StartRequest{Stamp: s.stamp(), JobRole: jobRole, SkillArea: skillArea}, nil
}

// ApplyStart installs the server's greeting and first question.
func ApplyStart(s *Session, req StartRequest, resp *resultsapi.StartInterviewResponse) error {
	if err := current(s, req); err != nil {
		return err
	}
	s.Pending = false
	s.ID = resp.InterviewID
	s.JobRole = req.JobRole
	s.SkillArea = req.SkillArea
	s.Greeting = resp.Greeting
	s.CurrentQuestion = resp.FirstQuestion
	s.QuestionNumber = 1
	s.Final = false
	s.Transcript = nil
	s.Phase = PhaseInProgress
	return nil
}

// BeginTurn validates an answer to a non-final question.
func BeginTurn(s *Session, answer string) (TurnRequest, error) {
	if err := begin(s, "submit", PhaseInProgress); err != nil {
		return TurnRequest{}, err
	}
	if s.Final {
		return TurnRequest{}, ErrFinalQuestionReached
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return TurnRequest{}, ErrBlankAnswer
	}
	s.Pending = true
	return TurnRequest{Stamp: s.stamp(), ID: s.ID, Question: s.CurrentQuestion, Answer: answer}, nil
}

// ApplyTurn records the answered turn and moves to the next question. When
// the server marks the next question final, the number is not bumped and the
// submit control becomes Complete.
func ApplyTurn(s *Session, req TurnRequest, resp *resultsapi.AnswerResponse) error {
	if err := current(s, req); err != nil {
		return err
	}
	s.Pending = false
	s.Transcript = append(s.Transcript, Turn{
		Number:   s.QuestionNumber,
		Question: req.Question,
		Answer:   req.Answer,
	})
	if resp.NextQuestion != "" {
		s.CurrentQuestion = resp.NextQuestion
	}
	if resp.IsFinal {
		s.Final = true
		return nil
	}
	s.QuestionNumber++
	return nil
}

// BeginCompletion validates the answer to the final question.
func BeginCompletion(s *Session, answer string) (CompletionRequest, error) {
	if err := begin(s, "complete", PhaseInProgress); err != nil {
		return CompletionRequest{}, err
	}
	if !s.Final {
		return CompletionRequest{}, ErrNotFinalQuestion
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return CompletionRequest{}, ErrBlankFinalAnswer
	}
	s.Pending = true
	return CompletionRequest{Stamp: s.stamp(), ID: s.ID, Question: s.CurrentQuestion, Answer: answer}, nil
}

// ApplyCompletion records the final turn and the server's analysis.
func ApplyCompletion(s *Session, req CompletionRequest, resp *resultsapi.CompleteResponse) error {
	if err := current(s, req); err != nil {
		return err
	}
	s.Pending = false
	s.Transcript = append(s.Transcript, Turn{
		Number:   s.QuestionNumber,
		Question: req.Question,
		Answer:   req.Answer,
	})
	analysis := resp.Analysis
	feedback := resp.Feedback
	if strings.TrimSpace(feedback.OverallFeedback) == "" {
		feedback.OverallFeedback = DefaultOverallFeedback
	}
	s.Analysis = &analysis
	s.Feedback = &feedback
	s.Phase = PhaseCompleted
	return nil
}

// BeginSave checks there is a completed interview to save.
func BeginSave(s *Session) (SaveRequest, error) {
	if s.ID.IsZero() {
		return SaveRequest{}, ErrNothingToSave
	}
	if err := begin(s, "save", PhaseCompleted); err != nil {
		return SaveRequest{}, err
	}
	if s.Saved {
		return SaveRequest{}, ErrAlreadySaved
	}
	s.Pending = true
	return SaveRequest{Stamp: s.stamp(), ID: s.ID}, nil
}

// ApplySave marks the interview as saved.
func ApplySave(s *Session, req SaveRequest) error {
	if err := current(s, req); err != nil {
		return err
	}
	s.Pending = false
	s.Saved = true
	return nil
}

// Fail clears the pending flag after a failed call. Nothing else changes.
func Fail(s *Session, req Request) error {
	if err := current(s, req); err != nil {
		return err
	}
	s.Pending = false
	return nil
}

// Stopper stops an active capture, such as a speech transcriber.
type Stopper interface {
	Stop() error
}

// Reset stops transcription and discards everything but a fresh generation.
// The session is reset even if stopping fails; that error is returned.
func Reset(s *Session, st Stopper) error {
	var err error
	if st != nil {
		err = st.Stop()
	}
	*s = Session{Generation: uuid.NewString(), Phase: PhaseSetup}
	return err
}

// Affordance returns the control enabled in the current state. A pending
// call disables everything.
func Affordance(s *Session) Action {
	if s.Pending {
		return ActionNone
	}
	switch s.Phase {
	case PhaseSetup:
		return ActionStart
	case PhaseInProgress:
		if s.Final {
			return ActionComplete
		}
		return ActionSubmit
	case PhaseCompleted:
		if s.Saved {
			return ActionNone
		}
		return ActionSave
	}
	return ActionNone
}

// PendingAction is the control whose call is outstanding, or ActionNone.
func PendingAction(s *Session) Action {
	if !s.Pending {
		return ActionNone
	}
	p := *s
	p.Pending = false
	return Affordance(&p)
}

// TranscriptText renders the transcript as "Q<n>: ..." / "A: ..." lines.
func TranscriptText(s *Session) string {
	var b strings.Builder
	for i, t := range s.Transcript {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Q%d: %s\nA: %s", t.Number, t.Question, t.Answer)
	}
	return b.String()
}

// InterviewerName is the display name of the interviewer for a role.
func InterviewerName(jobRole string) string {
	return strings.TrimSpace(jobRole) + " Interviewer"
}

// FormatScore renders a server score as a percentage.
func FormatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%%", int64(v))
	}
	return fmt.Sprintf("%g%%", v)
}
