package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Phase is the quiz lifecycle stage.
type Phase int

const (
	PhaseStart            Phase = iota // No category chosen
	PhaseCategorySelected              // Questions are being loaded
	PhaseInProgress                    // Presenting questions
	PhaseFinished                      // All questions answered
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseCategorySelected:
		return "category-selected"
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Source records where a question set came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

var (
	ErrEmptyCategory = errors.New("quiz category is required")
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrUnknownOption = errors.New("selected option is not one of the choices")
)

// PhaseError is returned when an operation is attempted in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s not allowed in phase %s", e.Op, e.Phase)
}

// AnswerRecord is an immutable record of one answered question.
type AnswerRecord struct {
	QuestionID    int    `json:"questionId"`
	Question      string `json:"question"`
	Selected      string `json:"selectedAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"isCorrect"`
	Skill         string `json:"skill"`
}

// Session is the state of one quiz attempt.
type Session struct {
	Phase      Phase
	Category   string
	Source     Source
	Questions  []Question
	Index      int
	Answers    []AnswerRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewSession returns a session in PhaseStart.
func NewSession() *Session {
	return &Session{Phase: PhaseStart}
}

// SelectCategory records the chosen category and moves to PhaseCategorySelected.
func SelectCategory(s *Session, category string) error {
	if s.Phase != PhaseStart {
		return &PhaseError{Op: "select category", Phase: s.Phase}
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	s.Category = category
	s.Phase = PhaseCategorySelected
	return nil
}

// Begin installs the question set and starts the clock.
func Begin(s *Session, questions []Question, source Source, now time.Time) error {
	if s.Phase != PhaseCategorySelected {
		return &PhaseError{Op: "begin", Phase: s.Phase}
	}
	if err := ValidateQuestions(questions); err != nil {
		return err
	}
	s.Questions = slices.Clone(questions)
	s.Source = source
	s.Index = 0
	s.Answers = nil
	s.StartedAt = now
	s.FinishedAt = time.Time{}
	s.Phase = PhaseInProgress
	return nil
}

// Current returns the question awaiting an answer.
func Current(s *Session) (*Question, bool) {
	if s.Phase != PhaseInProgress || s.Index >= len(s.Questions) {
		return nil, false
	}
	return &s.Questions[s.Index], true
}

// Answer records the user's choice for the current question and advances.
// The last answer moves the session to PhaseFinished.
func Answer(s *Session, selected string, now time.Time) (AnswerRecord, error) {
	q, ok := Current(s)
	if !ok {
		return AnswerRecord{}, &PhaseError{Op: "answer", Phase: s.Phase}
	}
	if !q.HasOption(selected) {
		return AnswerRecord{}, ErrUnknownOption
	}

	rec := AnswerRecord{
		QuestionID:    q.ID,
		Question:      q.Text,
		Selected:      selected,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       selected == q.CorrectAnswer,
		Skill:         q.Skill,
	}
	s.Answers = append(s.Answers, rec)
	s.Index++

	if s.Index >= len(s.Questions) {
		s.Phase = PhaseFinished
		s.FinishedAt = now
	}
	return rec, nil
}

// Progress returns the 1-based number of the current question and the total.
func Progress(s *Session) (current, total int) {
	total = len(s.Questions)
	current = s.Index + 1
	if current > total {
		current = total
	}
	return current, total
}

// Reset discards the attempt and returns to PhaseStart.
func Reset(s *Session) {
	*s = Session{Phase: PhaseStart}
}
