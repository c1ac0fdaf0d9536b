package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// Question is a single multiple-choice assessment item. The JSON shape
// matches the /api/quiz payload.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Skill         string   `json:"skill"`
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	return slices.Contains(q.Options, opt)
}

// InvalidQuestionError is returned when a question cannot be presented.
type InvalidQuestionError struct {
	ID     int
	Reason string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("invalid question %d: %s", e.ID, e.Reason)
}

// ValidateQuestion rejects questions that would leave the user without a
// usable choice.
func ValidateQuestion(q Question) error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return &InvalidQuestionError{ID: q.ID, Reason: "empty question text"}
	case len(q.Options) == 0:
		return &InvalidQuestionError{ID: q.ID, Reason: "no options"}
	case !q.HasOption(q.CorrectAnswer):
		return &InvalidQuestionError{ID: q.ID, Reason: fmt.Sprintf("correct answer %q is not an option", q.CorrectAnswer)}
	}
	return nil
}

// ValidateQuestions checks a whole set. An empty set is an error.
func ValidateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	for _, q := range qs {
		if err := ValidateQuestion(q); err != nil {
			return err
		}
	}
	return nil
}
