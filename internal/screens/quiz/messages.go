package quiz

import "github.com/arjun222-afk/careerprep/internal/quiz"

// questionsLoadedMsg carries the question set chosen for a category.
type questionsLoadedMsg struct {
	Result quiz.LoadResult
}

// completedMsg is sent when the finished quiz has been stored and submitted.
type completedMsg struct {
	Outcome quiz.Outcome
	Err     error
}

// resubmittedMsg is sent when a retried submission returns.
type resubmittedMsg struct {
	Outcome quiz.Outcome
}
