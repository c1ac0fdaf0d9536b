package interview

import (
	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
)

// startedMsg carries the reply to a start request.
type startedMsg struct {
	Req  interview.StartRequest
	Resp *resultsapi.StartInterviewResponse
	Err  error
}

// answeredMsg carries the reply to a non-final answer.
type answeredMsg struct {
	Req  interview.TurnRequest
	Resp *resultsapi.AnswerResponse
	Err  error
}

// completedMsg carries the analysis of a finished interview.
type completedMsg struct {
	Req  interview.CompletionRequest
	Resp *resultsapi.CompleteResponse
	Err  error
}

// savedMsg carries the reply to a save request.
type savedMsg struct {
	Req interview.SaveRequest
	Err error
}

// recordedMsg reports whether the local snapshot was written.
type recordedMsg struct {
	Err error
}

// segmentMsg is one recognizer segment. Closed is set when the recognizer
// stopped; Capture ties the message to one voice capture.
type segmentMsg struct {
	Capture int
	Segment transcribe.Segment
	Closed  bool
}
