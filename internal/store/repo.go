package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// UserSkillsKey is the single key under which the latest result is kept.
const UserSkillsKey = "userSkills"

// Result kinds.
const (
	KindQuiz      = "quiz"
	KindInterview = "interview"
)

// ResultSnapshot is the most recent quiz or interview outcome. The quiz
// fields use the same JSON names as the submission payload.
type ResultSnapshot struct {
	Kind              string             `json:"kind"`
	Category          string             `json:"category"`
	ProficientSkills  []string           `json:"proficientSkills"`
	ImprovementSkills []string           `json:"improvementSkills"`
	Score             int                `json:"score"`
	CompletedAt       time.Time          `json:"completedAt"`
	Interview         *InterviewSnapshot `json:"interview,omitempty"`

	// UpdatedAt is set by the repository on read.
	UpdatedAt time.Time `json:"-"`
}

// InterviewSnapshot summarizes a completed interview.
type InterviewSnapshot struct {
	InterviewID         string   `json:"interviewId"`
	JobRole             string   `json:"jobRole"`
	SkillArea           string   `json:"skillArea"`
	Turns               int      `json:"turns"`
	TechnicalScore      float64  `json:"technicalScore"`
	CommunicationScore  float64  `json:"communicationScore"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	NextSteps           []string `json:"nextSteps"`
	OverallFeedback     string   `json:"overallFeedback"`
	SavedToProfile      bool     `json:"savedToProfile"`
}

// ResultRepo keeps the latest result snapshot under UserSkillsKey.
type ResultRepo interface {
	// Put overwrites the stored snapshot.
	Put(ctx context.Context, snap *ResultSnapshot) error

	// Latest returns the stored snapshot, or nil if there is none.
	Latest(ctx context.Context) (*ResultSnapshot, error)

	// Clear removes the stored snapshot.
	Clear(ctx context.Context) error
}

// APIRequestEventData captures one Results API call.
type APIRequestEventData struct {
	RequestID    string
	Method       string
	Endpoint     string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// APIRequestEvent is a stored APIRequestEventData.
type APIRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	APIRequestEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to the request log.
type EventRepo interface {
	AppendAPIRequest(ctx context.Context, data APIRequestEventData) error
	QueryAPIEvents(ctx context.Context, opts QueryOpts) ([]APIRequestEvent, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
}
