package resultsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Question is one quiz item as served by /api/quiz.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Skill         string   `json:"skill"`
}

// QuizResults is the body of submit_quiz_results and update_user_skills.
// UserID is omitted entirely when unknown.
type QuizResults struct {
	Category          string   `json:"category"`
	ProficientSkills  []string `json:"proficientSkills"`
	ImprovementSkills []string `json:"improvementSkills"`
	Score             int      `json:"score"`
	CompletedAt       string   `json:"completedAt"`
	UserID            *int     `json:"user_id,omitempty"`
}

// Ack is the generic {success, message, error} reply.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// InterviewID is the server-assigned interview token. The server may send
// a number or a string; the raw JSON form is kept and sent back unchanged.
type InterviewID string

// StringID returns an InterviewID that encodes as a JSON string.
func StringID(s string) InterviewID {
	b, _ := json.Marshal(s)
	return InterviewID(b)
}

// NumericID returns an InterviewID that encodes as a JSON number.
func NumericID(n int) InterviewID {
	return InterviewID(strconv.Itoa(n))
}

// UnmarshalJSON accepts a JSON string or number.
func (id *InterviewID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("interview_id must be a string or number: %w", err)
		}
	}
	*id = InterviewID(b)
	return nil
}

// MarshalJSON writes the id back in the form it was received.
func (id InterviewID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// String returns the id without JSON quoting.
func (id InterviewID) String() string {
	if strings.HasPrefix(string(id), `"`) {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// IsZero reports whether no id has been assigned.
func (id InterviewID) IsZero() bool { return id == "" }

// StartInterviewRequest is the body of /api/start_interview.
type StartInterviewRequest struct {
	JobRole   string `json:"job_role"`
	SkillArea string `json:"skill_area"`
}

// StartInterviewResponse carries the new interview's id and opening.
type StartInterviewResponse struct {
	InterviewID   InterviewID `json:"interview_id"`
	Greeting      string      `json:"greeting"`
	FirstQuestion string      `json:"first_question"`
}

// AnswerRequest is the body of /api/submit_interview_answer.
type AnswerRequest struct {
	InterviewID InterviewID `json:"interview_id"`
	Question    string      `json:"question"`
	Answer      string      `json:"answer"`
	IsFinal     bool        `json:"is_final,omitempty"`
}

// AnswerResponse is the next question or the final-question signal.
type AnswerResponse struct {
	NextQuestion string `json:"next_question"`
	IsFinal      bool   `json:"is_final"`
}

type interviewRef struct {
	InterviewID InterviewID `json:"interview_id"`
}

// Analysis holds the server's scoring of a completed interview.
type Analysis struct {
	TechnicalScore     float64  `json:"technical_score"`
	CommunicationScore float64  `json:"communication_score"`
	Strengths          []string `json:"strengths"`
}

// Feedback holds the narrative part of the completion reply.
type Feedback struct {
	AreasForImprovement []string `json:"areas_for_improvement"`
	NextSteps           []string `json:"next_steps"`
	OverallFeedback     string   `json:"overall_feedback"`
}

// CompleteResponse is the reply of /api/complete_interview.
type CompleteResponse struct {
	Analysis Analysis `json:"analysis"`
	Feedback Feedback `json:"feedback"`
}

// SkillConnections is one entry of NetworkStats.TopSkills.
type SkillConnections struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

// NetworkStats is the reply of /api/network_stats.
type NetworkStats struct {
	Success    bool               `json:"success"`
	UserCount  int                `json:"user_count"`
	SkillCount int                `json:"skill_count"`
	JobCount   int                `json:"job_count"`
	TopSkills  []SkillConnections `json:"top_skills"`
	Error      string             `json:"error,omitempty"`
}

// RefreshResult is the reply of /api/refresh_network.
type RefreshResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path"`
	Error    string `json:"error,omitempty"`
}

// Recommendation is one suggested skill.
type Recommendation struct {
	Skill         string `json:"skill"`
	PeerFrequency int    `json:"peer_frequency"`
	JobDemand     int    `json:"job_demand"`
}

type recommendationsEnvelope struct {
	Success         bool             `json:"success"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}
