package resultsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const (
	pathQuiz            = "/api/quiz"
	pathSubmitQuiz      = "/api/submit_quiz_results"
	pathUpdateSkills    = "/api/update_user_skills"
	pathStartInterview  = "/api/start_interview"
	pathSubmitAnswer    = "/api/submit_interview_answer"
	pathComplete        = "/api/complete_interview"
	pathSaveInterview   = "/api/save_interview_results"
	pathNetworkStats    = "/api/network_stats"
	pathRefreshNetwork  = "/api/refresh_network"
	pathRecommendations = "/api/skill_recommendations"
)

// Quiz fetches the question set for category.
func (c *Client) Quiz(ctx context.Context, category string) ([]Question, error) {
	var qs []Question
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   pathQuiz,
		query:  url.Values{"category": {category}},
		schema: questionListSchema,
	}, &qs)
	return qs, err
}

// SubmitQuizResults posts a finished quiz.
func (c *Client) SubmitQuizResults(ctx context.Context, r QuizResults) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, call{method: http.MethodPost, path: pathSubmitQuiz, body: r}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// UpdateUserSkills posts the same payload to the user's profile.
func (c *Client) UpdateUserSkills(ctx context.Context, r QuizResults) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, call{method: http.MethodPost, path: pathUpdateSkills, body: r}, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// StartInterview allocates a server-side interview.
func (c *Client) StartInterview(ctx context.Context, req StartInterviewRequest) (*StartInterviewResponse, error) {
	var out StartInterviewResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathStartInterview,
		body:   req,
		schema: startInterviewSchema,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitInterviewAnswer sends one answer and returns the next question.
func (c *Client) SubmitInterviewAnswer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	var out AnswerResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathSubmitAnswer,
		body:   req,
		schema: answerSchema,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteInterview asks the server to analyze the interview.
func (c *Client) CompleteInterview(ctx context.Context, id InterviewID) (*CompleteResponse, error) {
	var out CompleteResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   pathComplete,
		body:   interviewRef{InterviewID: id},
		schema: completeSchema,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveInterviewResults persists the interview to the user's profile.
// A success=false reply is returned as *RejectedError.
func (c *Client) SaveInterviewResults(ctx context.Context, id InterviewID) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, call{method: http.MethodPost, path: pathSaveInterview, body: interviewRef{InterviewID: id}}, &ack); err != nil {
		return nil, err
	}
	if err := rejected(pathSaveInterview, ack.Success, ack.Error); err != nil {
		return &ack, err
	}
	return &ack, nil
}

// NetworkStats returns aggregate counts and the most connected skills.
func (c *Client) NetworkStats(ctx context.Context) (*NetworkStats, error) {
	var out NetworkStats
	err := c.do(ctx, call{method: http.MethodGet, path: pathNetworkStats, schema: networkStatsSchema}, &out)
	if err != nil {
		return nil, err
	}
	if err := rejected(pathNetworkStats, out.Success, out.Error); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshNetwork regenerates one visualization and returns its file path.
func (c *Client) RefreshNetwork(ctx context.Context, kind string) (*RefreshResult, error) {
	var out RefreshResult
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   pathRefreshNetwork,
		query:  url.Values{"type": {kind}},
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := rejected(pathRefreshNetwork, out.Success, out.Error); err != nil {
		return nil, err
	}
	return &out, nil
}

// SkillRecommendations returns skills suggested for the current user.
func (c *Client) SkillRecommendations(ctx context.Context) ([]Recommendation, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{method: http.MethodGet, path: pathRecommendations, schema: recommendationsSchema}, &raw)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Recommendation
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &DecodeError{Endpoint: pathRecommendations, Err: err}
		}
		return list, nil
	}

	var env recommendationsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{Endpoint: pathRecommendations, Err: err}
	}
	if err := rejected(pathRecommendations, env.Success, env.Error); err != nil {
		return nil, err
	}
	return env.Recommendations, nil
}
