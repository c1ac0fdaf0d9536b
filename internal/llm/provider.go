// Package llm generates structured JSON from hosted language models. It
// backs the preparation-tips feature; nothing in the quiz or interview
// flows depends on it.
package llm

import (
	"context"
	"encoding/json"

	"github.com/arjun222-afk/careerprep/internal/schema"
)

// Provider generates a response for a Request.
type Provider interface {
	// Generate sends the request. When req.Schema is set the response
	// Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON output in the provider's native
	// structured mode and validates the result.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON Schema a response must satisfy.
type Schema = schema.Schema

// Response is a provider's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is one of StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt is a Request with a single user message.
func UserPrompt(system, prompt string, s *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    s,
		MaxTokens: maxTokens,
	}
}

// finish validates content against the request schema and builds the
// Response every provider returns.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := req.Schema.Validate(content); err != nil {
		return nil, &InvalidResponseError{Content: content, Err: err}
	}
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &TruncatedError{Content: content}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
