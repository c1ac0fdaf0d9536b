package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/arjun222-afk/careerprep/internal/store"
)

type eventLog struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (l *eventLog) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	l.events = append(l.events, d)
	return l.err
}

func TestWithEvents(t *testing.T) {
	log := &eventLog{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"points":["a"]}`), Usage: Usage{InputTokens: 10, OutputTokens: 4}},
		MockResponse{Err: &UnavailableError{StatusCode: 502}},
	)
	p := WithEvents(mock, ProviderMock, log, nil)
	ctx := WithPurpose(context.Background(), "resume-tips")

	if _, err := p.Generate(ctx, UserPrompt("sys", "role: Designer", tipSchema, 100)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := p.Generate(ctx, UserPrompt("sys", "again", nil, 100)); err == nil {
		t.Fatal("second Generate succeeded")
	}

	if len(log.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(log.events))
	}
	first, second := log.events[0], log.events[1]
	if !first.Success || first.Purpose != "resume-tips" || first.Provider != "mock" || first.InputTokens != 10 {
		t.Errorf("first event = %+v", first)
	}
	if !strings.Contains(first.RequestBody, "[system]\nsys") || !strings.Contains(first.RequestBody, "[schema: test-tips]") {
		t.Errorf("RequestBody = %q", first.RequestBody)
	}
	if first.ResponseBody != `{"points":["a"]}` {
		t.Errorf("ResponseBody = %q", first.ResponseBody)
	}
	if second.Success || !strings.Contains(second.ErrorMessage, "502") {
		t.Errorf("second event = %+v", second)
	}
}

func TestWithEvents_RecordFailureIgnored(t *testing.T) {
	log := &eventLog{err: errors.New("database is locked")}
	p := WithEvents(NewMockProvider(okReply), ProviderMock, log, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Errorf("Generate = %v, want recording failure ignored", err)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockJSON(map[string]any{"points": []string{"x"}}))
	resp, err := m.Generate(context.Background(), UserPrompt("", "p", tipSchema, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Model != "mock" || resp.StopReason != StopEnd {
		t.Errorf("resp = %+v", resp)
	}

	var unavail *UnavailableError
	if _, err := m.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Errorf("empty queue err = %v", err)
	}

	m.Enqueue(MockResponse{Content: json.RawMessage(`{"tips":1}`)})
	var invalid *InvalidResponseError
	if _, err := m.Generate(context.Background(), UserPrompt("", "p", tipSchema, 0)); !errors.As(err, &invalid) {
		t.Errorf("schema mismatch err = %v", err)
	}

	calls := m.Calls()
	if len(calls) != 3 || calls[0].Messages[0].Content != "p" {
		t.Errorf("Calls = %+v", calls)
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "interview-tips")); got != "interview-tips" {
		t.Errorf("purpose = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"mock needs no key", func(c *Config) { c.Provider = ProviderMock }, ""},
		{"anthropic with key", func(c *Config) { c.Anthropic.APIKey = "k" }, ""},
		{"anthropic without key", func(*Config) {}, "CAREERPREP_ANTHROPIC_API_KEY"},
		{"openrouter without key", func(c *Config) { c.Provider = ProviderOpenRouter }, "CAREERPREP_OPENROUTER_API_KEY"},
		{"unknown provider", func(c *Config) { c.Provider = "bard" }, "unknown"},
		{"zero attempts", func(c *Config) { c.Gemini.APIKey = "k"; c.Provider = ProviderGemini; c.Retry.MaxAttempts = 0 }, "retry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CAREERPREP_LLM_PROVIDER", "openai")
	t.Setenv("CAREERPREP_OPENAI_API_KEY", "sk-test")
	t.Setenv("CAREERPREP_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("CAREERPREP_OPENAI_BASE_URL", "https://proxy.example/v1")
	t.Setenv("CAREERPREP_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OpenAI.BaseURL != "https://proxy.example/v1" || cfg.Timeout.Seconds() != 5 {
		t.Errorf("BaseURL = %q Timeout = %v", cfg.OpenAI.BaseURL, cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("discovered a provider with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Errorf("DiscoverConfig = %+v, %v; want openai first", cfg.Provider, ok)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	cfg.Provider = "nope"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestLookupPrice(t *testing.T) {
	p, ok := LookupPrice("gpt-4o-mini")
	if !ok {
		t.Fatal("gpt-4o-mini has no price")
	}
	if got := p.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if _, ok := LookupPrice("google/gemini-2.0-flash-001"); !ok {
		t.Error("vendor-prefixed id not resolved")
	}
	if _, ok := LookupPrice("mystery-model"); ok {
		t.Error("unknown model has a price")
	}
}
