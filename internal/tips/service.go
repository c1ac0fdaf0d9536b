package tips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arjun222-afk/careerprep/internal/llm"
)

// ErrBlankRole is returned before any model call when the job role is empty.
var ErrBlankRole = errors.New("please enter a job role")

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig matches the tip length asked for in the prompt.
func DefaultConfig() Config {
	return Config{MaxTokens: 700, Temperature: 0.7}
}

// Service generates tips and caches them per kind and role for the life of
// the process.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[cacheKey]*Tips
}

type cacheKey struct {
	kind Kind
	role string
}

// NewService creates a tips service.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{provider: provider, cfg: cfg, logger: logger, cache: map[cacheKey]*Tips{}}
}

type tipsOutput struct {
	Sections []struct {
		Title  string   `json:"title"`
		Points []string `json:"points"`
	} `json:"sections"`
}

// Generate returns tips for role. Sections come back in the fixed heading
// order; headings the model invented are dropped.
func (s *Service) Generate(ctx context.Context, kind Kind, role string) (*Tips, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, ErrBlankRole
	}
	key := cacheKey{kind, strings.ToLower(role)}

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	ctx = llm.WithPurpose(ctx, kind.Purpose())
	req := llm.UserPrompt(systemPrompt, buildUserMessage(kind, role), TipsSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("tip generation failed", "kind", kind, "role", role, "err", err)
		return nil, fmt.Errorf("%s tips: %w", kind, err)
	}

	var out tipsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse %s tips: %w", kind, err)
	}

	got := make(map[string][]string, len(out.Sections))
	for _, sec := range out.Sections {
		got[strings.ToLower(strings.TrimSpace(sec.Title))] = sec.Points
	}
	t := &Tips{Kind: kind, JobRole: role, Resources: resourcesFor(kind, role)}
	for _, title := range sectionTitles[kind] {
		if points := got[strings.ToLower(title)]; len(points) > 0 {
			t.Sections = append(t.Sections, Section{Title: title, Points: points})
		}
	}
	if len(t.Sections) == 0 {
		return nil, fmt.Errorf("%s tips: no expected sections in response", kind)
	}

	s.mu.Lock()
	s.cache[key] = t
	s.mu.Unlock()
	return t, nil
}
