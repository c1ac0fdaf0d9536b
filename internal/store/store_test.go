package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpen_FileBackedUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerprep.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestResultRepo_EmptyLatest(t *testing.T) {
	s := openTestStore(t)
	snap, err := s.ResultRepo().Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot, got %+v", snap)
	}
}

func TestResultRepo_PutOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	first := &ResultSnapshot{
		Kind:              KindQuiz,
		Category:          "technical",
		ProficientSkills:  []string{"front_end"},
		ImprovementSkills: []string{"database"},
		Score:             60,
		CompletedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}

	second := &ResultSnapshot{
		Kind:        KindInterview,
		Category:    "Software Engineer",
		Score:       82,
		CompletedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Interview: &InterviewSnapshot{
			InterviewID: "17",
			JobRole:     "Software Engineer",
			Turns:       3,
			Strengths:   []string{"clear structure"},
		},
	}
	if err := repo.Put(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot")
	}
	if got.Kind != KindInterview || got.Score != 82 {
		t.Errorf("latest = %s/%d, want %s/82", got.Kind, got.Score, KindInterview)
	}
	if got.Interview == nil || got.Interview.Turns != 3 {
		t.Errorf("interview snapshot = %+v", got.Interview)
	}
	if !got.CompletedAt.Equal(second.CompletedAt) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, second.CompletedAt)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}

	var rows int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM result_snapshots").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestResultRepo_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, &ResultSnapshot{Kind: KindQuiz, Score: 40}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after clear, got %+v", got)
	}
}

func TestEventRepo_SequenceSpansTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAPIRequest(ctx, APIRequestEventData{
		RequestID: "r1", Method: "GET", Endpoint: "/api/quiz", StatusCode: 200, Success: true,
	}); err != nil {
		t.Fatalf("append api: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "resume-tips", Success: true,
	}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendAPIRequest(ctx, APIRequestEventData{
		RequestID: "r2", Method: "POST", Endpoint: "/api/start_interview", StatusCode: 500,
		ErrorMessage: "boom",
	}); err != nil {
		t.Fatalf("append api: %v", err)
	}

	apiEvents, err := repo.QueryAPIEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query api: %v", err)
	}
	if len(apiEvents) != 2 {
		t.Fatalf("api events = %d, want 2", len(apiEvents))
	}
	// Newest first.
	if apiEvents[0].RequestID != "r2" || apiEvents[0].Success {
		t.Errorf("first api event = %+v", apiEvents[0])
	}
	if apiEvents[0].Sequence != 3 || apiEvents[1].Sequence != 1 {
		t.Errorf("sequences = %d,%d, want 3,1", apiEvents[0].Sequence, apiEvents[1].Sequence)
	}

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if len(llmEvents) != 1 || llmEvents[0].Sequence != 2 {
		t.Fatalf("llm events = %+v", llmEvents)
	}

	got, err := repo.GetLLMEvent(ctx, llmEvents[0].ID)
	if err != nil {
		t.Fatalf("get llm: %v", err)
	}
	if got == nil || got.Purpose != "resume-tips" {
		t.Errorf("GetLLMEvent = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestEventRepo_QueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendAPIRequest(ctx, APIRequestEventData{
			Method: "GET", Endpoint: fmt.Sprintf("/api/e%d", i), Success: true,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"all", QueryOpts{}, 5},
		{"limit", QueryOpts{Limit: 2}, 2},
		{"after", QueryOpts{After: 3}, 2},
		{"before", QueryOpts{Before: 3}, 2},
		{"window", QueryOpts{After: 1, Before: 5}, 3},
		{"future from", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryAPIEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
