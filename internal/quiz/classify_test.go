package quiz

import (
	"slices"
	"testing"
	"time"
)

func answers(skill string, correct, total int) []AnswerRecord {
	out := make([]AnswerRecord, total)
	for i := range out {
		out[i] = AnswerRecord{Skill: skill, Correct: i < correct}
	}
	return out
}

func TestClassify_Threshold(t *testing.T) {
	tests := []struct {
		name       string
		correct    int
		total      int
		proficient bool
	}{
		{"7 of 10 is proficient", 7, 10, true},
		{"6 of 10 needs improvement", 6, 10, false},
		{"all correct", 3, 3, true},
		{"2 of 3", 2, 3, false},
		{"none correct", 0, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(answers("database", tt.correct, tt.total))
			gotProficient := slices.Contains(c.Proficient, "database")
			gotWeak := slices.Contains(c.NeedsImprovement, "database")
			if gotProficient != tt.proficient || gotWeak == tt.proficient {
				t.Errorf("proficient=%v weak=%v, want proficient=%v", gotProficient, gotWeak, tt.proficient)
			}
		})
	}
}

func TestClassify_OrderAndDisjoint(t *testing.T) {
	var recs []AnswerRecord
	recs = append(recs, answers("back_end", 0, 1)...)
	recs = append(recs, answers("front_end", 1, 1)...)
	recs = append(recs, answers("database", 1, 1)...)
	recs = append(recs, answers("honesty", 0, 1)...)

	c := Classify(recs)
	if want := []string{"front_end", "database"}; !slices.Equal(c.Proficient, want) {
		t.Errorf("Proficient = %v, want %v", c.Proficient, want)
	}
	if want := []string{"back_end", "honesty"}; !slices.Equal(c.NeedsImprovement, want) {
		t.Errorf("NeedsImprovement = %v, want %v", c.NeedsImprovement, want)
	}
	if got := c.Tally["database"]; got.Total != 1 || got.Correct != 1 {
		t.Errorf("Tally[database] = %+v", got)
	}
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(nil)
	if c.Proficient == nil || c.NeedsImprovement == nil {
		t.Error("empty classification should have non-nil lists")
	}
	if len(c.Proficient)+len(c.NeedsImprovement) != 0 {
		t.Errorf("got %+v, want empty", c)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{4, 5, 80},
		{0, 5, 0},
		{5, 5, 100},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.correct, tt.total); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m 0s"},
		{59*time.Second + 900*time.Millisecond, "0m 59s"},
		{125 * time.Second, "2m 5s"},
		{-time.Second, "0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	qs := FallbackQuestions(CategoryTechnical)
	s := startedSession(t, qs)
	for i, question := range qs {
		sel := question.CorrectAnswer
		if i == 2 {
			for _, o := range question.Options {
				if o != question.CorrectAnswer {
					sel = o
					break
				}
			}
		}
		if _, err := Answer(s, sel, t0.Add(2*time.Minute+5*time.Second)); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
	}

	r, err := Summarize(s)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if r.Correct != 4 || r.Total != 5 || r.Score != 80 {
		t.Errorf("got %d/%d score %d, want 4/5 score 80", r.Correct, r.Total, r.Score)
	}
	if r.ElapsedText != "2m 5s" {
		t.Errorf("ElapsedText = %q, want 2m 5s", r.ElapsedText)
	}
	if !slices.Contains(r.Classification.NeedsImprovement, "back_end") {
		t.Errorf("NeedsImprovement = %v, want back_end", r.Classification.NeedsImprovement)
	}
	if !slices.Contains(r.Classification.Proficient, "database") {
		t.Errorf("Proficient = %v, want database", r.Classification.Proficient)
	}
}

func TestSummarize_NotFinished(t *testing.T) {
	s := startedSession(t, []Question{q(1, "x", "a", "a")})
	if _, err := Summarize(s); err == nil {
		t.Error("Summarize on in-progress session succeeded")
	}
}
