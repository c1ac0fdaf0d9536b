package quiz

import (
	"fmt"
	"math"
	"time"
)

// ProficiencyThreshold is the inclusive correct-answer percentage at which a
// skill counts as proficient.
const ProficiencyThreshold = 70

// SkillTally counts answers for one skill tag.
type SkillTally struct {
	Total   int
	Correct int
}

// Classification splits answered skills into two disjoint buckets.
type Classification struct {
	Proficient       []string
	NeedsImprovement []string
	Tally            map[string]SkillTally
}

// Classify groups answers by skill and applies the proficiency threshold.
// Skills appear in order of first occurrence.
func Classify(answers []AnswerRecord) Classification {
	c := Classification{
		Proficient:       []string{},
		NeedsImprovement: []string{},
		Tally:            make(map[string]SkillTally),
	}
	var order []string
	for _, a := range answers {
		t, seen := c.Tally[a.Skill]
		if !seen {
			order = append(order, a.Skill)
		}
		t.Total++
		if a.Correct {
			t.Correct++
		}
		c.Tally[a.Skill] = t
	}

	for _, skill := range order {
		t := c.Tally[skill]
		if t.Total == 0 {
			continue
		}
		if t.Correct*100 >= t.Total*ProficiencyThreshold {
			c.Proficient = append(c.Proficient, skill)
		} else {
			c.NeedsImprovement = append(c.NeedsImprovement, skill)
		}
	}
	return c
}

// Score returns round(100 * correct / total). A zero total scores 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

// FormatElapsed renders whole seconds as "Xm Ys".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

// Result is the summary of a finished quiz.
type Result struct {
	Category       string
	Correct        int
	Total          int
	Score          int
	Elapsed        time.Duration
	ElapsedText    string
	Classification Classification
	CompletedAt    time.Time
}

// Summarize computes the result of a finished session.
func Summarize(s *Session) (Result, error) {
	if s.Phase != PhaseFinished {
		return Result{}, &PhaseError{Op: "summarize", Phase: s.Phase}
	}
	correct := 0
	for _, a := range s.Answers {
		if a.Correct {
			correct++
		}
	}
	elapsed := s.FinishedAt.Sub(s.StartedAt)
	return Result{
		Category:       s.Category,
		Correct:        correct,
		Total:          len(s.Answers),
		Score:          Score(correct, len(s.Answers)),
		Elapsed:        elapsed,
		ElapsedText:    FormatElapsed(elapsed),
		Classification: Classify(s.Answers),
		CompletedAt:    s.FinishedAt,
	}, nil
}
