// Package export writes the latest result and the request log to an Excel
// workbook.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/skills"
	"github.com/arjun222-afk/careerprep/internal/store"
)

// Sheet names.
const (
	SheetSummary   = "Summary"
	SheetSkills    = "Skills"
	SheetInterview = "Interview"
	SheetRequests  = "Requests"
)

// ErrNoResult is returned when there is nothing to export.
var ErrNoResult = errors.New("no result to export")

// Workbook builds the workbook for snap. events may be empty.
func Workbook(snap *store.ResultSnapshot, events []store.APIRequestEvent) (*excelize.File, error) {
	if snap == nil {
		return nil, ErrNoResult
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetSummary)

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	w := &writer{f: f, header: header}

	w.summary(snap)
	if snap.Kind == store.KindInterview && snap.Interview != nil {
		w.interview(snap.Interview)
	} else {
		w.skills(snap)
	}
	if len(events) > 0 {
		w.requests(events)
	}

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// WriteFile saves the workbook to path.
func WriteFile(path string, snap *store.ResultSnapshot, events []store.APIRequestEvent) error {
	f, err := Workbook(snap, events)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writer keeps the first error so sheet code can stay linear.
type writer struct {
	f      *excelize.File
	header int
	err    error
}

func (w *writer) sheet(name string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("create sheet %s: %w", name, err)
	}
}

func (w *writer) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err == nil {
		err = w.f.SetSheetRow(sheet, cell, &values)
	}
	if err != nil {
		w.err = fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
}

func (w *writer) headerRow(sheet string, n int, values ...any) {
	w.row(sheet, n, values...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, n)
	last, _ := excelize.CoordinatesToCellName(len(values), n)
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		w.err = fmt.Errorf("%s header: %w", sheet, err)
	}
}

func (w *writer) summary(snap *store.ResultSnapshot) {
	w.headerRow(SheetSummary, 1, "Field", "Value")
	rows := [][]any{
		{"Kind", snap.Kind},
		{"Category", snap.Category},
		{"Score", snap.Score},
		{"Completed", formatTime(snap.CompletedAt)},
	}
	if snap.Interview != nil {
		rows = append(rows,
			[]any{"Job Role", snap.Interview.JobRole},
			[]any{"Skill Area", snap.Interview.SkillArea},
			[]any{"Saved to Profile", snap.Interview.SavedToProfile},
		)
	}
	for i, r := range rows {
		w.row(SheetSummary, i+2, r...)
	}
}

func (w *writer) skills(snap *store.ResultSnapshot) {
	w.sheet(SheetSkills)
	w.headerRow(SheetSkills, 1, "Skill", "Tag", "Status")
	n := 2
	for _, tag := range snap.ProficientSkills {
		w.row(SheetSkills, n, skills.Label(tag), tag, "Proficient")
		n++
	}
	for _, tag := range snap.ImprovementSkills {
		w.row(SheetSkills, n, skills.Label(tag), tag, "Needs Improvement")
		n++
	}
}

func (w *writer) interview(iv *store.InterviewSnapshot) {
	w.sheet(SheetInterview)
	w.headerRow(SheetInterview, 1, "Section", "Detail")
	rows := [][]any{
		{"Technical Score", interview.FormatScore(iv.TechnicalScore)},
		{"Communication Score", interview.FormatScore(iv.CommunicationScore)},
		{"Questions Answered", iv.Turns},
	}
	for _, s := range iv.Strengths {
		rows = append(rows, []any{"Strength", s})
	}
	for _, s := range iv.AreasForImprovement {
		rows = append(rows, []any{"Area for Improvement", s})
	}
	for _, s := range iv.NextSteps {
		rows = append(rows, []any{"Next Step", s})
	}
	rows = append(rows, []any{"Overall Feedback", strings.TrimSpace(iv.OverallFeedback)})
	for i, r := range rows {
		w.row(SheetInterview, i+2, r...)
	}
}

func (w *writer) requests(events []store.APIRequestEvent) {
	w.sheet(SheetRequests)
	w.headerRow(SheetRequests, 1, "Time", "Method", "Endpoint", "Status", "Latency (ms)", "Error")
	for i, e := range events {
		w.row(SheetRequests, i+2,
			formatTime(e.Timestamp), e.Method, e.Endpoint, e.StatusCode, e.LatencyMs, e.ErrorMessage)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
