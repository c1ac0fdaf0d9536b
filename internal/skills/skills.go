// Package skills maps skill tags used by the Results API to display labels.
package skills

import "strings"

// Tag identifies a competency. Questions and results carry tags, never labels.
type Tag string

const (
	FrontEnd           Tag = "front_end"
	BackEnd            Tag = "back_end"
	Database           Tag = "database"
	DataStructures     Tag = "data_structures"
	ConflictResolution Tag = "conflict_resolution"
	FeedbackReception  Tag = "feedback_reception"
	ProjectManagement  Tag = "project_management"
	Honesty            Tag = "honesty"
	Communication      Tag = "communication"
)

var labels = map[Tag]string{
	FrontEnd:           "Front-End Development",
	BackEnd:            "Back-End Development",
	Database:           "Database Management",
	DataStructures:     "Data Structures & Algorithms",
	ConflictResolution: "Conflict Resolution",
	FeedbackReception:  "Receiving Feedback",
	ProjectManagement:  "Project Management",
	Honesty:            "Honesty & Transparency",
	Communication:      "Communication Skills",
}

// order fixes iteration order for All.
var order = []Tag{
	FrontEnd, BackEnd, Database, DataStructures,
	ConflictResolution, FeedbackReception, ProjectManagement, Honesty, Communication,
}

// All returns every known tag in display order.
func All() []Tag {
	out := make([]Tag, len(order))
	copy(out, order)
	return out
}

// Known reports whether tag has a fixed label.
func Known(tag string) bool {
	_, ok := labels[Tag(tag)]
	return ok
}

// Label returns the display label for tag. Unknown tags are shown with
// underscores replaced by spaces.
func Label(tag string) string {
	if l, ok := labels[Tag(tag)]; ok {
		return l
	}
	return strings.ReplaceAll(tag, "_", " ")
}

// Labels maps a slice of tags to labels, preserving order.
func Labels(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = Label(t)
	}
	return out
}
