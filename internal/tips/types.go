// Package tips generates resume and interview preparation tips for a job
// role with a language model.
package tips

import (
	"fmt"
	"strings"
)

// Kind selects the tip set.
type Kind string

const (
	KindResume    Kind = "resume"
	KindInterview Kind = "interview"
)

// ParseKind accepts "resume" or "interview".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindResume, KindInterview:
		return k, nil
	}
	return "", fmt.Errorf("unknown tip kind %q (want resume or interview)", s)
}

// Purpose labels the model request in the event log.
func (k Kind) Purpose() string { return string(k) + "-tips" }

// Tips is one generated tip set.
type Tips struct {
	Kind      Kind
	JobRole   string
	Sections  []Section
	Resources []Resource
}

// Title is the heading shown above the sections.
func (t *Tips) Title() string {
	if t.Kind == KindInterview {
		return "Interview Tips for " + t.JobRole
	}
	return "Resume Tips for " + t.JobRole
}

// Section is a headed list of points.
type Section struct {
	Title  string
	Points []string
}

// ResourceKind groups resources.
type ResourceKind string

const (
	ResourceVideo   ResourceKind = "video"
	ResourceArticle ResourceKind = "article"
)

// Resource is a link shown under the tips.
type Resource struct {
	Kind  ResourceKind
	Title string
	URL   string
}

// Text renders tips as plain text for line-mode output.
func (t *Tips) Text() string {
	var b strings.Builder
	b.WriteString(t.Title())
	b.WriteString("\n")
	for _, s := range t.Sections {
		fmt.Fprintf(&b, "\n%s\n", s.Title)
		for _, p := range s.Points {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	if len(t.Resources) > 0 {
		b.WriteString("\nResources\n")
		for _, r := range t.Resources {
			fmt.Fprintf(&b, "  - %s: %s\n", r.Title, r.URL)
		}
	}
	return b.String()
}
