// Package network holds the presentation logic for network insights:
// visualization kinds, recommendation relevance and tab state.
package network

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Kind is a network visualization served by the Results API.
type Kind string

const (
	KindUser     Kind = "user-network"
	KindSkillJob Kind = "skill-job-network"
	KindFull     Kind = "full-network"
)

// Kinds lists every visualization in tab order.
var Kinds = []Kind{KindUser, KindSkillJob, KindFull}

// ParseKind accepts a kind name as sent to /api/refresh_network.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindUser, KindSkillJob, KindFull:
		return k, nil
	}
	return "", fmt.Errorf("unknown network type %q (want user-network, skill-job-network or full-network)", s)
}

// Frame is the identifier of the panel that displays the visualization.
func (k Kind) Frame() string {
	switch k {
	case KindUser:
		return "user-network-frame"
	case KindSkillJob:
		return "skill-job-frame"
	case KindFull:
		return "full-network-frame"
	}
	return ""
}

// Title is the tab label.
func (k Kind) Title() string {
	switch k {
	case KindUser:
		return "User Network"
	case KindSkillJob:
		return "Skill-Job Network"
	case KindFull:
		return "Full Network"
	}
	return string(k)
}

// Relevance weighs peer usage (capped at 10 users) at 40% and job demand
// (capped at 50 jobs) at 60%, as a rounded percentage.
func Relevance(peerFrequency, jobDemand int) int {
	peer := math.Min(float64(peerFrequency)/10, 1)
	job := math.Min(float64(jobDemand)/50, 1)
	return int(math.Round((peer*0.4 + job*0.6) * 100))
}

// Band is a relevance colour class.
type Band string

const (
	BandSuccess Band = "success"
	BandInfo    Band = "info"
	BandPrimary Band = "primary"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

// BandFor maps a relevance score to its band.
func BandFor(relevance int) Band {
	switch {
	case relevance >= 80:
		return BandSuccess
	case relevance >= 60:
		return BandInfo
	case relevance >= 40:
		return BandPrimary
	case relevance >= 20:
		return BandWarning
	default:
		return BandDanger
	}
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// VisualizationURL is where a refreshed visualization can be opened. The
// t parameter defeats caching of the previous render.
func VisualizationURL(baseURL, filePath string, now time.Time) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	u = u.JoinPath("static", strings.TrimLeft(filePath, "/"))
	u.RawQuery = url.Values{"t": {strconv.FormatInt(now.UnixMilli(), 10)}}.Encode()
	return u.String(), nil
}

// EmptyRecommendations is shown when there is nothing to recommend.
const EmptyRecommendations = "No skill recommendations available. Try to complete more skill assessments."

// Tabs tracks the active tab among a fixed number of tabs.
type Tabs struct {
	Labels []string
	Active int
}

// NewTabs creates tab state with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// Next activates the tab to the right, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active + 1) % len(t.Labels)
}

// Prev activates the tab to the left, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
}

// Select activates tab i if it exists.
func (t *Tabs) Select(i int) bool {
	if i < 0 || i >= len(t.Labels) {
		return false
	}
	t.Active = i
	return true
}

// Current is the active tab's label.
func (t Tabs) Current() string {
	if len(t.Labels) == 0 {
		return ""
	}
	return t.Labels[t.Active]
}
