// Package network is the network insights screen: one tab per
// visualization, network statistics and skill recommendations.
package network

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/network"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
)

// API is the subset of the Results API the screen reads.
type API interface {
	NetworkStats(ctx context.Context) (*resultsapi.NetworkStats, error)
	RefreshNetwork(ctx context.Context, kind string) (*resultsapi.RefreshResult, error)
	SkillRecommendations(ctx context.Context) ([]resultsapi.Recommendation, error)
}

const (
	tabStats           = "Statistics"
	tabRecommendations = "Recommendations"

	noticeRefreshed     = "Network refreshed successfully!"
	noticeRefreshFailed = "Failed to refresh network"
	statsUnavailable    = "Unable to load network statistics."
	recsUnavailable     = "Unable to load skill recommendations"
)

type statsMsg struct {
	Stats *resultsapi.NetworkStats
	Err   error
}

type recommendationsMsg struct {
	Recs []resultsapi.Recommendation
	Err  error
}

type refreshedMsg struct {
	Kind   network.Kind
	Result *resultsapi.RefreshResult
	Err    error
}

// NetworkScreen shows the network insights tabs.
type NetworkScreen struct {
	api     API
	baseURL string
	now     func() time.Time

	tabs   network.Tabs
	notice components.Notice

	urls       map[network.Kind]string
	refreshing map[network.Kind]bool

	stats    *resultsapi.NetworkStats
	statsErr string
	recs     []resultsapi.Recommendation
	recsErr  string
	recsDone bool
}

var _ screen.Screen = (*NetworkScreen)(nil)
var _ screen.KeyHintProvider = (*NetworkScreen)(nil)

// New creates a NetworkScreen. baseURL is used to build visualization links.
func New(api API, baseURL string) *NetworkScreen {
	labels := make([]string, 0, len(network.Kinds)+2)
	for _, k := range network.Kinds {
		labels = append(labels, k.Title())
	}
	labels = append(labels, tabStats, tabRecommendations)

	return &NetworkScreen{
		api:        api,
		baseURL:    baseURL,
		now:        time.Now,
		tabs:       network.NewTabs(labels...),
		urls:       make(map[network.Kind]string),
		refreshing: make(map[network.Kind]bool),
	}
}

func (s *NetworkScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *NetworkScreen) Title() string {
	return "Network Insights"
}

func (s *NetworkScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "←→", Description: "Tabs"}}
	if _, ok := s.activeKind(); ok {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Refresh"})
	}
	return append(hints,
		layout.KeyHint{Key: "L", Description: "Reload data"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// activeKind returns the visualization shown by the active tab, if any.
func (s *NetworkScreen) activeKind() (network.Kind, bool) {
	if s.tabs.Active < len(network.Kinds) {
		return network.Kinds[s.tabs.Active], true
	}
	return "", false
}

// reload fetches statistics and recommendations.
func (s *NetworkScreen) reload() tea.Cmd {
	s.recsDone = false
	api := s.api
	return tea.Batch(
		func() tea.Msg {
			st, err := api.NetworkStats(context.Background())
			return statsMsg{Stats: st, Err: err}
		},
		func() tea.Msg {
			recs, err := api.SkillRecommendations(context.Background())
			return recommendationsMsg{Recs: recs, Err: err}
		},
	)
}

func (s *NetworkScreen) refresh(kind network.Kind) tea.Cmd {
	if s.refreshing[kind] {
		return nil
	}
	s.refreshing[kind] = true
	api := s.api
	return func() tea.Msg {
		res, err := api.RefreshNetwork(context.Background(), string(kind))
		return refreshedMsg{Kind: kind, Result: res, Err: err}
	}
}

func (s *NetworkScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.notice.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case statsMsg:
		s.stats, s.statsErr = msg.Stats, ""
		if msg.Err != nil {
			s.statsErr = statsUnavailable
		}
		return s, nil

	case recommendationsMsg:
		s.recsDone = true
		s.recs, s.recsErr = msg.Recs, ""
		if msg.Err != nil {
			s.recsErr = recsUnavailable
			if text, ok := resultsapi.IsRejected(msg.Err); ok && text != "" {
				s.recsErr = text
			}
		}
		return s, nil

	case refreshedMsg:
		return s, s.handleRefreshed(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "right", "l", "tab":
			s.tabs.Next()
		case "left", "h", "shift+tab":
			s.tabs.Prev()
		case "1", "2", "3", "4", "5":
			s.tabs.Select(int(msg.String()[0] - '1'))
		case "r":
			if kind, ok := s.activeKind(); ok {
				return s, s.refresh(kind)
			}
		case "L":
			return s, s.reload()
		}
	}
	return s, nil
}

func (s *NetworkScreen) handleRefreshed(msg refreshedMsg) tea.Cmd {
	s.refreshing[msg.Kind] = false
	if msg.Err != nil {
		if text, ok := resultsapi.IsRejected(msg.Err); ok {
			return s.notice.Show(components.NoticeError, "Error refreshing network: "+text)
		}
		return s.notice.Show(components.NoticeError, noticeRefreshFailed)
	}
	u, err := network.VisualizationURL(s.baseURL, msg.Result.FilePath, s.now())
	if err != nil {
		return s.notice.Show(components.NoticeError, err.Error())
	}
	s.urls[msg.Kind] = u
	return s.notice.Show(components.NoticeSuccess, noticeRefreshed)
}
