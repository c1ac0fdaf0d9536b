package mockapi

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjun222-afk/careerprep/internal/network"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

var cannedStats = resultsapi.NetworkStats{
	Success:    true,
	UserCount:  42,
	SkillCount: 18,
	JobCount:   25,
	TopSkills: []resultsapi.SkillConnections{
		{Name: "python", Connections: 31},
		{Name: "sql", Connections: 27},
		{Name: "communication", Connections: 22},
		{Name: "javascript", Connections: 19},
		{Name: "project_management", Connections: 12},
	},
}

var cannedRecommendations = []resultsapi.Recommendation{
	{Skill: "docker", PeerFrequency: 8, JobDemand: 46},
	{Skill: "react", PeerFrequency: 12, JobDemand: 30},
	{Skill: "public speaking", PeerFrequency: 4, JobDemand: 12},
	{Skill: "kubernetes", PeerFrequency: 2, JobDemand: 9},
}

func (s *Server) handleNetworkStats(c *gin.Context) {
	c.JSON(http.StatusOK, cannedStats)
}

// visualizationPath mirrors where the real backend writes its renders,
// relative to /static.
func visualizationPath(k network.Kind) string {
	return "networks/" + strings.ReplaceAll(string(k), "-", "_") + ".html"
}

func (s *Server) handleRefreshNetwork(c *gin.Context) {
	k, err := network.ParseKind(c.DefaultQuery("type", string(network.KindFull)))
	if err != nil {
		c.JSON(http.StatusOK, resultsapi.RefreshResult{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resultsapi.RefreshResult{Success: true, FilePath: visualizationPath(k)})
}

func (s *Server) handleRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": cannedRecommendations})
}

func (s *Server) handleStatic(c *gin.Context) {
	file := strings.TrimPrefix(c.Param("file"), "/")
	for _, k := range network.Kinds {
		if file == visualizationPath(k) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderVisualization(k)))
			return
		}
	}
	c.String(http.StatusNotFound, "not found")
}

func renderVisualization(k network.Kind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!doctype html>\n<html><head><title>%s</title></head><body>\n", html.EscapeString(k.Title()))
	fmt.Fprintf(&b, "<h1>%s</h1>\n<ul>\n", html.EscapeString(k.Title()))
	for _, sk := range cannedStats.TopSkills {
		fmt.Fprintf(&b, "<li>%s: %d connections</li>\n", html.EscapeString(sk.Name), sk.Connections)
	}
	b.WriteString("</ul>\n</body></html>\n")
	return b.String()
}
