package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

func (s *Server) handleQuiz(c *gin.Context) {
	category := c.DefaultQuery("category", quiz.CategoryTechnical)
	if category != quiz.CategoryTechnical && category != quiz.CategorySoft {
		badRequest(c, "unknown category: "+category)
		return
	}
	c.JSON(http.StatusOK, quiz.FallbackQuestions(category))
}

func (s *Server) bindResults(c *gin.Context) (resultsapi.QuizResults, bool) {
	var r resultsapi.QuizResults
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "invalid results payload: "+err.Error())
		return r, false
	}
	if strings.TrimSpace(r.Category) == "" {
		badRequest(c, "category is required")
		return r, false
	}
	return r, true
}

func (s *Server) handleSubmitQuiz(c *gin.Context) {
	r, ok := s.bindResults(c)
	if !ok {
		return
	}
	s.mu.Lock()
	s.quizzes = append(s.quizzes, r)
	s.mu.Unlock()
	s.metrics.submissions.WithLabelValues(r.Category).Inc()

	c.JSON(http.StatusOK, resultsapi.Ack{Success: true, Message: "Quiz results saved"})
}

func (s *Server) handleUpdateSkills(c *gin.Context) {
	r, ok := s.bindResults(c)
	if !ok {
		return
	}
	if r.UserID == nil {
		c.JSON(http.StatusOK, resultsapi.Ack{Success: false, Error: "User not logged in"})
		return
	}
	s.mu.Lock()
	s.profile = &r
	s.mu.Unlock()

	c.JSON(http.StatusOK, resultsapi.Ack{Success: true, Message: "Skills updated"})
}

// Submissions returns the quiz results received so far.
func (s *Server) Submissions() []resultsapi.QuizResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]resultsapi.QuizResults, len(s.quizzes))
	copy(out, s.quizzes)
	return out
}

// Profile returns the last results posted to update_user_skills.
func (s *Server) Profile() (resultsapi.QuizResults, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return resultsapi.QuizResults{}, false
	}
	return *s.profile, true
}
