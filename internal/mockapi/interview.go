package mockapi

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

type interviewState struct {
	jobRole   string
	skillArea string
	questions []string
	answers   []string
	completed bool
	saved     bool
}

// script is the fixed three-question interview. The last question is
// announced with is_final so the client switches to Complete.
func script(role, area string) []string {
	return []string{
		fmt.Sprintf("Tell me about a project where you used %s. What was your part in it?", area),
		fmt.Sprintf("What was the hardest problem you ran into with %s, and how did you solve it?", area),
		fmt.Sprintf("How would you apply your %s knowledge to a complex problem in a %s role?", area, role),
	}
}

func (s *Server) lookup(c *gin.Context, id resultsapi.InterviewID) (*interviewState, bool) {
	st, ok := s.interviews[id.String()]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Interview not found"})
	}
	return st, ok
}

func (s *Server) handleStartInterview(c *gin.Context) {
	var req resultsapi.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	role, area := strings.TrimSpace(req.JobRole), strings.TrimSpace(req.SkillArea)
	if role == "" || area == "" {
		badRequest(c, "job_role and skill_area are required")
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	st := &interviewState{jobRole: role, skillArea: area, questions: script(role, area)}
	s.interviews[strconv.Itoa(id)] = st
	s.mu.Unlock()
	s.metrics.activeInterviews.Inc()

	c.JSON(http.StatusOK, resultsapi.StartInterviewResponse{
		InterviewID:   resultsapi.NumericID(id),
		Greeting:      fmt.Sprintf("Hello, I'm your %s. Let's talk about your experience with %s.", interview.InterviewerName(role), area),
		FirstQuestion: st.questions[0],
	})
}

func (s *Server) handleSubmitAnswer(c *gin.Context) {
	var req resultsapi.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		badRequest(c, "answer is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lookup(c, req.InterviewID)
	if !ok {
		return
	}
	if st.completed {
		badRequest(c, "interview already completed")
		return
	}
	st.answers = append(st.answers, req.Answer)

	n := len(st.answers)
	if req.IsFinal || n >= len(st.questions) {
		c.JSON(http.StatusOK, resultsapi.AnswerResponse{IsFinal: true})
		return
	}
	c.JSON(http.StatusOK, resultsapi.AnswerResponse{
		NextQuestion: st.questions[n],
		IsFinal:      n == len(st.questions)-1,
	})
}

func (s *Server) handleCompleteInterview(c *gin.Context) {
	var req struct {
		InterviewID resultsapi.InterviewID `json:"interview_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lookup(c, req.InterviewID)
	if !ok {
		return
	}
	if len(st.answers) == 0 {
		badRequest(c, "no answers recorded")
		return
	}
	if !st.completed {
		st.completed = true
		s.metrics.activeInterviews.Dec()
	}
	c.JSON(http.StatusOK, analyze(st))
}

func (s *Server) handleSaveInterview(c *gin.Context) {
	var req struct {
		InterviewID resultsapi.InterviewID `json:"interview_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.lookup(c, req.InterviewID)
	if !ok {
		return
	}
	if !st.completed {
		c.JSON(http.StatusOK, resultsapi.Ack{Success: false, Error: "Interview has not been completed"})
		return
	}
	st.saved = true
	c.JSON(http.StatusOK, resultsapi.Ack{Success: true, Message: "Interview results saved to your profile"})
}

// analyze scores answers by length: longer, more detailed answers score
// higher, capped at 95.
func analyze(st *interviewState) resultsapi.CompleteResponse {
	words := 0
	for _, a := range st.answers {
		words += len(strings.Fields(a))
	}
	avg := float64(words) / float64(len(st.answers))

	technical := math.Min(95, 40+avg*2)
	communication := math.Min(95, 50+avg*1.5)

	var strengths, improve []string
	if technical >= 70 {
		strengths = append(strengths, "Detailed technical explanations of "+st.skillArea)
	} else {
		improve = append(improve, "Give concrete examples from your "+st.skillArea+" work")
	}
	if communication >= 70 {
		strengths = append(strengths, "Clear, structured answers")
	} else {
		improve = append(improve, "Structure answers as situation, action and result")
	}
	if len(strengths) == 0 {
		strengths = []string{"Completed every question"}
	}
	if len(improve) == 0 {
		improve = []string{"Quantify the impact of your work"}
	}

	return resultsapi.CompleteResponse{
		Analysis: resultsapi.Analysis{
			TechnicalScore:     math.Round(technical),
			CommunicationScore: math.Round(communication),
			Strengths:          strengths,
		},
		Feedback: resultsapi.Feedback{
			AreasForImprovement: improve,
			NextSteps: []string{
				"Practise answering aloud with a timer",
				fmt.Sprintf("Review common %s interview questions", st.jobRole),
			},
			OverallFeedback: fmt.Sprintf("You answered %d questions for the %s role.", len(st.answers), st.jobRole),
		},
	}
}
