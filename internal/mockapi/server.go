// Package mockapi is a local stand-in for the Results API. It serves the
// built-in quiz sets, a scripted interview and canned network data so the
// client can be developed and demonstrated without the real backend.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
)

// Config configures the server.
type Config struct {
	Addr string

	// Latency is added to every API response.
	Latency time.Duration
}

// DefaultConfig listens where resultsapi.DefaultConfig points.
func DefaultConfig() Config {
	return Config{Addr: "127.0.0.1:5000"}
}

// Server holds the mock API's in-memory state.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	engine  *gin.Engine
	metrics *metrics

	mu         sync.Mutex
	nextID     int
	interviews map[string]*interviewState
	quizzes    []resultsapi.QuizResults
	profile    *resultsapi.QuizResults
}

// New builds the server and its routes.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		engine:     gin.New(),
		metrics:    newMetrics(),
		nextID:     1,
		interviews: map[string]*interviewState{},
	}
	s.engine.Use(gin.Recovery(), s.observe())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	s.engine.GET("/static/*file", s.handleStatic)

	api := s.engine.Group("/api")
	if s.cfg.Latency > 0 {
		api.Use(func(c *gin.Context) {
			time.Sleep(s.cfg.Latency)
			c.Next()
		})
	}
	api.GET("/quiz", s.handleQuiz)
	api.POST("/submit_quiz_results", s.handleSubmitQuiz)
	api.POST("/update_user_skills", s.handleUpdateSkills)
	api.POST("/start_interview", s.handleStartInterview)
	api.POST("/submit_interview_answer", s.handleSubmitAnswer)
	api.POST("/complete_interview", s.handleCompleteInterview)
	api.POST("/save_interview_results", s.handleSaveInterview)
	api.GET("/network_stats", s.handleNetworkStats)
	api.GET("/refresh_network", s.handleRefreshNetwork)
	api.GET("/skill_recommendations", s.handleRecommendations)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock results API listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock api shutdown: %w", err)
	}
	return nil
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
