package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/app"
	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/llm"
	"github.com/arjun222-afk/careerprep/internal/quiz"
	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/screens/home"
	"github.com/arjun222-afk/careerprep/internal/tips"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
	"github.com/arjun222-afk/careerprep/internal/ui/layout"
)

const defaultExportFile = "careerprep-results.xlsx"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	results := e.store.ResultRepo()
	events := e.store.EventRepo()

	deps := home.Deps{
		Quiz:        quiz.NewEngine(e.client, results, e.logger.With("component", "quiz")),
		Interview:   interview.NewEngine(e.client, results, e.logger.With("component", "interview")),
		Transcriber: transcribe.New(transcribe.ConfigFromEnv(), transcribe.WithLogger(e.logger.With("component", "transcribe"))),
		Network:     e.client,
		APIBaseURL:  e.client.BaseURL(),
		Results:     results,
		Events:      events,
		ExportPath:  defaultExportFile,
		UserID:      e.userID,
		Logger:      e.logger,
	}

	provider, err := llm.NewProviderFromEnv(ctx, events, e.logger.With("component", "llm"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Preparation tips will be unavailable.")
		e.logger.Warn("llm provider unavailable", "err", err)
	} else {
		deps.Tips = tips.NewService(provider, tips.DefaultConfig(), e.logger.With("component", "tips"))
	}

	return app.Run(app.Options{Deps: deps, Status: status(ctx, e)})
}

// status probes the API once so the header can show whether it is reachable.
func status(ctx context.Context, e *env) layout.Status {
	st := layout.Status{}
	if e.userID != nil {
		st.User = "user " + strconv.Itoa(*e.userID)
	}
	if u, err := url.Parse(e.client.BaseURL()); err == nil {
		st.APIHost = u.Host
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := e.client.NetworkStats(ctx)
	_, rejected := resultsapi.IsRejected(err)
	st.Online = err == nil || rejected
	return st
}
