package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/resultsapi"
	"github.com/arjun222-afk/careerprep/internal/store"
)

// env holds what most commands need: the local store, a logger writing to
// the log file and a Results API client recording into the store.
type env struct {
	store   *store.Store
	logger  *slog.Logger
	client  *resultsapi.Client
	userID  *int
	logFile *os.File
}

func (e *env) Close() {
	e.store.Close()
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// openEnv opens the store and log file and builds the API client.
func openEnv(cmd *cobra.Command) (*env, error) {
	userID, err := resolveUserID(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{store: st, userID: userID}

	e.logger, e.logFile, err = openLogger(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		e.logger = slog.New(slog.DiscardHandler)
	}

	cfg := resultsapi.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.BaseURL = u
	}
	e.client, err = resultsapi.New(cfg,
		resultsapi.WithEventRepo(st.EventRepo()),
		resultsapi.WithLogger(e.logger.With("component", "resultsapi")),
	)
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// openLogger opens the log file named by --log-file, CAREERPREP_LOG_FILE or
// the data directory default. The TUI owns the terminal, so nothing is
// logged to stderr.
func openLogger(cmd *cobra.Command) (*slog.Logger, *os.File, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = os.Getenv("CAREERPREP_LOG_FILE")
	}
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "careerprep.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if os.Getenv("CAREERPREP_DEBUG") != "" {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}
