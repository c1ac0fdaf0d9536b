package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "careerprep",
	Short: "Career skills practice in the terminal",
	Long: "CareerPrep: skill assessments, virtual interviews, network insights and " +
		"preparation tips backed by the career-skills Results API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides CAREERPREP_DB env var)")
	pf.String("api-url", "", "Results API base URL (overrides CAREERPREP_API_URL env var)")
	pf.Int("user-id", 0, "User id sent with quiz results (overrides CAREERPREP_USER_ID env var)")
	pf.String("log-file", "", "Log file path (overrides CAREERPREP_LOG_FILE env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadDotEnv reads .env from the working directory. Variables already set in
// the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CAREERPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUserID returns --user-id, then CAREERPREP_USER_ID, or nil when
// neither is set.
func resolveUserID(cmd *cobra.Command) (*int, error) {
	if cmd.Flags().Changed("user-id") {
		id, _ := cmd.Flags().GetInt("user-id")
		return &id, nil
	}
	v := os.Getenv("CAREERPREP_USER_ID")
	if v == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid CAREERPREP_USER_ID %q: %w", v, err)
	}
	return &id, nil
}
