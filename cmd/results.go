package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/export"
	"github.com/arjun222-afk/careerprep/internal/interview"
	"github.com/arjun222-afk/careerprep/internal/skills"
	"github.com/arjun222-afk/careerprep/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show or export the latest result",
}

var resultsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the latest quiz or interview result",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := st.ResultRepo().Latest(cmd.Context())
		if err != nil {
			return fmt.Errorf("load result: %w", err)
		}
		out := cmd.OutOrStdout()
		if snap == nil {
			fmt.Fprintln(out, "No results yet.")
			return nil
		}

		fmt.Fprintf(out, "Kind:       %s\n", snap.Kind)
		fmt.Fprintf(out, "Category:   %s\n", snap.Category)
		fmt.Fprintf(out, "Completed:  %s\n", snap.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		if snap.Kind == store.KindInterview && snap.Interview != nil {
			iv := snap.Interview
			fmt.Fprintf(out, "Role:       %s\n", iv.JobRole)
			fmt.Fprintf(out, "Technical:  %s\n", interview.FormatScore(iv.TechnicalScore))
			fmt.Fprintf(out, "Comm.:      %s\n", interview.FormatScore(iv.CommunicationScore))
			fmt.Fprintf(out, "Saved:      %v\n", iv.SavedToProfile)
			printList(cmd, "Strengths", iv.Strengths)
			printList(cmd, "Areas for improvement", iv.AreasForImprovement)
			return nil
		}
		fmt.Fprintf(out, "Score:      %d%%\n", snap.Score)
		fmt.Fprintf(out, "Proficient: %s\n", joinOrNone(skills.Labels(snap.ProficientSkills)))
		fmt.Fprintf(out, "To improve: %s\n", joinOrNone(skills.Labels(snap.ImprovementSkills)))
		return nil
	},
}

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest result and request log to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("out")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		snap, err := st.ResultRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load result: %w", err)
		}
		events, err := st.EventRepo().QueryAPIEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if err := export.WriteFile(path, snap, events); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored result",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ResultRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Stored result cleared.")
		return nil
	},
}

// openStore opens the database for commands that never reach the API.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	resultsExportCmd.Flags().StringP("out", "o", defaultExportFile, "Spreadsheet to write")
	resultsExportCmd.Flags().IntP("limit", "n", 500, "Number of API requests to include")

	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsExportCmd)
	resultsCmd.AddCommand(resultsClearCmd)
}
