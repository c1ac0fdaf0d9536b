package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/llm"
	"github.com/arjun222-afk/careerprep/internal/tips"
)

var tipsCmd = &cobra.Command{
	Use:   "tips <resume|interview>",
	Short: "Generate preparation tips for a job role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := tips.ParseKind(args[0])
		if err != nil {
			return err
		}
		role, _ := cmd.Flags().GetString("role")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo(), e.logger.With("component", "llm"))
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		svc := tips.NewService(provider, tips.DefaultConfig(), e.logger.With("component", "tips"))

		t, err := svc.Generate(ctx, kind, role)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Text())
		return nil
	},
}

func init() {
	tipsCmd.Flags().StringP("role", "r", "", "Job role the tips are for")
	tipsCmd.MarkFlagRequired("role")
}
