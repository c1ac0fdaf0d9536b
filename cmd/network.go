package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/network"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect the skill network",
}

var networkStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show network statistics and the most connected skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.client.NetworkStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("network statistics: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Users:   %d\n", st.UserCount)
		fmt.Fprintf(out, "Skills:  %d\n", st.SkillCount)
		fmt.Fprintf(out, "Jobs:    %d\n", st.JobCount)
		if len(st.TopSkills) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-32s  %s\n", "Top Skill", "Connections")
		fmt.Fprintln(out, strings.Repeat("─", 46))
		for _, s := range st.TopSkills {
			fmt.Fprintf(out, "%-32s  %d\n", truncate(s.Name, 32), s.Connections)
		}
		return nil
	},
}

var networkRefreshCmd = &cobra.Command{
	Use:   "refresh <user-network|skill-job-network|full-network>",
	Short: "Regenerate a network visualization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := network.ParseKind(args[0])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.client.RefreshNetwork(cmd.Context(), string(kind))
		if err != nil {
			return fmt.Errorf("refresh %s: %w", kind, err)
		}
		link, err := network.VisualizationURL(e.client.BaseURL(), res.FilePath, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s refreshed: %s\n", kind.Title(), link)
		return nil
	},
}

var networkRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show recommended skills ranked by relevance",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.client.SkillRecommendations(cmd.Context())
		if err != nil {
			return fmt.Errorf("skill recommendations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, network.EmptyRecommendations)
			return nil
		}
		fmt.Fprintf(out, "%-28s  %6s  %6s  %9s\n", "Skill", "Peers", "Jobs", "Relevance")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for _, r := range recs {
			fmt.Fprintf(out, "%-28s  %6d  %6d  %8d%%\n",
				truncate(network.Capitalize(r.Skill), 28), r.PeerFrequency, r.JobDemand,
				network.Relevance(r.PeerFrequency, r.JobDemand))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	networkCmd.AddCommand(networkStatsCmd)
	networkCmd.AddCommand(networkRefreshCmd)
	networkCmd.AddCommand(networkRecommendCmd)
}
