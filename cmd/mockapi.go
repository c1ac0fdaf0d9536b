package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arjun222-afk/careerprep/internal/mockapi"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve a local Results API for development",
	Long: "Serves the quiz sets, a scripted three-question interview and canned " +
		"network data, with Prometheus metrics on /metrics. Stop with Ctrl+C.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mockapi.DefaultConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		cfg.Latency, _ = cmd.Flags().GetDuration("latency")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		return mockapi.New(cfg, logger).Run(ctx)
	},
}

func init() {
	mockAPICmd.Flags().String("addr", "", "Listen address (default "+mockapi.DefaultConfig().Addr+")")
	mockAPICmd.Flags().Duration("latency", 0, "Delay added to every response")
}
