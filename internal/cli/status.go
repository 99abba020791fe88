package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status StatusResult
			if err := client.Get(cmd.Context(), "/api/status", &status); err != nil {
				return err
			}
			var health HealthResult
			if err := client.Get(cmd.Context(), "/api/health", &health); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(status)
			out.Print(health)
			return nil
		},
	}
}
