package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check a running history server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ServerURL == "" {
				return errors.New("--server is required")
			}

			var result response.Health
			if err := NewClient(opts.ServerURL).Get(cmd.Context(), "/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(opts.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ServerURL, "server", opts.ServerURL, "History server URL (env: CONNECTN_SERVER)")
	return cmd
}
