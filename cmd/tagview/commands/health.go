package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/tagview/internal/printer"
)

func newHealthCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Query the tag server's health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			health, err := rt.Client.FetchHealth(cmd.Context())
			if err != nil {
				return printer.ErrorWithContext("Health check failed", err.Error(),
					[][2]string{{"Server", rt.Client.BaseURL()}}, nil)
			}

			status := printer.Good(health.Status)
			if !health.Healthy() {
				status = printer.Bad(health.Status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:  %s\n", rt.Client.BaseURL())
			fmt.Fprintf(out, "Status:  %s\n", status)
			fmt.Fprintf(out, "Tags:    %d\n", health.TagsCount)
			if !health.Healthy() {
				return fmt.Errorf("server reports %q", health.Status)
			}
			return nil
		},
	}
}
