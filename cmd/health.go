package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the catalog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runHealth")
			c = logger.WithContext(c)

			if !svc.client.CheckHealth(c) {
				return fmt.Errorf("api is unreachable at %s", svc.client.Config().BaseUrl)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "api is healthy")
			return nil
		},
	}
}
