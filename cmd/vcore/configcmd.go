package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			source := a.cfg.Path()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(out, "# source: %s\n", source)
			return a.cfg.WriteYAML(out)
		},
	}
}
