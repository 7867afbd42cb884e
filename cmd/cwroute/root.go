package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cwroute",
		Short:         "Clarke-Wright savings route planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newPlanCmd())
	return rootCmd
}
