package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by -ldflags "-X main.version=..." at release time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "desknotes %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
