package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0" // Set at build time with -ldflags.

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the relay version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relay v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
