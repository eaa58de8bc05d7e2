package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "LoveOffer realtime relay",
	Long: `The LoveOffer relay pushes chat messages, typing indicators, and read
receipts to connected clients. The main application persists state and
notifies the relay after each commit; delivery is best effort to whoever
is connected right now.`,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
