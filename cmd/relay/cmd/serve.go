package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dumichanda/LoveOffer-sub001/internal/config"
	"github.com/dumichanda/LoveOffer-sub001/internal/logging"
	"github.com/dumichanda/LoveOffer-sub001/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logging.New(cfg.LogFormat, cfg.LogLevel)

		return server.New(cfg).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
