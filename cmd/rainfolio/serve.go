package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rainfolio.dev/internal/app"
	"rainfolio.dev/internal/config"
)

var (
	servePort int
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port = servePort
		}
		if cmd.Flags().Changed("content") {
			cfg.Content.Dir = serveDir
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := app.Run(cmd.Context(), app.WithConfig(cfg)); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port, overrides the config file")
	serveCmd.Flags().StringVar(&serveDir, "content", "data", "content directory, overrides the config file")
}
