package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rainfolio",
	Short: "Personal portfolio server with a digital-rain background",
	Long: `rainfolio serves a single-page portfolio rendered from content files
in a data directory. Each open page gets a live session that drives the
background animation, the hero typewriter and the scroll-driven navigation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile(), "config file path")
	rootCmd.AddCommand(serveCmd, rainCmd, checkCmd)
}

// defaultConfigFile honors APP_CONFIG_FILE like the deploy scripts expect
func defaultConfigFile() string {
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		return path
	}
	return "config/config.yaml"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
