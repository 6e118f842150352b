package main

import (
	"fmt"
	"math/rand/v2"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"rainfolio.dev/internal/config"
	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/internal/terminal"
)

var (
	rainSeed     uint64
	rainGreeting string
	rainFade     float64
)

var rainCmd = &cobra.Command{
	Use:   "rain",
	Short: "Preview the background animation in the terminal",
	Long: `Runs the same animator the page uses against the terminal, one glyph
per character cell. Press q, Esc or Ctrl-C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		opts := terminal.Options{
			Rain:          cfg.AnimatorOptions(),
			TypeInterval:  cfg.Typewriter.Interval,
			FrameInterval: cfg.Rain.FrameInterval,
			Greeting:      rainGreeting,
		}
		// terminal cells are large; a stronger fade keeps the trails short
		opts.Rain.FadeAlpha = rainFade
		opts.Rain.Seed = pickSeed(rainSeed)
		// terminal glyphs must be single-width
		opts.Rain.Glyphs = nil

		if !cmd.Flags().Changed("greeting") {
			if c, err := content.Load(cfg.Content.Dir); err == nil {
				opts.Greeting = services.NewProfileService(content.NewStore(c)).Greeting()
			}
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return terminal.Run(ctx, screen, opts)
	},
}

// pickSeed keeps an explicit seed and draws a random one for 0
func pickSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

func init() {
	rainCmd.Flags().Uint64Var(&rainSeed, "seed", 0, "animation seed, random when 0")
	rainCmd.Flags().StringVar(&rainGreeting, "greeting", "", "text typed over the rain, defaults to the profile greeting")
	rainCmd.Flags().Float64Var(&rainFade, "fade", 0.12, "per-frame fade of the trails")
}
