package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rainfolio.dev/internal/config"
	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the config and content and print what the page will show",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c, err := content.Load(cfg.Content.Dir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		return report(cmd.OutOrStdout(), cfg, content.NewStore(c))
	},
}

func report(w io.Writer, cfg *config.Config, store *content.Store) error {
	profiles := services.NewProfileService(store)
	projects := services.NewProjectService(store)

	fmt.Fprintf(w, "config:     %s\n", cfgFile)
	fmt.Fprintf(w, "content:    %s\n", cfg.Content.Dir)
	fmt.Fprintf(w, "listen:     %s\n", cfg.HTTP.Address())
	fmt.Fprintf(w, "sections:   %v\n", cfg.Sections)
	fmt.Fprintf(w, "greeting:   %q\n", profiles.Greeting())
	fmt.Fprintf(w, "experience: %d\n", len(profiles.Experience()))
	fmt.Fprintf(w, "education:  %d\n", len(profiles.Education()))

	for _, category := range models.Categories {
		list, err := projects.Filter(category)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "projects %-8s %d\n", string(category)+":", len(list))
	}
	return nil
}
