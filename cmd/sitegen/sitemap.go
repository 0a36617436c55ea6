package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/router"
	"github.com/gdlandscaping/sitegen/pkg/sitemap"
)

func sitemapCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print the sitemap derived from the content registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			registry, err := content.New()
			if err != nil {
				return err
			}

			xml, err := sitemap.New(router.New(registry), sitemap.WithBaseURL(cfg.Site.BaseURL)).Generate()
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, xml, 0o644); err != nil {
					return fmt.Errorf("sitemap: write %s: %w", output, err)
				}
				return nil
			}
			_, err = cmd.OutOrStdout().Write(xml)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
