package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gdlandscaping/sitegen/internal/logger"
	"github.com/gdlandscaping/sitegen/pkg/orchestrator"
	"github.com/gdlandscaping/sitegen/pkg/sitemap"
)

func buildCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page and the sitemap to a static directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			orch := orchestrator.New(
				orchestrator.WithThemeDefaults(cfg.Site.Theme, cfg.Site.ThemeVariant),
			)

			results, err := orch.GenerateAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("build: render pages: %w", err)
			}

			for _, result := range results {
				target := outputPath(outDir, result.Path)
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return fmt.Errorf("build: create %s: %w", filepath.Dir(target), err)
				}
				if err := os.WriteFile(target, result.Body, 0o644); err != nil {
					return fmt.Errorf("build: write %s: %w", target, err)
				}
				log.Debug("wrote page", logger.String("path", result.Path), logger.String("file", target))
			}

			xml, err := sitemap.New(orch.Router(), sitemap.WithBaseURL(cfg.Site.BaseURL)).Generate()
			if err != nil {
				return fmt.Errorf("build: sitemap: %w", err)
			}
			target := filepath.Join(outDir, "sitemap.xml")
			if err := os.WriteFile(target, xml, 0o644); err != nil {
				return fmt.Errorf("build: write %s: %w", target, err)
			}

			log.Info("static build complete",
				logger.Int("pages", len(results)),
				logger.String("out", outDir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	return cmd
}

// outputPath maps a route to a file: "/" becomes index.html, everything
// else gets its own directory with an index.html so static hosts serve
// clean URLs.
func outputPath(outDir, route string) string {
	if route == "/" {
		return filepath.Join(outDir, "index.html")
	}
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/")), "index.html")
}
