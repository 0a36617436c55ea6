// Command sitegen builds and serves the GD Landscaping marketing site.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdlandscaping/sitegen/internal/config"
	"github.com/gdlandscaping/sitegen/internal/logger"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "sitegen",
		Short: "GD Landscaping site generator and server",
		Long:  "Renders the town landing pages and blog from the content registry, and serves them with lead intake, the GIS proxy, and the admin API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(buildCommand())
	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(sitemapCommand())
	rootCmd.AddCommand(scaffoldCommand())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(cfg.Debug)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
