package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gdlandscaping/sitegen/internal/admin"
	"github.com/gdlandscaping/sitegen/internal/logger"
	"github.com/gdlandscaping/sitegen/internal/web"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
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

			var options []web.Option
			if cfg.AdminEnabled() {
				repo, err := admin.NewFirestoreRepository(cmd.Context(),
					cfg.Admin.ProjectID, cfg.Admin.Collection,
					admin.WithCredentialsFile(cfg.Admin.CredentialsFile),
					admin.WithFirestoreLogger(log))
				if err != nil {
					return err
				}
				defer func() { _ = repo.Close() }()
				options = append(options, web.WithInquiryRepository(repo))
			}

			server, err := web.New(cfg, log, options...)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				log.Info("shutdown signal received", logger.String("signal", sig.String()))
			case <-cmd.Context().Done():
				log.Info("context cancelled, shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}
