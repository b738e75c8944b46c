package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpgo/loan-amortizer/internal/api"
	"github.com/rpgo/loan-amortizer/internal/config"
	"github.com/rpgo/loan-amortizer/internal/logging"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schedule and adjustment endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig(configDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := logging.NewLogger(cfg.Logger)
			slog.SetDefault(logger)
			root.logger = logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, api.SetupRouter(ctx, root.generator(), cfg, logger), logger)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing config.yml")
	return cmd
}

func runServer(ctx context.Context, cfg *config.ServerConfig, router http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Starting graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			logger.Error("Forced close failed", "error", closeErr)
		}
		return err
	}
	logger.Info("Server stopped gracefully.")
	return nil
}
