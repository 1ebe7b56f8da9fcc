package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcm-tools/figuregen/internal/handlers"
	"github.com/mcm-tools/figuregen/internal/images"
	"github.com/mcm-tools/figuregen/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the figure generator interface",
		Long: `Starts the figure generator web interface on the specified port.

The web interface lists the preset figure prompts by category, accepts
custom descriptions, and keeps a gallery of generated figures per browser
session with a download action for each one.`,
		Example: `  # Start server on default port 8888
  figuregen serve

  # Start server on custom port using OpenAI
  figuregen serve --port 3000 --provider openai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Port
			}

			generator, err := newGenerator(cfg)
			if err != nil {
				return err
			}
			model := cfg.Model()

			handler := handlers.New(func() *session.Controller {
				return session.New(generator, model)
			}, images.NewFetcher(cfg.FetchTimeout), staticDir)

			go handler.PruneSessions(cmd.Context(), cfg.SessionSweepInterval, cfg.SessionTTL)

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Figure generator available", "addr", addr, "url", "http://localhost"+addr, "provider", cfg.Provider, "model", model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to PORT or 8888)")
	cmd.Flags().StringVar(&staticDir, "static", "static", "Directory holding the web interface")

	return cmd
}
