package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mushishi06/nhentai-archivist/internal/config"
	"github.com/mushishi06/nhentai-archivist/internal/handlers"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	var corsOrigins string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API generating ComicInfo.xml from gallery JSON",
		Long: `Starts an HTTP API on the given address.

POST a gallery in nhentai API JSON form to /api/comicinfo to receive its
ComicInfo.xml. Generated documents are kept in memory and can be fetched again
from /api/comicinfo/{id}.`,
		Example: `  # Start server on default address :8888
  archivist serve

  # Start server on custom address, allowing a browser client
  archivist serve --addr :3000 --cors-origins https://komga.example.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]func(*config.Config){
				"addr": func(c *config.Config) { c.Addr = addr },
			})
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              cfg.Addr,
				Handler:           handlers.NewRouter(handlers.New(), splitOrigins(corsOrigins)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Archivist API available", "addr", cfg.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
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

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Address to listen on")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma separated list of allowed CORS origins")

	return cmd
}

func splitOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
