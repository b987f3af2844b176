// Package journalservice boots the journal HTTP service.
package journalservice

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pebblelab/pebble-journal/internal/api"
	"github.com/pebblelab/pebble-journal/internal/config"
	"github.com/pebblelab/pebble-journal/internal/journal"
	"github.com/pebblelab/pebble-journal/internal/logger"
	"github.com/pebblelab/pebble-journal/internal/resources"
)

// Run starts the journal service HTTP server and blocks until shutdown
// or error.
func Run() error {
	log := logger.New("journal-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Int("history_size", cfg.HistorySize).
		Bool("debug", cfg.Debug).
		Str("signing_service_url", cfg.SigningServiceURL).
		Msg("Journal service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.ResourceDir, 0o755); err != nil {
		log.Error().Stack().Err(err).Str("dir", cfg.ResourceDir).Msg("Resource directory unavailable")
		return err
	}

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	j := journal.New(cfg.HistorySize, cfg.Debug, log)
	signer := resources.NewSigningClient(cfg.SigningServiceURL, timeout)
	downloader := resources.NewDownloader(signer, timeout, log)

	router := api.NewRouter(api.NewJournalHandler(j, downloader, cfg.ResourceDir))

	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}
