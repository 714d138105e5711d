package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"avaro.dev/internal/config"
	"avaro.dev/internal/handlers"
	"avaro.dev/internal/live"
	"avaro.dev/internal/logger"
	"avaro.dev/internal/render"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long:  `Serves the page, its live sessions and the JSON API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := logger.Initialize(cfg.Log); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP server until ctx is done, then shuts down within the
// configured grace period.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get("cli")

	renderer, err := render.New()
	if err != nil {
		return err
	}
	hub := live.NewHub(cfg.Catalog, renderer, cfg.Server.Origins)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.SetupRoutes(cfg, renderer, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Int("projects", len(cfg.Catalog.Projects())).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := hub.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("closing live sessions: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
