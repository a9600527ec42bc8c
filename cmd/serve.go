package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/api"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/config"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/core"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine with a live status HTTP server attached",
	Long: `Runs exactly like 'run' but also serves /api/progress, /api/run, and a
/ws websocket progress stream while the fabrication is in flight. The
server stays up after the run completes so the final state can still be
inspected; stop it with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cfg)

		app, err := core.NewWithConfig(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		items := planItems(cfg)

		server := api.NewServer(app, int64(len(items)))
		httpServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: server.Router(),
		}

		// Start the server in a goroutine so it doesn't block the run.
		go func() {
			logger.Get().Info().Str("addr", httpServer.Addr).Msg("starting status server")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Get().Fatal().Err(err).Msg("could not start status server")
			}
		}()

		go func() {
			summary, err := executeRun(app, items)
			if err != nil {
				logger.Get().Error().Err(err).Msg("run failed")
				return
			}
			printSummary(summary, len(items))
		}()

		// Wait for an interrupt signal, then drain connections.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Get().Info().Msg("shutting down status server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
