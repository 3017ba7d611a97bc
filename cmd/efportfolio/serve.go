package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/efportfolio/internal/portfolio/config"
	"github.com/gartstein/efportfolio/internal/portfolio/controller"
	"github.com/gartstein/efportfolio/internal/portfolio/events"
	"github.com/gartstein/efportfolio/internal/portfolio/handlers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only portfolio API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)
		return serve(cmd.Context(), cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	repo, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	snapshots := initCache(ctx, cfg, logger)
	defer snapshots.Close()

	directorySvc := controller.NewDirectoryService(repo, snapshots, logger)

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
		consumer.RegisterHandler(func(ctx context.Context, event events.Event) error {
			logger.Debug("Portfolio changed", zap.String("type", string(event.Type)), zap.Int64("company_id", event.CompanyID))
			return directorySvc.InvalidateSnapshot(ctx)
		})
		consumerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		consumer.Start(consumerCtx)
		defer consumer.Close()
	}

	if cfg.SnapshotRefreshCron != "" {
		refresher, err := controller.NewRefresher(directorySvc, cfg.SnapshotRefreshCron, logger)
		if err != nil {
			return err
		}
		refresher.Start()
		defer refresher.Stop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	server := handlers.NewServer(cfg.HTTPPort, logger)
	if err := server.RegisterHandlers(handlers.NewDirectoryHandler(directorySvc, logger), limiter); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	return waitForShutdown(server, errCh, logger)
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, or the
// server fails, then shuts the server down.
func waitForShutdown(server *handlers.Server, errCh <-chan error, logger *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	server.Stop()
	logger.Info("Server stopped properly")
	return nil
}
