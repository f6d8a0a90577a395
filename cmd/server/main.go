package main

import (
	"fmt"
	"os"

	"adsdash/internal/delivery"
	"adsdash/internal/infrastructure"
	"adsdash/internal/usecase"
	"adsdash/pkg/config"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.New()

	feed := infrastructure.NewFeedClient(
		cfg.Feed.URL,
		cfg.Feed.FetchTimeout,
		cfg.Feed.RateLimitPerSecond,
		log,
	)
	session := infrastructure.NewHeaderSessionProvider()

	dashboard := usecase.NewDashboardService(feed, log, m, cfg.Feed.PageSize)

	handlers := delivery.NewHTTPHandlers(dashboard, session, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Server.RequestTimeout)

	log.WithField("port", cfg.Server.Port).Info("Starting ads dashboard server")

	if err := router.SetupRoutes().Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
