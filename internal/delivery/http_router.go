package delivery

import (
	"time"

	"adsdash/internal/delivery/middleware"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers       *HTTPHandlers
	logger         *logger.Logger
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, requestTimeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers:       handlers,
		logger:         logger,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Identity())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.requestTimeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID", "X-User-ID", "X-User-Role"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		feed := v1.Group("/feed")
		{
			feed.POST("/refresh", r.handlers.RefreshFeed)
		}

		records := v1.Group("/records")
		{
			records.GET("", r.handlers.GetRecords)
			records.GET("/summary", r.handlers.GetGroupedSummary)
			records.GET("/totals", r.handlers.GetTotals)
			records.GET("/options", r.handlers.GetFilterOptions)
		}

		export := v1.Group("/export")
		{
			export.GET("/summary", r.handlers.ExportSummary)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
