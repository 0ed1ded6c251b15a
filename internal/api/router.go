package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-recommender/internal/api/handlers/health"
	"recipe-recommender/internal/api/handlers/recommendation"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/events"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Recommender  recommendation.Service
	Checks       map[string]health.Check
	Queue        func() events.Status
	Deduplicator *middleware.Deduplicator
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(monitoring.GinMiddleware())

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := health.NewHandler(cfg.App.Version, deps.Checks, deps.Queue)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))
	router.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, common.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, common.ErrMethodNotAllowed)
	})

	api := router.Group("/api/v1")
	api.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(
			cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst)))
	}
	if deps.Deduplicator != nil {
		api.Use(deps.Deduplicator.Middleware())
	}
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	h := recommendation.NewHandler(deps.Recommender, cfg.App.Debug)
	{
		api.POST("/recommendations", h.HandleRecommend)
		api.POST("/recipes/:id/personalize", h.HandlePersonalize)
		api.POST("/feedback", h.HandleFeedback)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("deduplication", deps.Deduplicator != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)
	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
