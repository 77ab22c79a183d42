// Package http wires the public API: menu content endpoints and the
// contact/newsletter submission pipeline.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	menuApp "rosmarino/internal/application/menu"
	submissionApp "rosmarino/internal/application/submission"
	"rosmarino/internal/infrastructure/attribution"
	"rosmarino/internal/infrastructure/config"
	"rosmarino/internal/interfaces/http/handlers"
	"rosmarino/internal/interfaces/http/middleware"
	"rosmarino/internal/shared/errors"
	"rosmarino/internal/shared/logger"
	"rosmarino/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine            *gin.Engine
	menuHandler       *handlers.MenuHandler
	submissionHandler *handlers.SubmissionHandler
	healthHandler     *handlers.HealthHandler
	attributionStore  attribution.Store
	rateLimiter       *middleware.RateLimiter
	cfg               *config.Config
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(
	menuService *menuApp.Service,
	submissionService *submissionApp.Service,
	attributionStore attribution.Store,
	redisClient *redis.Client,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	engine := gin.New()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	return &Router{
		engine:            engine,
		menuHandler:       handlers.NewMenuHandler(menuService, log),
		submissionHandler: handlers.NewSubmissionHandler(submissionService, attributionStore, log),
		healthHandler:     handlers.NewHealthHandler(redisClient),
		attributionStore:  attributionStore,
		rateLimiter:       rateLimiter,
		cfg:               cfg,
	}
}

// SetupRoutes registers middleware and routes on the engine.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogging())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Attribution(r.attributionStore))

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("Resource not found"))
	})

	r.engine.GET("/healthz", r.healthHandler.Check)

	api := r.engine.Group("/api")
	{
		api.GET("/menu", r.menuHandler.GetMenu)
		api.GET("/menu/categories", r.menuHandler.GetMenuByCategory)

		submissions := api.Group("")
		if r.rateLimiter != nil {
			submissions.Use(r.rateLimiter.Limit())
		}
		submissions.POST("/contact", r.submissionHandler.SubmitContact)
		submissions.POST("/newsletter", r.submissionHandler.SubscribeNewsletter)
	}
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
