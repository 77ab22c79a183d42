// Package server implements the server subcommand: configuration, logging,
// redis, pipeline wiring, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	menuApp "rosmarino/internal/application/menu"
	submissionApp "rosmarino/internal/application/submission"
	"rosmarino/internal/infrastructure/attribution"
	"rosmarino/internal/infrastructure/cache"
	"rosmarino/internal/infrastructure/captcha"
	"rosmarino/internal/infrastructure/cms"
	"rosmarino/internal/infrastructure/config"
	"rosmarino/internal/infrastructure/content"
	"rosmarino/internal/infrastructure/email"
	httpRouter "rosmarino/internal/interfaces/http"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Rosmarino site API with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	log := logger.NewLogger()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, caching and rate limiting degraded", "error", err)
		}
		cancel()
	}
	defer redisClient.Close()

	// Content resolution: cached backend fetch, then the embedded dataset.
	cmsClient := cms.NewClient(cfg.CMS, log.Named("cms"))
	cachedCMS := cache.NewCachedProvider(cmsClient, redisClient, cfg.CMS.CacheTTL(), log.Named("menu-cache"))
	staticProvider := content.NewStaticProvider(cfg.Site.DefaultLocale)
	chain := content.NewChain(log.Named("content"), cachedCMS, staticProvider)

	menuService := menuApp.NewService(chain, cfg.Site.Locales, cfg.Site.DefaultLocale, log.Named("menu"))

	verifier := newVerifier(cfg, log)
	sender := newSender(cfg, log)
	submissionService := submissionApp.NewService(verifier, sender, cfg.Email, cfg.Site.Locales, log.Named("submission"))

	attributionStore := newAttributionStore(cfg, redisClient, log)

	router := httpRouter.NewRouter(menuService, submissionService, attributionStore, redisClient, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func newVerifier(cfg *config.Config, log logger.Interface) captcha.Verifier {
	if cfg.Captcha.Mode == sharedConfig.CaptchaModeOff {
		logger.Warn("captcha verification is off, all submissions are trusted")
		return captcha.NoopVerifier{}
	}
	return captcha.NewRecaptchaVerifier(cfg.Captcha, log.Named("captcha"))
}

func newSender(cfg *config.Config, log logger.Interface) email.Sender {
	if !cfg.Email.Configured() {
		logger.Warn("no SMTP transport configured, submissions will be logged only")
		return email.NewLogSender(log.Named("mail"))
	}
	return email.NewSMTPSender(cfg.Email)
}

func newAttributionStore(cfg *config.Config, redisClient *redis.Client, log logger.Interface) attribution.Store {
	if cfg.Attribution.Store == sharedConfig.AttributionStoreRedis {
		return attribution.NewRedisStore(redisClient, cfg.Attribution, log.Named("attribution"))
	}
	return attribution.NewCookieStore(cfg.Attribution, log.Named("attribution"))
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
