package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/fortune-news/internal/api"
	"github.com/bilgisen/fortune-news/internal/cache"
	"github.com/bilgisen/fortune-news/internal/config"
	"github.com/bilgisen/fortune-news/internal/database"
	"github.com/bilgisen/fortune-news/internal/logger"
	"github.com/bilgisen/fortune-news/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Open the process-wide database handle
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Response cache: Redis when configured, in-memory otherwise
	var responseCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis cache")
		}
		responseCache = redisCache
	} else {
		log.Info().Msg("REDIS_URL not set, using in-memory cache")
		responseCache = cache.NewMemoryCache()
	}
	defer func() {
		if err := responseCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache")
		}
	}()

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Setup API routes
	api.SetupRoutes(app, cfg, db, responseCache)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
