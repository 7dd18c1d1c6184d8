package api

import (
	"github.com/bilgisen/fortune-news/internal/cache"
	"github.com/bilgisen/fortune-news/internal/config"
	"github.com/bilgisen/fortune-news/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, c cache.Cache) {
	handlers := NewHandlers(cfg, db, c)

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// API group with versioning
	v1 := app.Group("/api/v1")

	v1.Get("", handlers.Welcome)
	v1.Get("/health", handlers.HealthCheck)
	v1.Get("/docs", handlers.Docs)

	// Third-party ingestion
	v1.Post("/upload", handlers.Upload)

	// Admin endpoints. These rely on the client-side session gate and are
	// deliberately not guarded server-side.
	admin := v1.Group("/admin")
	{
		admin.Get("/news", handlers.AdminListNews)
		admin.Get("/news/:id", handlers.AdminGetNews)
		admin.Put("/news/:id", handlers.AdminUpdateNews)
		admin.Delete("/news/:id", handlers.AdminDeleteNews)
		admin.Get("/stats", handlers.AdminStats)
	}

	// Public endpoints carry CORS headers and answer preflight requests.
	public := v1.Group("/public", middleware.CORS(cfg.CORSAllowedOrigins))
	{
		public.Get("/news", handlers.PublicListNews)
		public.Get("/news/:id", handlers.PublicGetNews)
		public.Get("/categories", handlers.PublicCategories)
		public.Get("/search", handlers.PublicSearch)
	}

	// AI worker feed
	v1.Get("/ai/unprocessed", handlers.AIUnprocessed)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusNotFound, "endpoint not found")
	})
}
