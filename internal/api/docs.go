package api

import "github.com/gofiber/fiber/v2"

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Docs handles GET /api/v1/docs with a static description of the API.
func (h *Handlers) Docs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":       "Fortune News API documentation",
		"version":     "2.1.0",
		"description": "News management API with third-party upload and an admin backend",
		"endpoints": []endpointDoc{
			{"POST", "/api/v1/upload", "upload a news record (third-party ingestion)"},
			{"GET", "/api/v1/admin/news", "list news (admin)"},
			{"GET", "/api/v1/admin/news/:id", "fetch a single news record (admin)"},
			{"PUT", "/api/v1/admin/news/:id", "update a news record (admin)"},
			{"DELETE", "/api/v1/admin/news/:id", "delete a news record (admin)"},
			{"GET", "/api/v1/admin/stats", "aggregate statistics (admin)"},
			{"GET", "/api/v1/public/news", "list published news"},
			{"GET", "/api/v1/public/news/:id", "fetch a published news record"},
			{"GET", "/api/v1/public/categories", "category counts of published news"},
			{"GET", "/api/v1/public/search", "search published news"},
			{"GET", "/api/v1/ai/unprocessed", "news awaiting AI assessment"},
			{"GET", "/api/v1/health", "store liveness probe"},
		},
	})
}
