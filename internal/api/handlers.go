package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/bilgisen/fortune-news/internal/cache"
	"github.com/bilgisen/fortune-news/internal/config"
	"github.com/bilgisen/fortune-news/internal/database"
	"github.com/bilgisen/fortune-news/internal/logger"
	"github.com/bilgisen/fortune-news/internal/store"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	cacheKeyStats      = "stats"
	cacheKeyCategories = "categories"

	// unprocessedLimit caps the batch handed to the AI assessment worker.
	unprocessedLimit = 10
)

type Handlers struct {
	config *config.Config
	db     *gorm.DB
	news   *store.NewsStore
	cache  cache.Cache
}

func NewHandlers(cfg *config.Config, db *gorm.DB, c cache.Cache) *Handlers {
	return &Handlers{
		config: cfg,
		db:     db,
		news:   store.NewNewsStore(db),
		cache:  c,
	}
}

// newsPage is the data payload of every listing endpoint.
type newsPage[T any] struct {
	News       []T        `json:"news"`
	Pagination Pagination `json:"pagination"`
	Keyword    string     `json:"keyword,omitempty"`
}

// Welcome handles GET /api/v1
func (h *Handlers) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":       "Welcome to the Fortune News API",
		"version":       "2.0.0",
		"documentation": "/api/v1/docs",
		"endpoints": fiber.Map{
			"health": "/api/v1/health",
			"upload": "/api/v1/upload",
			"docs":   "/api/v1/docs",
		},
	})
}

// HealthCheck handles GET /api/v1/health with a store liveness probe.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	if err := database.Ping(h.db); err != nil {
		return HandleError(c, err)
	}
	return Success(c, fiber.Map{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// AdminListNews handles GET /api/v1/admin/news. This is the full view,
// not restricted by status.
func (h *Handlers) AdminListNews(c *fiber.Ctx) error {
	query, err := ParseAdminNewsQuery(c)
	if err != nil {
		return HandleError(c, err)
	}

	records, total, err := h.news.List(c.Context(), query.Filter(), query.Order(), query.Window())
	if err != nil {
		return HandleError(c, err)
	}

	serialized := SerializeNewsList(records)
	return Success(c, newsPage[SerializedNews]{
		News:       serialized,
		Pagination: NewPagination(query.Page, query.Limit, len(serialized), total),
	})
}

// AdminGetNews handles GET /api/v1/admin/news/:id
func (h *Handlers) AdminGetNews(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return HandleError(c, err)
	}

	news, err := h.news.GetByID(c.Context(), id)
	if err != nil {
		return HandleError(c, notFoundAsMissingNews(err))
	}

	return Success(c, SerializeNews(*news))
}

// AdminUpdateNews handles PUT /api/v1/admin/news/:id as a partial update;
// only supplied fields change.
func (h *Handlers) AdminUpdateNews(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return HandleError(c, err)
	}

	input, err := ParseUpdateInput(c)
	if err != nil {
		return HandleError(c, err)
	}

	if _, err := h.news.GetByID(c.Context(), id); err != nil {
		return HandleError(c, notFoundAsMissingNews(err))
	}

	updated, err := h.news.Update(c.Context(), id, input.Fields())
	if err != nil {
		return HandleError(c, err)
	}

	h.invalidateCache(c)
	return SuccessMessage(c, SerializeNews(*updated), "news updated")
}

// AdminDeleteNews handles DELETE /api/v1/admin/news/:id. Hard delete.
func (h *Handlers) AdminDeleteNews(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return HandleError(c, err)
	}

	if _, err := h.news.GetByID(c.Context(), id); err != nil {
		return HandleError(c, notFoundAsMissingNews(err))
	}

	if err := h.news.Delete(c.Context(), id); err != nil {
		return HandleError(c, err)
	}

	h.invalidateCache(c)
	return SuccessMessage(c, fiber.Map{"id": id}, "news deleted")
}

// AdminStats handles GET /api/v1/admin/stats
func (h *Handlers) AdminStats(c *fiber.Ctx) error {
	if cached, ok := h.cachedData(c, cacheKeyStats); ok {
		return Success(c, cached)
	}

	stats, err := h.news.Stats(c.Context())
	if err != nil {
		return HandleError(c, err)
	}

	h.storeCache(c, cacheKeyStats, stats)
	return Success(c, stats)
}

// Upload handles POST /api/v1/upload, the third-party ingestion
// endpoint. Status defaults to DRAFT.
func (h *Handlers) Upload(c *fiber.Ctx) error {
	input, err := ParseUploadInput(c)
	if err != nil {
		return HandleError(c, err)
	}

	news := input.ToModel()
	if err := h.news.Create(c.Context(), news); err != nil {
		return HandleError(c, err)
	}

	h.invalidateCache(c)
	return Created(c, SerializeNews(*news), "news uploaded")
}

// PublicListNews handles GET /api/v1/public/news. PUBLISH only, aiReason
// and status stripped.
func (h *Handlers) PublicListNews(c *fiber.Ctx) error {
	query, err := ParsePublicNewsQuery(c)
	if err != nil {
		return HandleError(c, err)
	}

	records, total, err := h.news.List(c.Context(), query.Filter(), query.Order(), query.Window())
	if err != nil {
		return HandleError(c, err)
	}

	serialized := StripPublicList(SerializeNewsList(records))
	return Success(c, newsPage[PublicNews]{
		News:       serialized,
		Pagination: NewPagination(query.Page, query.Limit, len(serialized), total),
	})
}

// PublicGetNews handles GET /api/v1/public/news/:id. Unpublished records
// are reported as absent.
func (h *Handlers) PublicGetNews(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return HandleError(c, err)
	}

	news, err := h.news.GetPublished(c.Context(), id)
	if err != nil {
		return HandleError(c, notFoundAs(err, "news not found or not published"))
	}

	return Success(c, StripPublicDetail(SerializeNews(*news)))
}

// PublicCategories handles GET /api/v1/public/categories
func (h *Handlers) PublicCategories(c *fiber.Ctx) error {
	if cached, ok := h.cachedData(c, cacheKeyCategories); ok {
		return Success(c, cached)
	}

	categories, err := h.news.PublishedCategories(c.Context())
	if err != nil {
		return HandleError(c, err)
	}

	h.storeCache(c, cacheKeyCategories, categories)
	return Success(c, categories)
}

// PublicSearch handles GET /api/v1/public/search, a case-insensitive
// substring match over title and content, PUBLISH only.
func (h *Handlers) PublicSearch(c *fiber.Ctx) error {
	query, err := ParseSearchQuery(c)
	if err != nil {
		return HandleError(c, err)
	}

	records, total, err := h.news.List(c.Context(), query.Filter(), query.Order(), query.Window())
	if err != nil {
		return HandleError(c, err)
	}

	serialized := StripPublicList(SerializeNewsList(records))
	return Success(c, newsPage[PublicNews]{
		News:       serialized,
		Pagination: NewPagination(query.Page, query.Limit, len(serialized), total),
		Keyword:    query.Keyword,
	})
}

// AIUnprocessed handles GET /api/v1/ai/unprocessed, the batch feed for
// the external AI assessment worker.
func (h *Handlers) AIUnprocessed(c *fiber.Ctx) error {
	records, totalPending, err := h.news.Unprocessed(c.Context(), unprocessedLimit)
	if err != nil {
		return HandleError(c, err)
	}

	if len(records) == 0 {
		return SuccessMessage(c, fiber.Map{
			"news":         []SerializedNews{},
			"count":        0,
			"totalPending": 0,
			"hasMore":      false,
		}, "no news awaiting assessment")
	}

	serialized := SerializeNewsList(records)
	return Success(c, fiber.Map{
		"news":         serialized,
		"count":        len(serialized),
		"totalPending": totalPending,
		"hasMore":      totalPending > unprocessedLimit,
	})
}

func notFoundAsMissingNews(err error) error {
	return notFoundAs(err, "news not found")
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Message: message}
	}
	return err
}

// cachedData returns a previously cached payload as raw JSON so it can be
// re-enveloped without a decode/encode round trip.
func (h *Handlers) cachedData(c *fiber.Ctx, key string) (json.RawMessage, bool) {
	if h.cache == nil {
		return nil, false
	}
	value, ok, err := h.cache.Get(c.Context(), key)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return json.RawMessage(value), true
}

func (h *Handlers) storeCache(c *fiber.Ctx, key string, payload any) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.cache.Set(c.Context(), key, string(data), h.config.CacheTTL); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// invalidateCache drops derived payloads after any mutation.
func (h *Handlers) invalidateCache(c *fiber.Ctx) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(c.Context(), cacheKeyStats, cacheKeyCategories); err != nil {
		logger.Get().Warn().Err(err).Msg("Cache invalidation failed")
	}
}
