package store

import (
	"context"

	"github.com/bilgisen/fortune-news/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// NewsStore wraps all persistence operations for news records.
type NewsStore struct {
	db *gorm.DB
}

func NewNewsStore(db *gorm.DB) *NewsStore {
	return &NewsStore{db: db}
}

// List runs the total-count query and the page query concurrently over the
// same filter and returns the page together with the full match count.
// Either failure aborts the listing.
func (s *NewsStore) List(ctx context.Context, filter Filter, order []Sort, window Window) ([]models.News, int64, error) {
	var (
		records []models.News
		total   int64
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(ctx).
			Model(&models.News{}).
			Scopes(filter.Scope()).
			Count(&total).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).
			Scopes(filter.Scope(), OrderScope(order)).
			Offset(window.Offset()).
			Limit(window.Limit).
			Find(&records).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetByID returns the record or gorm.ErrRecordNotFound.
func (s *NewsStore) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	if err := s.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// GetPublished returns the record only when its status is PUBLISH;
// non-published records are indistinguishable from absent ones.
func (s *NewsStore) GetPublished(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusPublish).
		First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// Create persists a new record; the store assigns the id.
func (s *NewsStore) Create(ctx context.Context, news *models.News) error {
	return s.db.WithContext(ctx).Create(news).Error
}

// Update applies only the supplied columns to an existing record and
// returns the updated row. A nil map value clears the column.
func (s *NewsStore) Update(ctx context.Context, id uint, fields map[string]any) (*models.News, error) {
	if err := s.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the record permanently.
func (s *NewsStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.News{}, id).Error
}

// CategoryCount is one category with its number of records.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PublishedCategories groups published records by category. Records with a
// NULL category are excluded.
func (s *NewsStore) PublishedCategories(ctx context.Context) ([]CategoryCount, error) {
	return s.categoryCounts(ctx, true)
}

func (s *NewsStore) categoryCounts(ctx context.Context, publishedOnly bool) ([]CategoryCount, error) {
	counts := []CategoryCount{}
	q := s.db.WithContext(ctx).
		Model(&models.News{}).
		Select("category AS name, COUNT(category) AS count").
		Where("category IS NOT NULL").
		Group("category").
		Order("count DESC")
	if publishedOnly {
		q = q.Where("status = ?", models.StatusPublish)
	}
	if err := q.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Stats summarizes the whole table for the admin dashboard.
type Stats struct {
	Total  int64 `json:"total"`
	Status struct {
		Draft     int64 `json:"draft"`
		Published int64 `json:"published"`
	} `json:"status"`
	AIWorth struct {
		True  int64 `json:"true"`
		False int64 `json:"false"`
		Null  int64 `json:"null"`
	} `json:"aiWorth"`
	Categories []CategoryCount `json:"categories"`
}

// Stats runs its component queries concurrently, mirroring the listing
// pipeline's count/page fan-out.
func (s *NewsStore) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	g, ctx := errgroup.WithContext(ctx)

	count := func(dest *int64, conds ...any) func() error {
		return func() error {
			q := s.db.WithContext(ctx).Model(&models.News{})
			if len(conds) > 0 {
				q = q.Where(conds[0], conds[1:]...)
			}
			return q.Count(dest).Error
		}
	}

	g.Go(count(&stats.Total))
	g.Go(count(&stats.Status.Draft, "status = ?", models.StatusDraft))
	g.Go(count(&stats.Status.Published, "status = ?", models.StatusPublish))
	g.Go(count(&stats.AIWorth.True, "ai_worth = ?", true))
	g.Go(count(&stats.AIWorth.False, "ai_worth = ?", false))
	g.Go(func() error {
		counts, err := s.categoryCounts(ctx, false)
		if err != nil {
			return err
		}
		stats.Categories = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.AIWorth.Null = stats.Total - stats.AIWorth.True - stats.AIWorth.False
	return &stats, nil
}

// Unprocessed returns the oldest records still awaiting AI assessment
// (aiWorth IS NULL) plus the total number pending.
func (s *NewsStore) Unprocessed(ctx context.Context, limit int) ([]models.News, int64, error) {
	filter := Filter{UnassessedOnly: true}
	return s.List(ctx, filter, []Sort{{Field: SortByID}}, Window{Page: 1, Limit: limit})
}
