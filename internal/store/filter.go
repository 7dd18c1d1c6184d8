package store

import (
	"fmt"
	"strings"

	"github.com/bilgisen/fortune-news/internal/models"
	"gorm.io/gorm"
)

// Filter is the set of ANDed conditions applied to a listing query. Zero
// valued fields are skipped; Search additionally ORs a substring match
// across title and content.
type Filter struct {
	Category       string
	Title          string
	Status         models.NewsStatus
	AIWorth        *bool
	Search         string
	PublishedOnly  bool // forces status = PUBLISH regardless of Status
	UnassessedOnly bool // aiWorth IS NULL
}

// Scope translates the filter into a GORM scope. Category, title and
// search matches are case-insensitive substring matches (ILIKE).
func (f Filter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.PublishedOnly {
			db = db.Where("status = ?", models.StatusPublish)
		} else if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Category != "" {
			db = db.Where("category ILIKE ?", contains(f.Category))
		}
		if f.Title != "" {
			db = db.Where("title ILIKE ?", contains(f.Title))
		}
		if f.AIWorth != nil {
			db = db.Where("ai_worth = ?", *f.AIWorth)
		}
		if f.UnassessedOnly {
			db = db.Where("ai_worth IS NULL")
		}
		if f.Search != "" {
			pattern := contains(f.Search)
			db = db.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
		}
		return db
	}
}

func contains(value string) string {
	return "%" + escapeLike(value) + "%"
}

// escapeLike neutralizes LIKE metacharacters so filter values match
// literally.
func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}

// SortField enumerates the columns a listing may be ordered by.
type SortField string

const (
	SortByID       SortField = "id"
	SortByTitle    SortField = "title"
	SortByISODate  SortField = "iso_date"
	SortByCategory SortField = "category"
	SortByStatus   SortField = "status"
	SortByAIWorth  SortField = "ai_worth"
)

// Sort is one ordering term of a listing query.
type Sort struct {
	Field SortField
	Desc  bool
}

func (s Sort) clause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", s.Field, dir)
}

// OrderScope applies the ordering terms in sequence. When the date column
// leads, a tie-break on id in the same direction is expected to already be
// part of the terms (see the query builders in the api package).
func OrderScope(terms []Sort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, term := range terms {
			db = db.Order(term.clause())
		}
		return db
	}
}

// Window is the offset/limit pair of a listing query. Limit is always at
// least 1, enforced by validation, so pagination math never divides by
// zero.
type Window struct {
	Page  int
	Limit int
}

func (w Window) Offset() int {
	return (w.Page - 1) * w.Limit
}
