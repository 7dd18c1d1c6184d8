package api

import (
	"fmt"
	"strconv"

	"github.com/bilgisen/fortune-news/internal/models"
	"github.com/bilgisen/fortune-news/internal/store"
	"github.com/gofiber/fiber/v2"
)

// Query parsing follows the same coercion rules everywhere: numbers are
// coerced from strings, booleans from the literals "true"/"false", and an
// empty parameter value counts as absent. Every violation is collected so
// nothing fails fast on the first bad field.

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// AdminNewsQuery is the validated query of GET /admin/news.
type AdminNewsQuery struct {
	Page     int
	Limit    int
	Category string
	Title    string
	Status   models.NewsStatus
	AIWorth  *bool
	SortBy   string
	SortDesc bool
}

// sortColumns whitelists the sortable attributes and maps them onto store
// columns.
var sortColumns = map[string]store.SortField{
	"id":       store.SortByID,
	"title":    store.SortByTitle,
	"isoDate":  store.SortByISODate,
	"category": store.SortByCategory,
	"status":   store.SortByStatus,
	"aiWorth":  store.SortByAIWorth,
}

// ParseAdminNewsQuery validates the admin listing parameters.
func ParseAdminNewsQuery(c *fiber.Ctx) (*AdminNewsQuery, error) {
	p := newQueryParser(c)

	q := &AdminNewsQuery{
		Page:     p.intParam("page", defaultPage, 1, 0),
		Limit:    p.intParam("limit", defaultLimit, 1, maxLimit),
		Category: p.stringParam("category", 100),
		Title:    p.stringParam("title", 1000),
		AIWorth:  p.boolParam("aiWorth"),
		SortBy:   p.enumParam("sortBy", "id", "id", "title", "isoDate", "category", "status", "aiWorth"),
	}

	if status := p.enumParam("status", "", string(models.StatusDraft), string(models.StatusPublish)); status != "" {
		q.Status = models.NewsStatus(status)
	}
	q.SortDesc = p.enumParam("sortOrder", "desc", "asc", "desc") == "desc"

	if err := p.result(); err != nil {
		return nil, err
	}
	return q, nil
}

// Filter translates the validated query into store conditions.
func (q *AdminNewsQuery) Filter() store.Filter {
	return store.Filter{
		Category: q.Category,
		Title:    q.Title,
		Status:   q.Status,
		AIWorth:  q.AIWorth,
	}
}

// Order builds the ordering terms. Sorting by the date column appends an
// id tie-break in the same direction so the order is total and stable.
func (q *AdminNewsQuery) Order() []store.Sort {
	field := sortColumns[q.SortBy]
	if field == store.SortByISODate {
		return []store.Sort{
			{Field: store.SortByISODate, Desc: q.SortDesc},
			{Field: store.SortByID, Desc: q.SortDesc},
		}
	}
	return []store.Sort{{Field: field, Desc: q.SortDesc}}
}

func (q *AdminNewsQuery) Window() store.Window {
	return store.Window{Page: q.Page, Limit: q.Limit}
}

// PublicNewsQuery is the validated query of GET /public/news.
type PublicNewsQuery struct {
	Page     int
	Limit    int
	Category string
	Hot      bool
	Latest   bool
}

// ParsePublicNewsQuery validates the public listing parameters.
func ParsePublicNewsQuery(c *fiber.Ctx) (*PublicNewsQuery, error) {
	p := newQueryParser(c)

	q := &PublicNewsQuery{
		Page:     p.intParam("page", defaultPage, 1, 0),
		Limit:    p.intParam("limit", defaultLimit, 1, maxLimit),
		Category: p.stringParam("category", 100),
	}
	if hot := p.boolParam("hot"); hot != nil {
		q.Hot = *hot
	}
	if latest := p.boolParam("latest"); latest != nil {
		q.Latest = *latest
	}

	if err := p.result(); err != nil {
		return nil, err
	}
	return q, nil
}

// Filter always forces PUBLISH; the hot flag narrows to records assessed
// as worthwhile.
func (q *PublicNewsQuery) Filter() store.Filter {
	f := store.Filter{
		PublishedOnly: true,
		Category:      q.Category,
	}
	if q.Hot {
		worth := true
		f.AIWorth = &worth
	}
	return f
}

// Order is date desc with id tie-break when latest is requested, plain id
// desc otherwise.
func (q *PublicNewsQuery) Order() []store.Sort {
	if q.Latest {
		return []store.Sort{
			{Field: store.SortByISODate, Desc: true},
			{Field: store.SortByID, Desc: true},
		}
	}
	return []store.Sort{{Field: store.SortByID, Desc: true}}
}

func (q *PublicNewsQuery) Window() store.Window {
	return store.Window{Page: q.Page, Limit: q.Limit}
}

// SearchQuery is the validated query of GET /public/search.
type SearchQuery struct {
	Keyword string
	Page    int
	Limit   int
}

// ParseSearchQuery validates the search parameters; the keyword is
// required.
func ParseSearchQuery(c *fiber.Ctx) (*SearchQuery, error) {
	p := newQueryParser(c)

	q := &SearchQuery{
		Keyword: p.stringParam("q", 1000),
		Page:    p.intParam("page", defaultPage, 1, 0),
		Limit:   p.intParam("limit", defaultLimit, 1, maxLimit),
	}
	if q.Keyword == "" {
		p.addError("q", "search keyword must not be empty")
	}

	if err := p.result(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *SearchQuery) Filter() store.Filter {
	return store.Filter{
		PublishedOnly: true,
		Search:        q.Keyword,
	}
}

// Order is always date desc, id desc for search results.
func (q *SearchQuery) Order() []store.Sort {
	return []store.Sort{
		{Field: store.SortByISODate, Desc: true},
		{Field: store.SortByID, Desc: true},
	}
}

func (q *SearchQuery) Window() store.Window {
	return store.Window{Page: q.Page, Limit: q.Limit}
}

// ParseID validates the :id path parameter as a positive integer.
func ParseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, NewValidationError(FieldError{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}
	return uint(id), nil
}

// queryParser accumulates coercion and range failures across all
// parameters of one request.
type queryParser struct {
	c      *fiber.Ctx
	errors []FieldError
}

func newQueryParser(c *fiber.Ctx) *queryParser {
	return &queryParser{c: c}
}

func (p *queryParser) addError(field, message string) {
	p.errors = append(p.errors, FieldError{Field: field, Message: message})
}

func (p *queryParser) result() error {
	if len(p.errors) > 0 {
		return NewValidationError(p.errors...)
	}
	return nil
}

// intParam coerces a numeric parameter. A max of 0 means unbounded.
func (p *queryParser) intParam(name string, def, min, max int) int {
	raw := p.c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		p.addError(name, fmt.Sprintf("%s must be an integer", name))
		return def
	}
	if value < min {
		p.addError(name, fmt.Sprintf("%s must be at least %d", name, min))
		return def
	}
	if max > 0 && value > max {
		p.addError(name, fmt.Sprintf("%s must be at most %d", name, max))
		return def
	}
	return value
}

func (p *queryParser) stringParam(name string, maxLen int) string {
	raw := p.c.Query(name)
	if raw == "" {
		return ""
	}
	if len(raw) > maxLen {
		p.addError(name, fmt.Sprintf("%s must be at most %d characters", name, maxLen))
		return ""
	}
	return raw
}

// boolParam accepts only the literals "true" and "false"; nil means the
// parameter was absent.
func (p *queryParser) boolParam(name string) *bool {
	raw := p.c.Query(name)
	if raw == "" {
		return nil
	}
	switch raw {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		p.addError(name, fmt.Sprintf("%s must be true or false", name))
		return nil
	}
}

func (p *queryParser) enumParam(name, def string, allowed ...string) string {
	raw := p.c.Query(name)
	if raw == "" {
		return def
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw
		}
	}
	p.addError(name, fmt.Sprintf("%s must be one of %v", name, allowed))
	return def
}
