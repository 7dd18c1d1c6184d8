package api

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/bilgisen/fortune-news/internal/models"
	"github.com/bilgisen/fortune-news/internal/store"
	"github.com/gofiber/fiber/v2"
)

// runParser executes fn inside a fiber handler so the query parsers see a
// real request context.
func runParser(t *testing.T, target string, fn func(*fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/*", func(c *fiber.Ctx) error {
		fn(c)
		return nil
	})
	if _, err := app.Test(httptest.NewRequest("GET", target, nil)); err != nil {
		t.Fatalf("test request failed: %v", err)
	}
}

func TestParseAdminNewsQueryDefaults(t *testing.T) {
	runParser(t, "/admin/news", func(c *fiber.Ctx) {
		q, err := ParseAdminNewsQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Page != 1 || q.Limit != 10 {
			t.Errorf("defaults page=1 limit=10, got page=%d limit=%d", q.Page, q.Limit)
		}
		if q.SortBy != "id" || !q.SortDesc {
			t.Errorf("default sort is id desc, got %s desc=%v", q.SortBy, q.SortDesc)
		}
		if q.AIWorth != nil || q.Status != "" {
			t.Errorf("optional filters must default to absent: %+v", q)
		}
	})
}

func TestParseAdminNewsQueryCollectsAllViolations(t *testing.T) {
	runParser(t, "/admin/news?page=0&limit=500&aiWorth=maybe&sortOrder=sideways", func(c *fiber.Ctx) {
		_, err := ParseAdminNewsQuery(c)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if len(verr.Fields) != 4 {
			t.Errorf("expected every violation reported, got %d: %+v", len(verr.Fields), verr.Fields)
		}
	})
}

func TestParseAdminNewsQueryEmptyValuesAreAbsent(t *testing.T) {
	runParser(t, "/admin/news?category=&status=&aiWorth=", func(c *fiber.Ctx) {
		q, err := ParseAdminNewsQuery(c)
		if err != nil {
			t.Fatalf("empty values must not be violations: %v", err)
		}
		if q.Category != "" || q.Status != "" || q.AIWorth != nil {
			t.Errorf("empty values must be treated as absent: %+v", q)
		}
	})
}

func TestParseAdminNewsQueryCoercion(t *testing.T) {
	runParser(t, "/admin/news?page=3&limit=25&aiWorth=false&status=PUBLISH&sortOrder=asc", func(c *fiber.Ctx) {
		q, err := ParseAdminNewsQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Page != 3 || q.Limit != 25 {
			t.Errorf("numeric coercion failed: %+v", q)
		}
		if q.AIWorth == nil || *q.AIWorth {
			t.Error("aiWorth=false must coerce to boolean false")
		}
		if q.Status != models.StatusPublish || q.SortDesc {
			t.Errorf("status/sortOrder coercion failed: %+v", q)
		}
	})
}

func TestAdminOrderAppendsDateTieBreak(t *testing.T) {
	runParser(t, "/admin/news?sortBy=isoDate&sortOrder=asc", func(c *fiber.Ctx) {
		q, err := ParseAdminNewsQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order := q.Order()
		if len(order) != 2 {
			t.Fatalf("expected a tie-break term, got %+v", order)
		}
		if order[0].Field != store.SortByISODate || order[0].Desc {
			t.Errorf("primary term must be iso_date asc: %+v", order[0])
		}
		if order[1].Field != store.SortByID || order[1].Desc {
			t.Errorf("tie-break must be id in the same direction: %+v", order[1])
		}
	})
}

func TestAdminOrderSingleTermOtherwise(t *testing.T) {
	runParser(t, "/admin/news?sortBy=title", func(c *fiber.Ctx) {
		q, _ := ParseAdminNewsQuery(c)
		order := q.Order()
		if len(order) != 1 || order[0].Field != store.SortByTitle || !order[0].Desc {
			t.Errorf("expected single title desc term, got %+v", order)
		}
	})
}

func TestPublicQueryForcesPublishAndHot(t *testing.T) {
	runParser(t, "/public/news?hot=true&category=Tech", func(c *fiber.Ctx) {
		q, err := ParsePublicNewsQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := q.Filter()
		if !f.PublishedOnly {
			t.Error("public listing must force PUBLISH")
		}
		if f.AIWorth == nil || !*f.AIWorth {
			t.Error("hot flag must filter aiWorth=true")
		}
		if f.Category != "Tech" {
			t.Errorf("category filter lost: %+v", f)
		}
	})
}

func TestPublicOrderDependsOnLatest(t *testing.T) {
	runParser(t, "/public/news", func(c *fiber.Ctx) {
		q, _ := ParsePublicNewsQuery(c)
		order := q.Order()
		if len(order) != 1 || order[0].Field != store.SortByID || !order[0].Desc {
			t.Errorf("default public order is id desc, got %+v", order)
		}
	})

	runParser(t, "/public/news?latest=true", func(c *fiber.Ctx) {
		q, _ := ParsePublicNewsQuery(c)
		order := q.Order()
		if len(order) != 2 || order[0].Field != store.SortByISODate || !order[0].Desc ||
			order[1].Field != store.SortByID || !order[1].Desc {
			t.Errorf("latest order is iso_date desc, id desc, got %+v", order)
		}
	})
}

func TestParseSearchQueryRequiresKeyword(t *testing.T) {
	runParser(t, "/public/search", func(c *fiber.Ctx) {
		_, err := ParseSearchQuery(c)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	runParser(t, "/public/search?q=storm", func(c *fiber.Ctx) {
		q, err := ParseSearchQuery(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := q.Filter()
		if f.Search != "storm" || !f.PublishedOnly {
			t.Errorf("search filter mismatch: %+v", f)
		}
	})
}

func TestParseIDRejectsNonPositive(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", "1.5"} {
		app := fiber.New()
		var got error
		app.Get("/admin/news/:id", func(c *fiber.Ctx) error {
			_, got = ParseID(c)
			return nil
		})
		if _, err := app.Test(httptest.NewRequest("GET", "/admin/news/"+raw, nil)); err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		var verr *ValidationError
		if !errors.As(got, &verr) {
			t.Errorf("id %q must be rejected, got %v", raw, got)
		}
	}
}

func TestWindowMath(t *testing.T) {
	w := store.Window{Page: 4, Limit: 25}
	if w.Offset() != 75 {
		t.Errorf("skip = (page-1)*limit, got %d", w.Offset())
	}
}
