// Package client is the consumer side of the news API: a thin typed
// wrapper used by the admin tooling, with the session gate supplying the
// bearer token.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bilgisen/fortune-news/internal/api"
	"github.com/bilgisen/fortune-news/internal/auth"
	"github.com/bilgisen/fortune-news/internal/store"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Message string
	Errors  []api.FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Client talks to one news API deployment.
type Client struct {
	http *resty.Client
	gate *auth.Gate
}

// New builds a client for the given base URL, e.g.
// "https://news.example.com/api/v1". The gate may be nil for public-only
// consumers.
func New(baseURL string, gate *auth.Gate) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{http: http, gate: gate}
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Message string           `json:"message"`
	Errors  []api.FieldError `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any, out any) (string, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if c.gate != nil {
		if token, ok := c.gate.Token(); ok {
			req.SetAuthToken(token)
		}
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.IsError() || !env.Success {
		return "", &APIError{
			Status:  resp.StatusCode(),
			Message: env.Message,
			Errors:  env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return env.Message, nil
}

// NewsPage is one page of admin listing results.
type NewsPage struct {
	News       []api.SerializedNews `json:"news"`
	Pagination api.Pagination       `json:"pagination"`
}

// PublicNewsPage is one page of public listing or search results.
type PublicNewsPage struct {
	News       []api.PublicNews `json:"news"`
	Pagination api.Pagination   `json:"pagination"`
	Keyword    string           `json:"keyword,omitempty"`
}

// AdminListParams are the query parameters of the admin listing. Zero
// values are omitted from the request.
type AdminListParams struct {
	Page      int
	Limit     int
	Category  string
	Status    string
	Title     string
	AIWorth   *bool
	SortBy    string
	SortOrder string
}

func (p AdminListParams) query() map[string]string {
	q := map[string]string{}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	setString(q, "category", p.Category)
	setString(q, "status", p.Status)
	setString(q, "title", p.Title)
	setString(q, "sortBy", p.SortBy)
	setString(q, "sortOrder", p.SortOrder)
	if p.AIWorth != nil {
		q["aiWorth"] = strconv.FormatBool(*p.AIWorth)
	}
	return q
}

// PublicListParams are the query parameters of the public listing.
type PublicListParams struct {
	Page     int
	Limit    int
	Category string
	Hot      bool
	Latest   bool
}

func (p PublicListParams) query() map[string]string {
	q := map[string]string{}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	setString(q, "category", p.Category)
	if p.Hot {
		q["hot"] = "true"
	}
	if p.Latest {
		q["latest"] = "true"
	}
	return q
}

// AdminListNews fetches one admin listing page.
func (c *Client) AdminListNews(ctx context.Context, params AdminListParams) (*NewsPage, error) {
	var page NewsPage
	if _, err := c.do(ctx, resty.MethodGet, "/admin/news", params.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminGetNews fetches one record through the admin view.
func (c *Client) AdminGetNews(ctx context.Context, id uint) (*api.SerializedNews, error) {
	var news api.SerializedNews
	if _, err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/admin/news/%d", id), nil, nil, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

// UpdateNews applies a partial update.
func (c *Client) UpdateNews(ctx context.Context, id uint, input api.UpdateInput) (*api.SerializedNews, error) {
	var news api.SerializedNews
	if _, err := c.do(ctx, resty.MethodPut, fmt.Sprintf("/admin/news/%d", id), nil, input, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

// DeleteNews removes a record permanently.
func (c *Client) DeleteNews(ctx context.Context, id uint) error {
	_, err := c.do(ctx, resty.MethodDelete, fmt.Sprintf("/admin/news/%d", id), nil, nil, nil)
	return err
}

// Stats fetches the admin dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*store.Stats, error) {
	var stats store.Stats
	if _, err := c.do(ctx, resty.MethodGet, "/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upload creates a record through the ingestion endpoint.
func (c *Client) Upload(ctx context.Context, input api.UploadInput) (*api.SerializedNews, error) {
	var news api.SerializedNews
	if _, err := c.do(ctx, resty.MethodPost, "/upload", nil, input, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

// PublicNews fetches one public listing page.
func (c *Client) PublicNews(ctx context.Context, params PublicListParams) (*PublicNewsPage, error) {
	var page PublicNewsPage
	if _, err := c.do(ctx, resty.MethodGet, "/public/news", params.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PublicNewsByID fetches one published record.
func (c *Client) PublicNewsByID(ctx context.Context, id uint) (*api.PublicNewsDetail, error) {
	var news api.PublicNewsDetail
	if _, err := c.do(ctx, resty.MethodGet, fmt.Sprintf("/public/news/%d", id), nil, nil, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

// Search runs a keyword search over published records.
func (c *Client) Search(ctx context.Context, keyword string, page, limit int) (*PublicNewsPage, error) {
	q := map[string]string{"q": keyword}
	setInt(q, "page", page)
	setInt(q, "limit", limit)

	var result PublicNewsPage
	if _, err := c.do(ctx, resty.MethodGet, "/public/search", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Categories fetches the published category counts.
func (c *Client) Categories(ctx context.Context) ([]store.CategoryCount, error) {
	var categories []store.CategoryCount
	if _, err := c.do(ctx, resty.MethodGet, "/public/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Health probes store liveness.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, resty.MethodGet, "/health", nil, nil, nil)
	return err
}

func setInt(q map[string]string, key string, value int) {
	if value > 0 {
		q[key] = strconv.Itoa(value)
	}
}

func setString(q map[string]string, key, value string) {
	if value != "" {
		q[key] = value
	}
}
