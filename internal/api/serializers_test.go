package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/fortune-news/internal/models"
)

func sampleNews() models.News {
	content := "body text"
	reason := "assessed by model"
	category := "markets"
	worth := true
	return models.News{
		ID:       42,
		Title:    "A headline",
		ISODate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Link:     "https://x.test/1",
		Content:  &content,
		AIWorth:  &worth,
		AIReason: &reason,
		Category: &category,
		Status:   models.StatusPublish,
	}
}

func TestSerializeNewsRendersISODate(t *testing.T) {
	s := SerializeNews(sampleNews())

	if s.ISODate != "2024-01-01T00:00:00.000Z" {
		t.Errorf("ISODate = %q, want ISO-8601 string with milliseconds", s.ISODate)
	}

	// Round-trip: the serialized string parses back to the same instant.
	parsed, err := time.Parse(time.RFC3339, s.ISODate)
	if err != nil {
		t.Fatalf("serialized date does not parse: %v", err)
	}
	if !parsed.Equal(sampleNews().ISODate) {
		t.Errorf("round-trip mismatch: %v", parsed)
	}

	if s.ID != 42 || s.Status != models.StatusPublish || *s.AIReason != "assessed by model" {
		t.Errorf("serializer must be lossless, got %+v", s)
	}
}

func TestSerializeNewsKeepsSubSecondPrecision(t *testing.T) {
	news := sampleNews()
	news.ISODate = time.Date(2024, 1, 1, 0, 0, 0, 500_000_000, time.UTC)

	s := SerializeNews(news)
	if s.ISODate != "2024-01-01T00:00:00.500Z" {
		t.Errorf("ISODate = %q, milliseconds must survive serialization", s.ISODate)
	}

	parsed, err := time.Parse(time.RFC3339, s.ISODate)
	if err != nil {
		t.Fatalf("serialized date does not parse: %v", err)
	}
	if !parsed.Equal(news.ISODate) {
		t.Errorf("round-trip mismatch: stored %v, got back %v", news.ISODate, parsed)
	}
}

func TestStripPublicRemovesAIReasonAndStatus(t *testing.T) {
	public := StripPublic(SerializeNews(sampleNews()))

	data, err := json.Marshal(public)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "aiReason") {
		t.Errorf("public view must not expose aiReason: %s", data)
	}
	if strings.Contains(string(data), "status") {
		t.Errorf("public collection view must not expose status: %s", data)
	}
	if public.AIWorth == nil || !*public.AIWorth {
		t.Error("stripping must keep aiWorth")
	}
}

func TestStripPublicDetailKeepsStatus(t *testing.T) {
	detail := StripPublicDetail(SerializeNews(sampleNews()))

	data, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "aiReason") {
		t.Errorf("public detail view must not expose aiReason: %s", data)
	}
	if detail.Status != models.StatusPublish {
		t.Errorf("public detail view keeps status, got %q", detail.Status)
	}
}

func TestSerializeNewsListPreservesOrder(t *testing.T) {
	first := sampleNews()
	second := sampleNews()
	second.ID = 43

	out := SerializeNewsList([]models.News{first, second})
	if len(out) != 2 || out[0].ID != 42 || out[1].ID != 43 {
		t.Errorf("unexpected list: %+v", out)
	}
}
