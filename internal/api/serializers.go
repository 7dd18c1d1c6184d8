package api

import (
	"github.com/bilgisen/fortune-news/internal/models"
)

// isoDateLayout always carries milliseconds, so sub-second instants
// survive a store-and-fetch round trip.
const isoDateLayout = "2006-01-02T15:04:05.000Z07:00"

// SerializedNews is the API shape of a stored record. The only
// transformation is the date rendered as an ISO-8601 string.
type SerializedNews struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	ISODate       string            `json:"isoDate"`
	Link          string            `json:"link"`
	Content       *string           `json:"content"`
	AIWorth       *bool             `json:"aiWorth"`
	AIReason      *string           `json:"aiReason"`
	Category      *string           `json:"category"`
	Status        models.NewsStatus `json:"status"`
	TranslationKo *string           `json:"translationKo"`
	TranslationEn *string           `json:"translationEn"`
	TitleKo       *string           `json:"titleKo"`
	TitleEn       *string           `json:"titleEn"`
}

// PublicNews is the collection view for public consumers: aiReason and
// status are stripped.
type PublicNews struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	ISODate       string  `json:"isoDate"`
	Link          string  `json:"link"`
	Content       *string `json:"content"`
	AIWorth       *bool   `json:"aiWorth"`
	Category      *string `json:"category"`
	TranslationKo *string `json:"translationKo"`
	TranslationEn *string `json:"translationEn"`
	TitleKo       *string `json:"titleKo"`
	TitleEn       *string `json:"titleEn"`
}

// PublicNewsDetail is the single-item public view: only aiReason is
// stripped, status stays visible.
type PublicNewsDetail struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	ISODate       string            `json:"isoDate"`
	Link          string            `json:"link"`
	Content       *string           `json:"content"`
	AIWorth       *bool             `json:"aiWorth"`
	Category      *string           `json:"category"`
	Status        models.NewsStatus `json:"status"`
	TranslationKo *string           `json:"translationKo"`
	TranslationEn *string           `json:"translationEn"`
	TitleKo       *string           `json:"titleKo"`
	TitleEn       *string           `json:"titleEn"`
}

// SerializeNews maps a stored record into its API shape.
func SerializeNews(n models.News) SerializedNews {
	return SerializedNews{
		ID:            n.ID,
		Title:         n.Title,
		ISODate:       n.ISODate.UTC().Format(isoDateLayout),
		Link:          n.Link,
		Content:       n.Content,
		AIWorth:       n.AIWorth,
		AIReason:      n.AIReason,
		Category:      n.Category,
		Status:        n.Status,
		TranslationKo: n.TranslationKo,
		TranslationEn: n.TranslationEn,
		TitleKo:       n.TitleKo,
		TitleEn:       n.TitleEn,
	}
}

// SerializeNewsList maps a page of records.
func SerializeNewsList(items []models.News) []SerializedNews {
	out := make([]SerializedNews, 0, len(items))
	for _, item := range items {
		out = append(out, SerializeNews(item))
	}
	return out
}

// StripPublic is the field-stripping step layered on top of the
// serializer for public collection views.
func StripPublic(n SerializedNews) PublicNews {
	return PublicNews{
		ID:            n.ID,
		Title:         n.Title,
		ISODate:       n.ISODate,
		Link:          n.Link,
		Content:       n.Content,
		AIWorth:       n.AIWorth,
		Category:      n.Category,
		TranslationKo: n.TranslationKo,
		TranslationEn: n.TranslationEn,
		TitleKo:       n.TitleKo,
		TitleEn:       n.TitleEn,
	}
}

// StripPublicList strips a whole page for public collection views.
func StripPublicList(items []SerializedNews) []PublicNews {
	out := make([]PublicNews, 0, len(items))
	for _, item := range items {
		out = append(out, StripPublic(item))
	}
	return out
}

// StripPublicDetail strips the single-item public view.
func StripPublicDetail(n SerializedNews) PublicNewsDetail {
	return PublicNewsDetail{
		ID:            n.ID,
		Title:         n.Title,
		ISODate:       n.ISODate,
		Link:          n.Link,
		Content:       n.Content,
		AIWorth:       n.AIWorth,
		Category:      n.Category,
		Status:        n.Status,
		TranslationKo: n.TranslationKo,
		TranslationEn: n.TranslationEn,
		TitleKo:       n.TitleKo,
		TitleEn:       n.TitleEn,
	}
}
