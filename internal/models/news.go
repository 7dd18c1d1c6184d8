package models

import "time"

// NewsStatus is the lifecycle state of a news record. Only published
// records are visible to public consumers.
type NewsStatus string

const (
	StatusDraft   NewsStatus = "DRAFT"
	StatusPublish NewsStatus = "PUBLISH"
)

// Valid reports whether s is one of the declared status literals.
func (s NewsStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublish
}

// News is the single persisted entity of the system. Nullable columns are
// pointers so that NULL and zero values stay distinguishable.
type News struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:1000;not null" json:"title"`
	ISODate       time.Time  `gorm:"column:iso_date;not null;index" json:"isoDate"`
	Link          string     `gorm:"not null" json:"link"`
	Content       *string    `gorm:"size:5000" json:"content"`
	AIWorth       *bool      `gorm:"column:ai_worth;index" json:"aiWorth"`
	AIReason      *string    `gorm:"column:ai_reason;size:2000" json:"aiReason"`
	Category      *string    `gorm:"size:100;index" json:"category"`
	Status        NewsStatus `gorm:"type:varchar(10);not null;default:'DRAFT';index" json:"status"`
	TranslationKo *string    `json:"translationKo"`
	TranslationEn *string    `json:"translationEn"`
	TitleKo       *string    `json:"titleKo"`
	TitleEn       *string    `json:"titleEn"`
}

// TableName keeps the table name singular to match the original schema.
func (News) TableName() string {
	return "news"
}
