package models

import "time"

// PageContent is a static informational page addressed by its slug.
type PageContent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PageSlug        string    `gorm:"size:100;not null;uniqueIndex" json:"page_slug"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	MetaDescription *string   `gorm:"type:text" json:"meta_description"`
	IsPublished     bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;index" json:"updated_at"`
}

// TableName pins the table name used by the store.
func (PageContent) TableName() string {
	return "page_contents"
}
