package models

import "time"

// CampusActivity is an event or happening shown on the public site.
type CampusActivity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ImageURL     *string   `gorm:"type:text" json:"image_url"`
	ActivityDate time.Time `gorm:"not null;index" json:"activity_date"`
	IsFeatured   bool      `gorm:"not null;index" json:"is_featured"`
	IsPublished  bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// TableName pins the table name used by the store.
func (CampusActivity) TableName() string {
	return "campus_activities"
}
