package models

import (
	"time"
)

type Blog struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	AuthorID      uint       `json:"author_id" gorm:"not null;index"`
	Title         string     `json:"title" gorm:"not null"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content" gorm:"type:text"`
	CoverImageURL string     `json:"cover_image_url"`
	IsPublished   bool       `json:"is_published" gorm:"default:false;index"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
