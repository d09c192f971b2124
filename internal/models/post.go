package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusHidden    = "hidden"
)

type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CategoryID  uint      `json:"category_id" gorm:"index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Area        float64   `json:"area"` // square meters
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Status      string    `json:"status" gorm:"default:pending;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User      User        `json:"user,omitempty"`
	Category  Category    `json:"category,omitempty"`
	Amenities []Amenity   `json:"amenities,omitempty" gorm:"many2many:post_amenities"`
	Images    []PostImage `json:"images" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Reviews   []Review    `json:"reviews,omitempty"`
}

type PostImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	FileName    string    `gorm:"not null" json:"file_name"`
	S3Key       string    `gorm:"not null;unique" json:"s3_key"`
	S3URL       string    `gorm:"not null" json:"s3_url"`
	ContentType string    `gorm:"not null" json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *PostImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;unique"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Amenity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;unique"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `json:"-" gorm:"many2many:post_amenities"`
}

type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_saved_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_saved_user_post"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-"`
	Post Post `json:"post,omitempty"`
}
