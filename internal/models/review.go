package models

import (
	"time"
)

// Review is a root-level rated comment attached to a post. It never has
// a parent; threaded discussion hangs off it as ReviewReply rows.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Content   string    `json:"content" gorm:"type:text"`
	IsHidden  bool      `json:"is_hidden" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty"`
	Post Post `json:"-"`
}

// ReviewReply is a node in a review's reply tree. ReviewID names the
// root review and is constant across the whole subtree; ParentID is nil
// for direct replies to the review and otherwise references a sibling
// row with the same ReviewID.
type ReviewReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"review_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"` // nil for depth-1 replies
	Content   string    `json:"content" gorm:"type:text;not null"`
	Rating    int       `json:"rating"`
	IsHidden  bool      `json:"is_hidden" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User   User   `json:"user,omitempty"`
	Review Review `json:"-"`
}
