package models

import (
	"time"
)

const (
	LessorRequestPending  = "pending"
	LessorRequestApproved = "approved"
	LessorRequestRejected = "rejected"
)

// LessorRequest is a user's application to be upgraded to the lessor
// role. The identity card scans are stored on S3 and only the URLs are
// kept here.
type LessorRequest struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	Status          string    `json:"status" gorm:"default:pending;index"`
	RejectionReason string    `json:"rejection_reason"`
	FullName        string    `json:"full_name" gorm:"not null"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number" gorm:"not null"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	IDCardFrontURL  string    `json:"id_card_front_url" gorm:"not null"`
	IDCardBackURL   string    `json:"id_card_back_url" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User User `json:"user,omitempty"`
}
