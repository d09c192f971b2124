package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/nhatrovn/rental-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("lessor request not found")
	ErrRequestPending  = errors.New("you already have a pending lessor request")
)

type LessorService struct {
	db           *gorm.DB
	s3Service    *S3Service
	emailService *EmailService
}

func NewLessorService(db *gorm.DB, s3Service *S3Service, emailService *EmailService) *LessorService {
	return &LessorService{db: db, s3Service: s3Service, emailService: emailService}
}

type LessorRequestInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string // YYYY-MM-DD
}

// SubmitRequest files a lessor upgrade application with both identity
// card scans. A user can only have one open request at a time.
func (s *LessorService) SubmitRequest(actorID uint, input LessorRequestInput, front, back *multipart.FileHeader) (*models.LessorRequest, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	input.FullName = strings.TrimSpace(input.FullName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	if input.FullName == "" || input.PhoneNumber == "" {
		return nil, errors.New("full name and phone number are required")
	}
	if front == nil || back == nil {
		return nil, errors.New("both identity card images are required")
	}

	dateOfBirth, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, errors.New("date of birth must be in YYYY-MM-DD format")
	}

	var existing models.LessorRequest
	if err := s.db.Where("user_id = ? AND status = ?", actorID, models.LessorRequestPending).
		First(&existing).Error; err == nil {
		return nil, ErrRequestPending
	}

	if s.s3Service == nil {
		return nil, errors.New("document upload is not configured")
	}

	frontResult, err := s.s3Service.UploadDocument(front)
	if err != nil {
		return nil, fmt.Errorf("failed to upload front image: %v", err)
	}
	backResult, err := s.s3Service.UploadDocument(back)
	if err != nil {
		s.s3Service.DeleteImage(frontResult.Key)
		return nil, fmt.Errorf("failed to upload back image: %v", err)
	}

	request := models.LessorRequest{
		UserID:         actorID,
		Status:         models.LessorRequestPending,
		FullName:       input.FullName,
		Email:          strings.TrimSpace(input.Email),
		PhoneNumber:    input.PhoneNumber,
		DateOfBirth:    dateOfBirth,
		IDCardFrontURL: frontResult.URL,
		IDCardBackURL:  backResult.URL,
	}

	if err := s.db.Create(&request).Error; err != nil {
		s.s3Service.DeleteMultipleImages([]string{frontResult.Key, backResult.Key})
		return nil, errors.New("failed to create lessor request")
	}

	return &request, nil
}

// GetOwnRequest returns the user's most recent request, so the client
// can show its status.
func (s *LessorService) GetOwnRequest(actorID uint) (*models.LessorRequest, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	var request models.LessorRequest
	if err := s.db.Where("user_id = ?", actorID).
		Order("created_at DESC").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListRequests returns requests for the back office, optionally
// filtered by status.
func (s *LessorService) ListRequests(status string) ([]models.LessorRequest, error) {
	query := s.db.Preload("User").Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var requests []models.LessorRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, errors.New("failed to fetch lessor requests")
	}
	return requests, nil
}

// ApproveRequest marks the request approved and promotes the user to
// the lessor role in one transaction.
func (s *LessorService) ApproveRequest(requestID uint) (*models.LessorRequest, error) {
	var request models.LessorRequest
	if err := s.db.Preload("User").First(&request, requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != models.LessorRequestPending {
		return nil, errors.New("request has already been decided")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&request).Update("status", models.LessorRequestApproved).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("failed to approve request")
	}
	if err := tx.Model(&models.User{}).Where("id = ?", request.UserID).Update("role", "lessor").Error; err != nil {
		tx.Rollback()
		return nil, errors.New("failed to update user role")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.emailService != nil && request.User.Email != "" {
		if err := s.emailService.SendLessorApprovedEmail(request.User.Email, request.FullName); err != nil {
			logger.Error("Failed to send lessor approval email", err)
		}
	}

	request.Status = models.LessorRequestApproved
	return &request, nil
}

// RejectRequest marks the request rejected with a reason.
func (s *LessorService) RejectRequest(requestID uint, reason string) (*models.LessorRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.New("rejection reason is required")
	}

	var request models.LessorRequest
	if err := s.db.Preload("User").First(&request, requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != models.LessorRequestPending {
		return nil, errors.New("request has already been decided")
	}

	updates := map[string]interface{}{
		"status":           models.LessorRequestRejected,
		"rejection_reason": reason,
	}
	if err := s.db.Model(&request).Updates(updates).Error; err != nil {
		return nil, errors.New("failed to reject request")
	}

	if s.emailService != nil && request.User.Email != "" {
		if err := s.emailService.SendLessorRejectedEmail(request.User.Email, request.FullName, reason); err != nil {
			logger.Error("Failed to send lessor rejection email", err)
		}
	}

	request.Status = models.LessorRequestRejected
	request.RejectionReason = reason
	return &request, nil
}
