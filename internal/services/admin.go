package services

import (
	"errors"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/nhatrovn/rental-backend/internal/utils"
	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type DashboardStats struct {
	TotalPosts   int64 `json:"total_posts"`
	TotalUsers   int64 `json:"total_users"`
	TotalReviews int64 `json:"total_reviews"`
	TotalSaved   int64 `json:"total_saved"`
}

// GetDashboardStats counts the headline numbers for the admin
// dashboard.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, errors.New("failed to count posts")
	}
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, errors.New("failed to count users")
	}
	if err := s.db.Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, errors.New("failed to count reviews")
	}
	if err := s.db.Model(&models.SavedPost{}).Count(&stats.TotalSaved).Error; err != nil {
		return nil, errors.New("failed to count saved posts")
	}

	return &stats, nil
}

func (s *AdminService) GetUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Select("id", "name", "email", "phone_number", "role", "is_active", "created_at").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, errors.New("failed to fetch users")
	}
	return users, nil
}

// UpdateUserRole moves a user between user, lessor and admin.
func (s *AdminService) UpdateUserRole(userID uint, role string) (*models.User, error) {
	if !utils.IsValidRole(role) {
		return nil, errors.New("invalid role, use 'user', 'lessor' or 'admin'")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, errors.New("failed to update user role")
	}

	user.Role = role
	return &user, nil
}

// DeactivateUser soft-disables an account; their refresh tokens are
// revoked so existing sessions die at the next refresh.
func (s *AdminService) DeactivateUser(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if err := s.db.Model(&user).Update("is_active", false).Error; err != nil {
		return errors.New("failed to deactivate user")
	}

	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("is_revoked", true).Error
}
