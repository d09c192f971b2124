package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/nhatrovn/rental-backend/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	QueryTimeout    = 30 * time.Second
)

var (
	ErrInvalidFilter = errors.New("invalid filter parameters")
	ErrDatabaseQuery = errors.New("database query failed")
)

type PostService struct {
	db        *gorm.DB
	s3Service *S3Service
}

func NewPostService(db *gorm.DB, s3Service *S3Service) *PostService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &PostService{db: db, s3Service: s3Service}
}

type PostFilter struct {
	CategoryID uint    `form:"category_id"`
	City       string  `form:"city"`
	MinPrice   float64 `form:"min_price"`
	MaxPrice   float64 `form:"max_price"`
	Search     string  `form:"q"`
	Status     string  `form:"status"` // admin listing only
	Page       int     `form:"page"`
	Limit      int     `form:"per_page"`

	ownerID uint // set internally for "my posts" listings
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type PostPage struct {
	Posts []models.Post `json:"posts"`
	Meta  PageMeta      `json:"meta"`
}

type CreatePostRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Area        float64 `json:"area"`
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	AmenityIDs  []uint  `json:"amenity_ids"`
}

type UpdatePostRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Area        *float64 `json:"area,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	CategoryID  *uint    `json:"category_id,omitempty"`
	AmenityIDs  []uint   `json:"amenity_ids,omitempty"`
}

// ValidateAndNormalize validates and normalizes filter parameters
func (f *PostFilter) ValidateAndNormalize() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidFilter)
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: min_price cannot be greater than max_price", ErrInvalidFilter)
	}

	f.Search = strings.TrimSpace(f.Search)
	f.City = strings.TrimSpace(f.City)
	if len(f.Search) > 255 {
		return fmt.Errorf("%w: search term too long", ErrInvalidFilter)
	}

	return nil
}

// GetPosts retrieves published posts with filtering and pagination
// (public access).
func (s *PostService) GetPosts(ctx context.Context, filter PostFilter) (*PostPage, error) {
	filter.Status = models.PostStatusPublished
	return s.getPostPage(ctx, filter)
}

// GetPostsForOwner lists a lessor's own posts regardless of status, so
// they can see pending and hidden listings too.
func (s *PostService) GetPostsForOwner(ctx context.Context, ownerID uint, filter PostFilter) (*PostPage, error) {
	if ownerID == 0 {
		return nil, ErrSignInRequired
	}
	if filter.Status == "all" {
		filter.Status = ""
	}
	filter.ownerID = ownerID
	return s.getPostPage(ctx, filter)
}

// GetPostsForAdmin retrieves posts for the back office, any status.
func (s *PostService) GetPostsForAdmin(ctx context.Context, filter PostFilter) (*PostPage, error) {
	if filter.Status == "all" {
		filter.Status = ""
	}
	return s.getPostPage(ctx, filter)
}

func (s *PostService) getPostPage(ctx context.Context, filter PostFilter) (*PostPage, error) {
	if err := filter.ValidateAndNormalize(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var posts []models.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Post{})
	query = s.applyFilters(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to count posts: %v", ErrDatabaseQuery, err)
	}

	meta := PageMeta{
		CurrentPage: filter.Page,
		PerPage:     filter.Limit,
		Total:       total,
	}

	if total == 0 {
		return &PostPage{Posts: []models.Post{}, Meta: meta}, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("User").
		Preload("Category").
		Preload("Amenities").
		Preload("Images").
		Offset(offset).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch posts: %v", ErrDatabaseQuery, err)
	}

	meta.LastPage = int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		meta.LastPage++
	}

	return &PostPage{Posts: posts, Meta: meta}, nil
}

// GetPostByID retrieves a single published post (public access).
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid post ID", ErrInvalidFilter)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var post models.Post
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Amenities").
		Preload("Images").
		Where("id = ? AND status = ?", id, models.PostStatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch post: %v", ErrDatabaseQuery, err)
	}

	return &post, nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ownerID != 0 {
		query = query.Where("user_id = ?", filter.ownerID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(address) LIKE ?",
			searchTerm, searchTerm,
		)
	}
	return query
}

// CreatePost creates a listing for a lessor. New posts start pending
// and only show publicly once an admin publishes them.
func (s *PostService) CreatePost(actorID uint, req CreatePostRequest, imageFiles []*multipart.FileHeader) (*models.Post, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		return nil, errors.New("category not found")
	}

	var amenities []models.Amenity
	if len(req.AmenityIDs) > 0 {
		if err := s.db.Where("id IN ?", req.AmenityIDs).Find(&amenities).Error; err != nil {
			return nil, fmt.Errorf("failed to load amenities: %v", err)
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	post := &models.Post{
		UserID:      actorID,
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Area:        req.Area,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Status:      models.PostStatusPending,
	}

	if err := tx.Create(post).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create post: %v", err)
	}

	if len(amenities) > 0 {
		if err := tx.Model(post).Association("Amenities").Append(&amenities); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to attach amenities: %v", err)
		}
	}

	if len(imageFiles) > 0 && s.s3Service != nil {
		uploadResults, err := s.s3Service.UploadListingImages(imageFiles)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to upload images: %v", err)
		}

		var images []models.PostImage
		for _, result := range uploadResults {
			images = append(images, models.PostImage{
				PostID:      post.ID,
				FileName:    result.FileName,
				S3Key:       result.Key,
				S3URL:       result.URL,
				ContentType: result.ContentType,
				Size:        result.Size,
			})
		}

		if err := tx.Create(&images).Error; err != nil {
			tx.Rollback()
			var keys []string
			for _, result := range uploadResults {
				keys = append(keys, result.Key)
			}
			s.s3Service.DeleteMultipleImages(keys)
			return nil, fmt.Errorf("failed to create image records: %v", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	if err := s.db.Preload("Category").Preload("Amenities").Preload("Images").First(post, post.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created post: %v", err)
	}
	return post, nil
}

// UpdatePost updates a listing. Only the owning lessor or an admin may
// touch it.
func (s *PostService) UpdatePost(actorID uint, isAdmin bool, postID uint, req UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if !isAdmin && !canModify(actorID, post.UserID) {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrInvalidFilter)
		}
		post.Price = *req.Price
	}
	if req.Area != nil {
		post.Area = *req.Area
	}
	if req.Address != nil {
		post.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		post.City = strings.TrimSpace(*req.City)
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			return nil, errors.New("category not found")
		}
		post.CategoryID = *req.CategoryID
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %v", err)
	}

	if req.AmenityIDs != nil {
		var amenities []models.Amenity
		if len(req.AmenityIDs) > 0 {
			if err := s.db.Where("id IN ?", req.AmenityIDs).Find(&amenities).Error; err != nil {
				return nil, fmt.Errorf("failed to load amenities: %v", err)
			}
		}
		if err := s.db.Model(&post).Association("Amenities").Replace(&amenities); err != nil {
			return nil, fmt.Errorf("failed to update amenities: %v", err)
		}
	}

	s.db.Preload("Category").Preload("Amenities").Preload("Images").First(&post, post.ID)
	return &post, nil
}

// DeletePost removes a listing with its images, saved-post rows and the
// whole review forest under it.
func (s *PostService) DeletePost(actorID uint, isAdmin bool, postID uint) error {
	var post models.Post
	if err := s.db.Preload("Images").First(&post, postID).Error; err != nil {
		return ErrPostNotFound
	}

	if !isAdmin && !canModify(actorID, post.UserID) {
		return ErrNotOwner
	}

	var reviewIDs []uint
	if err := s.db.Model(&models.Review{}).Where("post_id = ?", post.ID).Pluck("id", &reviewIDs).Error; err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if len(reviewIDs) > 0 {
		if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.ReviewReply{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Where("id IN ?", reviewIDs).Delete(&models.Review{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.SavedPost{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&post).Association("Amenities").Clear(); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostImage{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	if s.s3Service != nil && len(post.Images) > 0 {
		var keys []string
		for _, image := range post.Images {
			keys = append(keys, image.S3Key)
		}
		s.s3Service.DeleteMultipleImages(keys)
	}
	return nil
}

// ModeratePost moves a listing between pending, published and hidden.
func (s *PostService) ModeratePost(postID uint, action string) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	switch action {
	case "publish":
		return s.db.Model(&post).Update("status", models.PostStatusPublished).Error
	case "hide":
		return s.db.Model(&post).Update("status", models.PostStatusHidden).Error
	default:
		return errors.New("invalid action, use 'publish' or 'hide'")
	}
}

// SavePost bookmarks a published post for a user. Saving twice is a
// no-op thanks to the unique (user, post) index.
func (s *PostService) SavePost(actorID, postID uint) error {
	if actorID == 0 {
		return ErrSignInRequired
	}

	var post models.Post
	if err := s.db.Where("id = ? AND status = ?", postID, models.PostStatusPublished).First(&post).Error; err != nil {
		return ErrPostNotFound
	}

	var existing models.SavedPost
	if err := s.db.Where("user_id = ? AND post_id = ?", actorID, postID).First(&existing).Error; err == nil {
		return nil
	}

	saved := models.SavedPost{UserID: actorID, PostID: postID}
	return s.db.Create(&saved).Error
}

func (s *PostService) UnsavePost(actorID, postID uint) error {
	if actorID == 0 {
		return ErrSignInRequired
	}
	return s.db.Where("user_id = ? AND post_id = ?", actorID, postID).Delete(&models.SavedPost{}).Error
}

func (s *PostService) GetSavedPosts(actorID uint) ([]models.SavedPost, error) {
	if actorID == 0 {
		return nil, ErrSignInRequired
	}

	var saved []models.SavedPost
	err := s.db.Preload("Post").Preload("Post.Images").Preload("Post.Category").
		Where("user_id = ?", actorID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch saved posts: %v", ErrDatabaseQuery, err)
	}
	return saved, nil
}
