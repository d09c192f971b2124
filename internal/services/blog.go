package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/nhatrovn/rental-backend/internal/utils"
	"gorm.io/gorm"
)

var ErrBlogNotFound = errors.New("blog not found")

type BlogService struct {
	db        *gorm.DB
	s3Service *S3Service
}

func NewBlogService(db *gorm.DB, s3Service *S3Service) *BlogService {
	return &BlogService{db: db, s3Service: s3Service}
}

type BlogRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Excerpt     string `form:"excerpt" json:"excerpt"`
	Content     string `form:"content" json:"content" binding:"required"`
	IsPublished bool   `form:"is_published" json:"is_published"`
}

// GetPublishedBlogs lists published posts for the public blog page,
// newest first.
func (s *BlogService) GetPublishedBlogs(page, limit int) ([]models.Blog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	var total int64
	query := s.db.Model(&models.Blog{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.New("failed to count blogs")
	}

	var blogs []models.Blog
	if err := query.
		Offset((page - 1) * limit).
		Limit(limit).
		Order("published_at DESC").
		Find(&blogs).Error; err != nil {
		return nil, 0, errors.New("failed to fetch blogs")
	}
	return blogs, total, nil
}

func (s *BlogService) GetBlogBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// GetAllBlogs lists every blog for the back office, drafts included.
func (s *BlogService) GetAllBlogs() ([]models.Blog, error) {
	var blogs []models.Blog
	if err := s.db.Preload("Author").Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, errors.New("failed to fetch blogs")
	}
	return blogs, nil
}

func (s *BlogService) CreateBlog(authorID uint, req BlogRequest, cover *multipart.FileHeader) (*models.Blog, error) {
	slug, err := s.uniqueSlug(req.Title, 0)
	if err != nil {
		return nil, err
	}

	blog := models.Blog{
		AuthorID:    authorID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if cover != nil && s.s3Service != nil {
		result, err := s.s3Service.UploadBlogCover(cover)
		if err != nil {
			return nil, fmt.Errorf("failed to upload cover image: %v", err)
		}
		blog.CoverImageURL = result.URL
	}

	if err := s.db.Create(&blog).Error; err != nil {
		return nil, errors.New("failed to create blog")
	}
	return &blog, nil
}

func (s *BlogService) UpdateBlog(blogID uint, req BlogRequest, cover *multipart.FileHeader) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		return nil, ErrBlogNotFound
	}

	if strings.TrimSpace(req.Title) != blog.Title {
		slug, err := s.uniqueSlug(req.Title, blog.ID)
		if err != nil {
			return nil, err
		}
		blog.Slug = slug
	}

	blog.Title = strings.TrimSpace(req.Title)
	blog.Excerpt = strings.TrimSpace(req.Excerpt)
	blog.Content = req.Content
	if req.IsPublished && !blog.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}
	blog.IsPublished = req.IsPublished

	if cover != nil && s.s3Service != nil {
		result, err := s.s3Service.UploadBlogCover(cover)
		if err != nil {
			return nil, fmt.Errorf("failed to upload cover image: %v", err)
		}
		blog.CoverImageURL = result.URL
	}

	if err := s.db.Save(&blog).Error; err != nil {
		return nil, errors.New("failed to update blog")
	}
	return &blog, nil
}

func (s *BlogService) DeleteBlog(blogID uint) error {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		return ErrBlogNotFound
	}
	return s.db.Delete(&blog).Error
}

// uniqueSlug derives a slug from the title and suffixes a counter on
// collision.
func (s *BlogService) uniqueSlug(title string, excludeID uint) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		return "", errors.New("title cannot be empty")
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		query := s.db.Model(&models.Blog{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
