package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) GetPublishedBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	blogs, total, err := h.blogService.GetPublishedBlogs(page, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch blogs", err)
		return
	}

	utils.SendSuccess(c, "Blogs retrieved successfully", gin.H{
		"blogs": blogs,
		"total": total,
	})
}

func (h *BlogHandler) GetBlogBySlug(c *gin.Context) {
	slug := c.Param("slug")

	blog, err := h.blogService.GetBlogBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.SendNotFound(c, "Blog not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch blog", err)
		return
	}

	utils.SendSuccess(c, "Blog retrieved successfully", blog)
}

func (h *BlogHandler) GetAllBlogs(c *gin.Context) {
	blogs, err := h.blogService.GetAllBlogs()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch blogs", err)
		return
	}

	utils.SendSuccess(c, "Blogs retrieved successfully", blogs)
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	authorID := c.GetUint("user_id")

	var req services.BlogRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendValidationError(c, "Title and content are required")
		return
	}

	cover, _ := c.FormFile("cover_image")

	blog, err := h.blogService.CreateBlog(authorID, req, cover)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to create blog", err)
		return
	}

	utils.SendSuccess(c, "Blog created successfully", blog)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	blogID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid blog ID")
		return
	}

	var req services.BlogRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendValidationError(c, "Title and content are required")
		return
	}

	cover, _ := c.FormFile("cover_image")

	blog, err := h.blogService.UpdateBlog(blogID, req, cover)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.SendNotFound(c, "Blog not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to update blog", err)
		return
	}

	utils.SendSuccess(c, "Blog updated successfully", blog)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	blogID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid blog ID")
		return
	}

	if err := h.blogService.DeleteBlog(blogID); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			utils.SendNotFound(c, "Blog not found")
			return
		}
		utils.SendInternalError(c, "Failed to delete blog", err)
		return
	}

	utils.SendSuccess(c, "Blog deleted successfully", nil)
}
