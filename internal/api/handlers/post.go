package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) sendPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSignInRequired):
		utils.SendUnauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		utils.SendForbidden(c, err.Error())
	case errors.Is(err, services.ErrPostNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidFilter):
		utils.SendValidationError(c, err.Error())
	default:
		utils.SendInternalError(c, "Something went wrong", err)
	}
}

// GetPosts lists published posts with filters and pagination.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var filter services.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	page, err := h.postService.GetPosts(c.Request.Context(), filter)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Posts retrieved successfully", page)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post retrieved successfully", post)
}

// CreatePost accepts a multipart form: a "data" JSON part with the
// listing fields plus up to ten "images" file parts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	actorID := c.GetUint("user_id")

	var req services.CreatePostRequest
	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			utils.SendValidationError(c, "Invalid listing data")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	if req.Title == "" || req.Address == "" || req.Price <= 0 || req.CategoryID == 0 {
		utils.SendValidationError(c, "Title, address, a positive price and a category are required")
		return
	}

	form, _ := c.MultipartForm()
	var images []*multipart.FileHeader
	if form != nil {
		images = form.File["images"]
	}
	if len(images) > 10 {
		utils.SendValidationError(c, "A listing can have at most 10 images")
		return
	}

	post, err := h.postService.CreatePost(actorID, req, images)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post created successfully", post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	actorID := c.GetUint("user_id")
	isAdmin := c.GetString("user_role") == "admin"

	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	var req services.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	post, err := h.postService.UpdatePost(actorID, isAdmin, postID, req)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	actorID := c.GetUint("user_id")
	isAdmin := c.GetString("user_role") == "admin"

	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	if err := h.postService.DeletePost(actorID, isAdmin, postID); err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post deleted successfully", nil)
}

func (h *PostHandler) SavePost(c *gin.Context) {
	actorID := c.GetUint("user_id")

	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	if err := h.postService.SavePost(actorID, postID); err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post saved successfully", nil)
}

func (h *PostHandler) UnsavePost(c *gin.Context) {
	actorID := c.GetUint("user_id")

	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	if err := h.postService.UnsavePost(actorID, postID); err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Post removed from saved list", nil)
}

func (h *PostHandler) GetSavedPosts(c *gin.Context) {
	actorID := c.GetUint("user_id")

	saved, err := h.postService.GetSavedPosts(actorID)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Saved posts retrieved successfully", saved)
}

// GetMyPosts lists the signed-in lessor's own listings, any status.
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	actorID := c.GetUint("user_id")

	var filter services.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	page, err := h.postService.GetPostsForOwner(c.Request.Context(), actorID, filter)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Posts retrieved successfully", page)
}

func (h *PostHandler) GetPostsForAdmin(c *gin.Context) {
	var filter services.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	page, err := h.postService.GetPostsForAdmin(c.Request.Context(), filter)
	if err != nil {
		h.sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, "Posts retrieved successfully", page)
}

func (h *PostHandler) ModeratePost(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Action is required")
		return
	}

	if err := h.postService.ModeratePost(postID, req.Action); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.SendNotFound(c, err.Error())
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to moderate post", err)
		return
	}

	utils.SendSuccess(c, "Post status updated", nil)
}
