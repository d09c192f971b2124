package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// sendReviewError maps the review service's sentinel errors onto the
// response taxonomy: sign-in prompts, validation failures and missing
// nodes all look different to the client.
func sendReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSignInRequired):
		utils.SendUnauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		utils.SendForbidden(c, err.Error())
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrReplyNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidRating):
		utils.SendValidationError(c, err.Error())
	default:
		utils.SendError(c, http.StatusInternalServerError, "Review operation failed", err)
	}
}

func (h *ReviewHandler) GetPostReviews(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	trees, err := h.reviewService.GetPostReviews(postID)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", trees)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid post ID")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.CreateReview(userID, postID, req)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Review created successfully", review)
}

func (h *ReviewHandler) ReplyToReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, ok := utils.ParseID(c.Param("review_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.reviewService.ReplyToReview(userID, reviewID, req)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reply created successfully", reply)
}

func (h *ReviewHandler) ReplyToReply(c *gin.Context) {
	userID := c.GetUint("user_id")

	replyID, ok := utils.ParseID(c.Param("reply_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid reply ID")
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.reviewService.ReplyToReply(userID, replyID, req)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reply created successfully", reply)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, ok := utils.ParseID(c.Param("review_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req services.UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.UpdateReview(userID, reviewID, req)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Review updated successfully", review)
}

func (h *ReviewHandler) UpdateReply(c *gin.Context) {
	userID := c.GetUint("user_id")

	replyID, ok := utils.ParseID(c.Param("reply_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid reply ID")
		return
	}

	var req services.UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.reviewService.UpdateReply(userID, replyID, req)
	if err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reply updated successfully", reply)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.GetUint("user_id")

	reviewID, ok := utils.ParseID(c.Param("review_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(userID, reviewID); err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Review deleted successfully", nil)
}

func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	userID := c.GetUint("user_id")

	replyID, ok := utils.ParseID(c.Param("reply_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid reply ID")
		return
	}

	if err := h.reviewService.DeleteReply(userID, replyID); err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reply deleted successfully", nil)
}

func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	reviewID, ok := utils.ParseID(c.Param("review_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	if err := h.reviewService.ModerateReview(reviewID, req.Action); err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Review moderated successfully", nil)
}

func (h *ReviewHandler) ModerateReply(c *gin.Context) {
	replyID, ok := utils.ParseID(c.Param("reply_id"))
	if !ok {
		utils.SendValidationError(c, "Invalid reply ID")
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	if err := h.reviewService.ModerateReply(replyID, req.Action); err != nil {
		sendReviewError(c, err)
		return
	}

	utils.SendSuccess(c, "Reply moderated successfully", nil)
}
