package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type LessorHandler struct {
	lessorService *services.LessorService
}

func NewLessorHandler(lessorService *services.LessorService) *LessorHandler {
	return &LessorHandler{lessorService: lessorService}
}

// SubmitRequest files a lessor upgrade application. Multipart form:
// text fields plus id_card_front and id_card_back image parts.
func (h *LessorHandler) SubmitRequest(c *gin.Context) {
	actorID := c.GetUint("user_id")

	input := services.LessorRequestInput{
		FullName:    c.PostForm("full_name"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phone_number"),
		DateOfBirth: c.PostForm("date_of_birth"),
	}

	front, _ := c.FormFile("id_card_front")
	back, _ := c.FormFile("id_card_back")

	request, err := h.lessorService.SubmitRequest(actorID, input, front, back)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignInRequired):
			utils.SendUnauthorized(c, err.Error())
		case errors.Is(err, services.ErrRequestPending):
			utils.SendError(c, http.StatusConflict, "Request already pending", err)
		default:
			utils.SendError(c, http.StatusBadRequest, "Failed to submit lessor request", err)
		}
		return
	}

	utils.SendSuccess(c, "Lessor request submitted successfully", request)
}

func (h *LessorHandler) GetOwnRequest(c *gin.Context) {
	actorID := c.GetUint("user_id")

	request, err := h.lessorService.GetOwnRequest(actorID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			utils.SendNotFound(c, "You have not submitted a lessor request")
			return
		}
		utils.SendInternalError(c, "Failed to fetch lessor request", err)
		return
	}

	utils.SendSuccess(c, "Lessor request retrieved successfully", request)
}

func (h *LessorHandler) ListRequests(c *gin.Context) {
	status := c.DefaultQuery("status", "all")

	requests, err := h.lessorService.ListRequests(status)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch lessor requests", err)
		return
	}

	utils.SendSuccess(c, "Lessor requests retrieved successfully", requests)
}

func (h *LessorHandler) ApproveRequest(c *gin.Context) {
	requestID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid request ID")
		return
	}

	request, err := h.lessorService.ApproveRequest(requestID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			utils.SendNotFound(c, "Lessor request not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to approve request", err)
		return
	}

	utils.SendSuccess(c, "Lessor request approved", request)
}

func (h *LessorHandler) RejectRequest(c *gin.Context) {
	requestID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid request ID")
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Rejection reason is required")
		return
	}

	request, err := h.lessorService.RejectRequest(requestID, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			utils.SendNotFound(c, "Lessor request not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to reject request", err)
		return
	}

	utils.SendSuccess(c, "Lessor request rejected", request)
}
