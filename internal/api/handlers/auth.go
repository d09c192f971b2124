package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.Signup(req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Signup failed", err)
		return
	}

	utils.SendSuccess(c, "User created successfully", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Login failed", err)
		return
	}

	utils.SendSuccess(c, "Login successful", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}

	utils.SendSuccess(c, "Profile retrieved successfully", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.authService.UpdateProfile(userID, req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update profile", err)
		return
	}

	utils.SendSuccess(c, "Profile updated successfully", user)
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID := c.GetUint("user_id")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.SendValidationError(c, "Avatar image is required")
		return
	}

	user, err := h.authService.UpdateAvatar(userID, fileHeader)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update avatar", err)
		return
	}

	utils.SendSuccess(c, "Avatar updated successfully", user)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	response, err := h.authService.RefreshToken(req)
	if err != nil {
		utils.SendUnauthorized(c, "Token refresh failed")
		return
	}

	utils.SendSuccess(c, "Token refreshed successfully", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		utils.SendInternalError(c, "Logout failed", err)
		return
	}

	utils.SendSuccess(c, "Logged out successfully", nil)
}
