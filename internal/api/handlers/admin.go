package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch dashboard stats", err)
		return
	}

	utils.SendSuccess(c, "Dashboard stats retrieved successfully", stats)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.GetUsers()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch users", err)
		return
	}

	utils.SendSuccess(c, "Users retrieved successfully", users)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Role is required")
		return
	}

	user, err := h.adminService.UpdateUserRole(userID, req.Role)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to update user role", err)
		return
	}

	utils.SendSuccess(c, "User role updated successfully", user)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	userID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid user ID")
		return
	}

	if err := h.adminService.DeactivateUser(userID); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to deactivate user", err)
		return
	}

	utils.SendSuccess(c, "User deactivated successfully", nil)
}
