package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nhatrovn/rental-backend/internal/services"
	"github.com/nhatrovn/rental-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch categories", err)
		return
	}

	utils.SendSuccess(c, "Categories retrieved successfully", categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req services.NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Name is required")
		return
	}

	category, err := h.catalogService.CreateCategory(req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to create category", err)
		return
	}

	utils.SendSuccess(c, "Category created successfully", category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid category ID")
		return
	}

	var req services.NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Name is required")
		return
	}

	category, err := h.catalogService.UpdateCategory(id, req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.SendNotFound(c, "Category not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to update category", err)
		return
	}

	utils.SendSuccess(c, "Category updated successfully", category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.SendNotFound(c, "Category not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to delete category", err)
		return
	}

	utils.SendSuccess(c, "Category deleted successfully", nil)
}

func (h *CatalogHandler) GetAmenities(c *gin.Context) {
	amenities, err := h.catalogService.GetAmenities()
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch amenities", err)
		return
	}

	utils.SendSuccess(c, "Amenities retrieved successfully", amenities)
}

func (h *CatalogHandler) CreateAmenity(c *gin.Context) {
	var req services.NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Name is required")
		return
	}

	amenity, err := h.catalogService.CreateAmenity(req)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to create amenity", err)
		return
	}

	utils.SendSuccess(c, "Amenity created successfully", amenity)
}

func (h *CatalogHandler) UpdateAmenity(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid amenity ID")
		return
	}

	var req services.NamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Name is required")
		return
	}

	amenity, err := h.catalogService.UpdateAmenity(id, req)
	if err != nil {
		if errors.Is(err, services.ErrAmenityNotFound) {
			utils.SendNotFound(c, "Amenity not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to update amenity", err)
		return
	}

	utils.SendSuccess(c, "Amenity updated successfully", amenity)
}

func (h *CatalogHandler) DeleteAmenity(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.SendValidationError(c, "Invalid amenity ID")
		return
	}

	if err := h.catalogService.DeleteAmenity(id); err != nil {
		if errors.Is(err, services.ErrAmenityNotFound) {
			utils.SendNotFound(c, "Amenity not found")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Failed to delete amenity", err)
		return
	}

	utils.SendSuccess(c, "Amenity deleted successfully", nil)
}
