package handlers

import (
	"errors"
	"net/http"

	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AcceleratorHandler struct {
	repo *repository.AcceleratorRepository
}

func NewAcceleratorHandler(db *gorm.DB) *AcceleratorHandler {
	return &AcceleratorHandler{repo: repository.NewAcceleratorRepository(db)}
}

// CreateAccelerator godoc
// @Summary Create an accelerator
// @Description Create a new accelerator listing (admin only)
// @Tags accelerators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAcceleratorRequest true "Create accelerator request"
// @Success 201 {object} models.Accelerator
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/accelerators [post]
func (h *AcceleratorHandler) CreateAccelerator(c *gin.Context) {
	var req models.CreateAcceleratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	a := &models.Accelerator{
		Name:            req.Name,
		Description:     req.Description,
		Website:         req.Website,
		LogoURL:         req.LogoURL,
		Sectors:         req.Sectors,
		Country:         req.Country,
		City:            req.City,
		ProgramDuration: req.ProgramDuration,
		EquityPercent:   req.EquityPercent,
		FundingAmount:   req.FundingAmount,
		ApplicationURL:  req.ApplicationURL,
	}
	if err := h.repo.Create(a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Accelerator with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create accelerator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListAccelerators godoc
// @Summary List accelerators
// @Description List accelerators with optional filtering and pagination
// @Tags accelerators
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param sector query string false "Sector filter"
// @Param country query string false "Country filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/accelerators [get]
func (h *AcceleratorHandler) ListAccelerators(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.AcceleratorFilter{
		Search:  c.Query("search"),
		Sector:  c.Query("sector"),
		Country: c.Query("country"),
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accelerators", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetAccelerator godoc
// @Summary Get accelerator by ID
// @Tags accelerators
// @Produce json
// @Param id path string true "Accelerator ID"
// @Success 200 {object} models.Accelerator
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/accelerators/{id} [get]
func (h *AcceleratorHandler) GetAccelerator(c *gin.Context) {
	a, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accelerator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get accelerator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// UpdateAccelerator godoc
// @Summary Update an accelerator
// @Description Update an accelerator listing (admin only)
// @Tags accelerators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Accelerator ID"
// @Param request body models.UpdateAcceleratorRequest true "Update accelerator request"
// @Success 200 {object} models.Accelerator
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/accelerators/{id} [put]
func (h *AcceleratorHandler) UpdateAccelerator(c *gin.Context) {
	var req models.UpdateAcceleratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	a, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accelerator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get accelerator", "details": err.Error()})
		return
	}

	a.Name = req.Name
	a.Description = req.Description
	a.Website = req.Website
	a.LogoURL = req.LogoURL
	a.Sectors = req.Sectors
	a.Country = req.Country
	a.City = req.City
	a.ProgramDuration = req.ProgramDuration
	a.EquityPercent = req.EquityPercent
	a.FundingAmount = req.FundingAmount
	a.ApplicationURL = req.ApplicationURL

	if err := h.repo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accelerator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteAccelerator godoc
// @Summary Delete an accelerator
// @Description Delete an accelerator listing (admin only)
// @Tags accelerators
// @Produce json
// @Security BearerAuth
// @Param id path string true "Accelerator ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/accelerators/{id} [delete]
func (h *AcceleratorHandler) DeleteAccelerator(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accelerator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get accelerator", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete accelerator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Accelerator deleted successfully"})
}
