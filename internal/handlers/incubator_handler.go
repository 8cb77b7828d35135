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

type IncubatorHandler struct {
	repo *repository.IncubatorRepository
}

func NewIncubatorHandler(db *gorm.DB) *IncubatorHandler {
	return &IncubatorHandler{repo: repository.NewIncubatorRepository(db)}
}

// CreateIncubator godoc
// @Summary Create an incubator
// @Description Create a new incubator listing (admin only)
// @Tags incubators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateIncubatorRequest true "Create incubator request"
// @Success 201 {object} models.Incubator
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/incubators [post]
func (h *IncubatorHandler) CreateIncubator(c *gin.Context) {
	var req models.CreateIncubatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	i := &models.Incubator{
		Name:         req.Name,
		Description:  req.Description,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
		Sectors:      req.Sectors,
		Country:      req.Country,
		City:         req.City,
		AffiliatedTo: req.AffiliatedTo,
		Services:     req.Services,
	}
	if err := h.repo.Create(i); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Incubator with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incubator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, i)
}

// ListIncubators godoc
// @Summary List incubators
// @Description List incubators with optional filtering and pagination
// @Tags incubators
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param sector query string false "Sector filter"
// @Param country query string false "Country filter"
// @Param affiliated_to query string false "Affiliation filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/incubators [get]
func (h *IncubatorHandler) ListIncubators(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.IncubatorFilter{
		Search:       c.Query("search"),
		Sector:       c.Query("sector"),
		Country:      c.Query("country"),
		AffiliatedTo: c.Query("affiliated_to"),
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list incubators", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetIncubator godoc
// @Summary Get incubator by ID
// @Tags incubators
// @Produce json
// @Param id path string true "Incubator ID"
// @Success 200 {object} models.Incubator
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/incubators/{id} [get]
func (h *IncubatorHandler) GetIncubator(c *gin.Context) {
	i, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incubator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get incubator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, i)
}

// UpdateIncubator godoc
// @Summary Update an incubator
// @Description Update an incubator listing (admin only)
// @Tags incubators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incubator ID"
// @Param request body models.UpdateIncubatorRequest true "Update incubator request"
// @Success 200 {object} models.Incubator
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/incubators/{id} [put]
func (h *IncubatorHandler) UpdateIncubator(c *gin.Context) {
	var req models.UpdateIncubatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	i, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incubator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get incubator", "details": err.Error()})
		return
	}

	i.Name = req.Name
	i.Description = req.Description
	i.Website = req.Website
	i.LogoURL = req.LogoURL
	i.Sectors = req.Sectors
	i.Country = req.Country
	i.City = req.City
	i.AffiliatedTo = req.AffiliatedTo
	i.Services = req.Services

	if err := h.repo.Update(i); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incubator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, i)
}

// DeleteIncubator godoc
// @Summary Delete an incubator
// @Description Delete an incubator listing (admin only)
// @Tags incubators
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incubator ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/incubators/{id} [delete]
func (h *IncubatorHandler) DeleteIncubator(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incubator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get incubator", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete incubator", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Incubator deleted successfully"})
}
