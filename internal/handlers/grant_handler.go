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

type GrantHandler struct {
	repo *repository.GrantRepository
}

func NewGrantHandler(db *gorm.DB) *GrantHandler {
	return &GrantHandler{repo: repository.NewGrantRepository(db)}
}

// CreateGrant godoc
// @Summary Create a grant
// @Description Create a new government grant listing (admin only)
// @Tags grants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateGrantRequest true "Create grant request"
// @Success 201 {object} models.Grant
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/grants [post]
func (h *GrantHandler) CreateGrant(c *gin.Context) {
	var req models.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	g := &models.Grant{
		Name:        req.Name,
		Description: req.Description,
		Agency:      req.Agency,
		Country:     req.Country,
		State:       req.State,
		AmountUSD:   req.AmountUSD,
		Deadline:    req.Deadline,
		Eligibility: req.Eligibility,
		ApplyURL:    req.ApplyURL,
	}
	if err := h.repo.Create(g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Grant with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ListGrants godoc
// @Summary List grants
// @Description List government grants with optional filtering and pagination
// @Tags grants
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param agency query string false "Agency filter"
// @Param country query string false "Country filter"
// @Param open_only query bool false "Only grants with a future or no deadline"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/grants [get]
func (h *GrantHandler) ListGrants(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.GrantFilter{
		Search:   c.Query("search"),
		Agency:   c.Query("agency"),
		Country:  c.Query("country"),
		OpenOnly: c.Query("open_only") == "true",
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list grants", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetGrant godoc
// @Summary Get grant by ID
// @Tags grants
// @Produce json
// @Param id path string true "Grant ID"
// @Success 200 {object} models.Grant
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/grants/{id} [get]
func (h *GrantHandler) GetGrant(c *gin.Context) {
	g, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get grant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, g)
}

// UpdateGrant godoc
// @Summary Update a grant
// @Description Update a government grant listing (admin only)
// @Tags grants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grant ID"
// @Param request body models.UpdateGrantRequest true "Update grant request"
// @Success 200 {object} models.Grant
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/grants/{id} [put]
func (h *GrantHandler) UpdateGrant(c *gin.Context) {
	var req models.UpdateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	g, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get grant", "details": err.Error()})
		return
	}

	g.Name = req.Name
	g.Description = req.Description
	g.Agency = req.Agency
	g.Country = req.Country
	g.State = req.State
	g.AmountUSD = req.AmountUSD
	g.Deadline = req.Deadline
	g.Eligibility = req.Eligibility
	g.ApplyURL = req.ApplyURL

	if err := h.repo.Update(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update grant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, g)
}

// DeleteGrant godoc
// @Summary Delete a grant
// @Description Delete a government grant listing (admin only)
// @Tags grants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/grants/{id} [delete]
func (h *GrantHandler) DeleteGrant(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get grant", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Grant deleted successfully"})
}
