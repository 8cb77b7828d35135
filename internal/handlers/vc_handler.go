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

type VCHandler struct {
	repo *repository.VentureCapitalRepository
}

func NewVCHandler(db *gorm.DB) *VCHandler {
	return &VCHandler{repo: repository.NewVentureCapitalRepository(db)}
}

// CreateVentureCapital godoc
// @Summary Create a VC firm
// @Description Create a new venture capital firm listing (admin only)
// @Tags vcs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateVentureCapitalRequest true "Create VC request"
// @Success 201 {object} models.VentureCapital
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/vcs [post]
func (h *VCHandler) CreateVentureCapital(c *gin.Context) {
	var req models.CreateVentureCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	v := &models.VentureCapital{
		Name:         req.Name,
		Description:  req.Description,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
		Sectors:      req.Sectors,
		Stages:       req.Stages,
		Country:      req.Country,
		City:         req.City,
		FundSizeUSD:  req.FundSizeUSD,
		ChequeMinUSD: req.ChequeMinUSD,
		ChequeMaxUSD: req.ChequeMaxUSD,
		PortfolioURL: req.PortfolioURL,
	}
	if err := h.repo.Create(v); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "VC firm with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create VC firm", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, v)
}

// ListVentureCapitals godoc
// @Summary List VC firms
// @Description List venture capital firms with optional filtering and pagination
// @Tags vcs
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param sector query string false "Sector filter"
// @Param stage query string false "Stage filter"
// @Param country query string false "Country filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/vcs [get]
func (h *VCHandler) ListVentureCapitals(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.VentureCapitalFilter{
		Search:  c.Query("search"),
		Sector:  c.Query("sector"),
		Stage:   c.Query("stage"),
		Country: c.Query("country"),
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list VC firms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetVentureCapital godoc
// @Summary Get VC firm by ID
// @Tags vcs
// @Produce json
// @Param id path string true "VC firm ID"
// @Success 200 {object} models.VentureCapital
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/vcs/{id} [get]
func (h *VCHandler) GetVentureCapital(c *gin.Context) {
	v, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "VC firm not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get VC firm", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, v)
}

// UpdateVentureCapital godoc
// @Summary Update a VC firm
// @Description Update a venture capital firm listing (admin only)
// @Tags vcs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "VC firm ID"
// @Param request body models.UpdateVentureCapitalRequest true "Update VC request"
// @Success 200 {object} models.VentureCapital
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/vcs/{id} [put]
func (h *VCHandler) UpdateVentureCapital(c *gin.Context) {
	var req models.UpdateVentureCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	v, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "VC firm not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get VC firm", "details": err.Error()})
		return
	}

	v.Name = req.Name
	v.Description = req.Description
	v.Website = req.Website
	v.LogoURL = req.LogoURL
	v.Sectors = req.Sectors
	v.Stages = req.Stages
	v.Country = req.Country
	v.City = req.City
	v.FundSizeUSD = req.FundSizeUSD
	v.ChequeMinUSD = req.ChequeMinUSD
	v.ChequeMaxUSD = req.ChequeMaxUSD
	v.PortfolioURL = req.PortfolioURL

	if err := h.repo.Update(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update VC firm", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, v)
}

// DeleteVentureCapital godoc
// @Summary Delete a VC firm
// @Description Delete a venture capital firm listing (admin only)
// @Tags vcs
// @Produce json
// @Security BearerAuth
// @Param id path string true "VC firm ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/vcs/{id} [delete]
func (h *VCHandler) DeleteVentureCapital(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "VC firm not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get VC firm", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete VC firm", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "VC firm deleted successfully"})
}
