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

type MicroVCHandler struct {
	repo *repository.MicroVCRepository
}

func NewMicroVCHandler(db *gorm.DB) *MicroVCHandler {
	return &MicroVCHandler{repo: repository.NewMicroVCRepository(db)}
}

// CreateMicroVC godoc
// @Summary Create a micro-VC fund
// @Description Create a new micro-VC fund listing (admin only)
// @Tags micro-vcs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMicroVCRequest true "Create micro-VC request"
// @Success 201 {object} models.MicroVC
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/micro-vcs [post]
func (h *MicroVCHandler) CreateMicroVC(c *gin.Context) {
	var req models.CreateMicroVCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	m := &models.MicroVC{
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
	}
	if err := h.repo.Create(m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Micro-VC fund with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create micro-VC fund", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ListMicroVCs godoc
// @Summary List micro-VC funds
// @Description List micro-VC funds with optional filtering and pagination
// @Tags micro-vcs
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param sector query string false "Sector filter"
// @Param stage query string false "Stage filter"
// @Param country query string false "Country filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/micro-vcs [get]
func (h *MicroVCHandler) ListMicroVCs(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.MicroVCFilter{
		Search:  c.Query("search"),
		Sector:  c.Query("sector"),
		Stage:   c.Query("stage"),
		Country: c.Query("country"),
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list micro-VC funds", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetMicroVC godoc
// @Summary Get micro-VC fund by ID
// @Tags micro-vcs
// @Produce json
// @Param id path string true "Micro-VC fund ID"
// @Success 200 {object} models.MicroVC
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/micro-vcs/{id} [get]
func (h *MicroVCHandler) GetMicroVC(c *gin.Context) {
	m, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Micro-VC fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get micro-VC fund", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// UpdateMicroVC godoc
// @Summary Update a micro-VC fund
// @Description Update a micro-VC fund listing (admin only)
// @Tags micro-vcs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Micro-VC fund ID"
// @Param request body models.UpdateMicroVCRequest true "Update micro-VC request"
// @Success 200 {object} models.MicroVC
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/micro-vcs/{id} [put]
func (h *MicroVCHandler) UpdateMicroVC(c *gin.Context) {
	var req models.UpdateMicroVCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	m, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Micro-VC fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get micro-VC fund", "details": err.Error()})
		return
	}

	m.Name = req.Name
	m.Description = req.Description
	m.Website = req.Website
	m.LogoURL = req.LogoURL
	m.Sectors = req.Sectors
	m.Stages = req.Stages
	m.Country = req.Country
	m.City = req.City
	m.FundSizeUSD = req.FundSizeUSD
	m.ChequeMinUSD = req.ChequeMinUSD
	m.ChequeMaxUSD = req.ChequeMaxUSD

	if err := h.repo.Update(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update micro-VC fund", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMicroVC godoc
// @Summary Delete a micro-VC fund
// @Description Delete a micro-VC fund listing (admin only)
// @Tags micro-vcs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Micro-VC fund ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/micro-vcs/{id} [delete]
func (h *MicroVCHandler) DeleteMicroVC(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Micro-VC fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get micro-VC fund", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete micro-VC fund", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Micro-VC fund deleted successfully"})
}
