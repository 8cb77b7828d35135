package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AngelHandler struct {
	repo *repository.AngelInvestorRepository
}

func NewAngelHandler(db *gorm.DB) *AngelHandler {
	return &AngelHandler{repo: repository.NewAngelInvestorRepository(db)}
}

// CreateAngelInvestor godoc
// @Summary Create an angel investor
// @Description Create a new angel investor listing (admin only)
// @Tags angels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAngelInvestorRequest true "Create angel investor request"
// @Success 201 {object} models.AngelInvestor
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/angels [post]
func (h *AngelHandler) CreateAngelInvestor(c *gin.Context) {
	var req models.CreateAngelInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	if req.ChequeMaxUSD > 0 && req.ChequeMaxUSD < req.ChequeMinUSD {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cheque_max_usd must not be below cheque_min_usd"})
		return
	}

	a := &models.AngelInvestor{
		Name:           req.Name,
		Bio:            req.Bio,
		LinkedInURL:    req.LinkedInURL,
		Sectors:        req.Sectors,
		Country:        req.Country,
		City:           req.City,
		ChequeMinUSD:   req.ChequeMinUSD,
		ChequeMaxUSD:   req.ChequeMaxUSD,
		PortfolioCount: req.PortfolioCount,
	}
	if err := h.repo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create angel investor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListAngelInvestors godoc
// @Summary List angel investors
// @Description List angel investors with optional filtering and pagination
// @Tags angels
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Param sector query string false "Sector filter"
// @Param country query string false "Country filter"
// @Param min_cheque query int false "Minimum cheque size in USD"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/angels [get]
func (h *AngelHandler) ListAngelInvestors(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	filter := repository.AngelInvestorFilter{
		Search:  c.Query("search"),
		Sector:  c.Query("sector"),
		Country: c.Query("country"),
	}
	if v := c.Query("min_cheque"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			filter.MinCheque = parsed
		}
	}

	items, total, err := h.repo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list angel investors", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetAngelInvestor godoc
// @Summary Get angel investor by ID
// @Tags angels
// @Produce json
// @Param id path string true "Angel investor ID"
// @Success 200 {object} models.AngelInvestor
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/angels/{id} [get]
func (h *AngelHandler) GetAngelInvestor(c *gin.Context) {
	a, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Angel investor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get angel investor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// UpdateAngelInvestor godoc
// @Summary Update an angel investor
// @Description Update an angel investor listing (admin only)
// @Tags angels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Angel investor ID"
// @Param request body models.UpdateAngelInvestorRequest true "Update angel investor request"
// @Success 200 {object} models.AngelInvestor
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/angels/{id} [put]
func (h *AngelHandler) UpdateAngelInvestor(c *gin.Context) {
	var req models.UpdateAngelInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	if req.ChequeMaxUSD > 0 && req.ChequeMaxUSD < req.ChequeMinUSD {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cheque_max_usd must not be below cheque_min_usd"})
		return
	}

	a, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Angel investor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get angel investor", "details": err.Error()})
		return
	}

	a.Name = req.Name
	a.Bio = req.Bio
	a.LinkedInURL = req.LinkedInURL
	a.Sectors = req.Sectors
	a.Country = req.Country
	a.City = req.City
	a.ChequeMinUSD = req.ChequeMinUSD
	a.ChequeMaxUSD = req.ChequeMaxUSD
	a.PortfolioCount = req.PortfolioCount

	if err := h.repo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update angel investor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteAngelInvestor godoc
// @Summary Delete an angel investor
// @Description Delete an angel investor listing (admin only)
// @Tags angels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Angel investor ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/angels/{id} [delete]
func (h *AngelHandler) DeleteAngelInvestor(c *gin.Context) {
	if _, err := h.repo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Angel investor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get angel investor", "details": err.Error()})
		return
	}

	if err := h.repo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete angel investor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Angel investor deleted successfully"})
}
