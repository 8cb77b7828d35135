package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/services"
	"github.com/venturescope/venturescope-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NewsletterHandler struct {
	newsletterService *services.NewsletterService
}

func NewNewsletterHandler(newsletterService *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// CreateNewsletter godoc
// @Summary Create a newsletter draft
// @Description Create a newsletter draft (admin only)
// @Tags newsletters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateNewsletterRequest true "Create newsletter request"
// @Success 201 {object} models.Newsletter
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters [post]
func (h *NewsletterHandler) CreateNewsletter(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	n, err := h.newsletterService.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create newsletter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, n)
}

// ListNewsletters godoc
// @Summary List newsletters
// @Description List newsletters with pagination (admin only)
// @Tags newsletters
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters [get]
func (h *NewsletterHandler) ListNewsletters(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	items, total, err := h.newsletterService.List(utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list newsletters", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetNewsletter godoc
// @Summary Get newsletter by ID
// @Description Get a newsletter with its delivery counters (admin only)
// @Tags newsletters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Newsletter ID"
// @Success 200 {object} models.Newsletter
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters/{id} [get]
func (h *NewsletterHandler) GetNewsletter(c *gin.Context) {
	n, err := h.newsletterService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Newsletter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get newsletter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, n)
}

// UpdateNewsletter godoc
// @Summary Update a newsletter draft
// @Description Update a newsletter draft. Only drafts are editable (admin only)
// @Tags newsletters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Newsletter ID"
// @Param request body models.UpdateNewsletterRequest true "Update newsletter request"
// @Success 200 {object} models.Newsletter
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters/{id} [put]
func (h *NewsletterHandler) UpdateNewsletter(c *gin.Context) {
	var req models.UpdateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	n, err := h.newsletterService.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Newsletter not found"})
			return
		}
		if errors.Is(err, services.ErrNotSendable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only draft newsletters can be edited"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update newsletter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, n)
}

// DeleteNewsletter godoc
// @Summary Delete a newsletter
// @Description Delete a newsletter. Refused while a send is in flight (admin only)
// @Tags newsletters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Newsletter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters/{id} [delete]
func (h *NewsletterHandler) DeleteNewsletter(c *gin.Context) {
	if err := h.newsletterService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Newsletter not found"})
			return
		}
		if errors.Is(err, services.ErrNotSendable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Newsletter is currently sending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete newsletter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Newsletter deleted successfully"})
}

// SendNewsletter godoc
// @Summary Send a newsletter
// @Description Trigger delivery of a draft newsletter. The response returns as soon as the send is accepted; delivery continues in the background and progress is observed by polling the newsletter record (admin only)
// @Tags newsletters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Newsletter ID"
// @Param request body models.SendNewsletterRequest false "Optional recipient subset"
// @Success 202 {object} models.TriggerResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} models.TriggerResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletters/{id}/send [post]
func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	var req models.SendNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Only an absent body targets every eligible subscriber. A body that
		// fails to bind must not widen the audience.
		if !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
			return
		}
		req = models.SendNewsletterRequest{}
	}

	response, _, err := h.newsletterService.Send(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Newsletter not found"})
			return
		}
		if errors.Is(err, services.ErrNotSendable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only draft newsletters can be sent"})
			return
		}
		if errors.Is(err, services.ErrNoRecipients) {
			c.JSON(http.StatusUnprocessableEntity, response)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send newsletter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, response)
}
