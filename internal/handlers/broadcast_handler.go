package handlers

import (
	"errors"
	"net/http"

	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/services"
	"github.com/venturescope/venturescope-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BroadcastHandler struct {
	broadcastService *services.BroadcastService
}

func NewBroadcastHandler(broadcastService *services.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{broadcastService: broadcastService}
}

// CreateBroadcast godoc
// @Summary Create and send a WhatsApp broadcast
// @Description Create a broadcast and immediately trigger delivery to active subscriptions. The response returns as soon as the send is accepted; delivery continues in the background (admin only)
// @Tags broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateBroadcastRequest true "Create broadcast request"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/broadcasts [post]
func (h *BroadcastHandler) CreateBroadcast(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	b, response, _, err := h.broadcastService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"broadcast": b, "trigger": response})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create broadcast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"broadcast": b, "trigger": response})
}

// ListBroadcasts godoc
// @Summary List broadcasts
// @Description List broadcasts with pagination (admin only)
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/broadcasts [get]
func (h *BroadcastHandler) ListBroadcasts(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	items, total, err := h.broadcastService.List(utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list broadcasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetBroadcast godoc
// @Summary Get broadcast by ID
// @Description Get a broadcast with its delivery counters (admin only)
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Broadcast ID"
// @Success 200 {object} models.Broadcast
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/broadcasts/{id} [get]
func (h *BroadcastHandler) GetBroadcast(c *gin.Context) {
	b, err := h.broadcastService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Broadcast not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get broadcast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// DeleteBroadcast godoc
// @Summary Delete a broadcast
// @Description Delete a broadcast. Refused while a send is in flight (admin only)
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Broadcast ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/broadcasts/{id} [delete]
func (h *BroadcastHandler) DeleteBroadcast(c *gin.Context) {
	if err := h.broadcastService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Broadcast not found"})
			return
		}
		if errors.Is(err, services.ErrNotSendable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Broadcast is currently sending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete broadcast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Broadcast deleted successfully"})
}
