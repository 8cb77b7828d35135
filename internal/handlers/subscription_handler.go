package handlers

import (
	"errors"
	"net/http"

	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/utils"
	"github.com/venturescope/venturescope-backend/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionHandler serves the public opt-in and opt-out surface for both
// channels: WhatsApp subscriptions and the newsletter preference.
type SubscriptionHandler struct {
	subscriptionRepo *repository.SubscriptionRepository
	userRepo         *repository.UserRepository
	whatsappClient   *whatsapp.Client
}

func NewSubscriptionHandler(db *gorm.DB, whatsappClient *whatsapp.Client) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionRepo: repository.NewSubscriptionRepository(db),
		userRepo:         repository.NewUserRepository(db),
		whatsappClient:   whatsappClient,
	}
}

// SubscribeWhatsApp godoc
// @Summary Subscribe to WhatsApp updates
// @Description Opt a phone number in to WhatsApp broadcasts. Numbers are normalized before storage; re-subscribing an opted-out number reactivates it.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body models.SubscribeWhatsAppRequest true "Subscribe request"
// @Success 201 {object} models.WhatsAppSubscription
// @Success 200 {object} models.WhatsAppSubscription
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/whatsapp/subscribe [post]
func (h *SubscriptionHandler) SubscribeWhatsApp(c *gin.Context) {
	var req models.SubscribeWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	phone := h.whatsappClient.FormatNumber(req.Phone)
	if len(phone) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	existing, err := h.subscriptionRepo.GetByPhone(phone)
	if err == nil {
		// Re-subscribing reactivates the existing record.
		existing.IsActive = true
		if req.Name != "" {
			existing.Name = req.Name
		}
		if err := h.subscriptionRepo.Update(existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe", "details": err.Error()})
		return
	}

	sub := &models.WhatsAppSubscription{
		Phone:       phone,
		Name:        req.Name,
		IsActive:    true,
		OptOutToken: uuid.NewString(),
	}
	if err := h.subscriptionRepo.Create(sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// OptOutWhatsApp godoc
// @Summary Opt out of WhatsApp updates
// @Description Deactivate a WhatsApp subscription using the opt-out token embedded in broadcast messages
// @Tags subscriptions
// @Produce json
// @Param token query string true "Opt-out token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/whatsapp/opt-out [get]
func (h *SubscriptionHandler) OptOutWhatsApp(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	sub, err := h.subscriptionRepo.GetByOptOutToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid opt-out token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to opt out", "details": err.Error()})
		return
	}

	if err := h.subscriptionRepo.SetActive(sub.ID, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to opt out", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You will no longer receive WhatsApp updates"})
}

// ListSubscriptions godoc
// @Summary List WhatsApp subscriptions
// @Description List WhatsApp subscriptions with pagination (admin only)
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	items, total, err := h.subscriptionRepo.List(utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subscriptions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// UnsubscribeNewsletter godoc
// @Summary Unsubscribe from the newsletter
// @Description Set the newsletter preference to unsubscribed using the token embedded in every newsletter email
// @Tags subscriptions
// @Produce json
// @Param token query string true "Unsubscribe token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletter/unsubscribe [get]
func (h *SubscriptionHandler) UnsubscribeNewsletter(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	user, err := h.userRepo.GetByUnsubscribeToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid unsubscribe token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe", "details": err.Error()})
		return
	}

	if err := h.userRepo.SetNewsletterPreference(user.ID, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You will no longer receive the newsletter"})
}

// UpdateNewsletterPreference godoc
// @Summary Update newsletter preference
// @Description Set the authenticated user's newsletter preference
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateNewsletterPreferenceRequest true "Preference request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/newsletter/preference [put]
func (h *SubscriptionHandler) UpdateNewsletterPreference(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.UpdateNewsletterPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.userRepo.SetNewsletterPreference(userID, req.Subscribed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preference", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Newsletter preference updated", "subscribed": req.Subscribed})
}
