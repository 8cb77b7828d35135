package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/services/excel"
	"github.com/venturescope/venturescope-backend/internal/utils"
	"github.com/venturescope/venturescope-backend/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// AdminHandler serves the admin console: user management, exports and
// channel health.
type AdminHandler struct {
	userRepo       *repository.UserRepository
	excelService   *excel.Service
	whatsappClient *whatsapp.Client
}

func NewAdminHandler(db *gorm.DB, whatsappClient *whatsapp.Client) *AdminHandler {
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	return &AdminHandler{
		userRepo:       userRepo,
		excelService:   excel.NewExcelService(userRepo, subscriptionRepo),
		whatsappClient: whatsappClient,
	}
}

// ListUsers godoc
// @Summary List users
// @Description List user accounts with optional filtering and pagination (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Email or name search"
// @Param is_active query bool false "Active filter"
// @Param is_verified query bool false "Verified filter"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	filter := repository.UserListFilter{Search: c.Query("search")}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := c.Query("is_verified"); v != "" {
		verified := v == "true"
		filter.IsVerified = &verified
	}

	users, total, err := h.userRepo.List(filter, utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      users,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// SetUserActive godoc
// @Summary Activate or deactivate a user
// @Description Set a user's active flag. Deactivated accounts cannot sign in and are excluded from the newsletter (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.SetUserActiveRequest true "Active status request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id}/status [put]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	var req models.SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if _, err := h.userRepo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user", "details": err.Error()})
		return
	}

	if err := h.userRepo.SetActive(c.Param("id"), req.IsActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status", "details": err.Error()})
		return
	}

	// Deactivation also kills live sessions on next token check.
	if !req.IsActive {
		if err := h.userRepo.IncrementTokenVersion(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate sessions", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated", "is_active": req.IsActive})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Permanently delete a user account (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	callerID := c.MustGet("user_id").(string)
	if callerID == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admins cannot delete their own account"})
		return
	}

	if _, err := h.userRepo.GetByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user", "details": err.Error()})
		return
	}

	if err := h.userRepo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ExportUsers godoc
// @Summary Export users to Excel
// @Description Download every user account as an Excel workbook (admin only)
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/export/users [get]
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	f, filename, err := h.excelService.ExportUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export users", "details": err.Error()})
		return
	}
	defer f.Close()

	writeWorkbook(c, f, filename)
}

// ExportSubscriptions godoc
// @Summary Export WhatsApp subscriptions to Excel
// @Description Download every WhatsApp subscription as an Excel workbook (admin only)
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/export/subscriptions [get]
func (h *AdminHandler) ExportSubscriptions(c *gin.Context) {
	f, filename, err := h.excelService.ExportSubscriptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export subscriptions", "details": err.Error()})
		return
	}
	defer f.Close()

	writeWorkbook(c, f, filename)
}

// WhatsAppStatus godoc
// @Summary WhatsApp channel health
// @Description Query the WhatsApp Cloud API for the configured phone number's status (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} whatsapp.PhoneNumberInfo
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/admin/whatsapp/status [get]
func (h *AdminHandler) WhatsAppStatus(c *gin.Context) {
	info, err := h.whatsappClient.GetPhoneNumberInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query WhatsApp channel", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
