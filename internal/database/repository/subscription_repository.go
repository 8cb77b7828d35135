package repository

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new WhatsApp subscription
func (r *SubscriptionRepository) Create(s *models.WhatsAppSubscription) error {
	return r.db.Create(s).Error
}

// GetByPhone retrieves a subscription by normalized phone number
func (r *SubscriptionRepository) GetByPhone(phone string) (*models.WhatsAppSubscription, error) {
	var s models.WhatsAppSubscription
	if err := r.db.First(&s, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByOptOutToken retrieves a subscription by its opt-out token
func (r *SubscriptionRepository) GetByOptOutToken(token string) (*models.WhatsAppSubscription, error) {
	var s models.WhatsAppSubscription
	if err := r.db.First(&s, "opt_out_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Update updates a subscription
func (r *SubscriptionRepository) Update(s *models.WhatsAppSubscription) error {
	return r.db.Save(s).Error
}

// SetActive sets the subscription's active flag
func (r *SubscriptionRepository) SetActive(id string, active bool) error {
	return r.db.Model(&models.WhatsAppSubscription{}).Where("id = ?", id).
		Update("is_active", active).Error
}

// StampLastSent records a successful broadcast delivery to this subscription
func (r *SubscriptionRepository) StampLastSent(id string) error {
	now := time.Now()
	return r.db.Model(&models.WhatsAppSubscription{}).Where("id = ?", id).
		Update("last_sent_at", &now).Error
}

// List returns subscriptions with pagination in storage order (admin only)
func (r *SubscriptionRepository) List(offset, limit int) ([]models.WhatsAppSubscription, int64, error) {
	var total int64
	if err := r.db.Model(&models.WhatsAppSubscription{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.WhatsAppSubscription
	err := r.db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// ActiveSubscriptions returns every active subscription in storage order.
func (r *SubscriptionRepository) ActiveSubscriptions() ([]models.WhatsAppSubscription, error) {
	var items []models.WhatsAppSubscription
	err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&items).Error
	return items, err
}

// ActiveSubscriptionsByIDs restricts to an explicit subset, dropping inactive
// entries silently.
func (r *SubscriptionRepository) ActiveSubscriptionsByIDs(ids []string) ([]models.WhatsAppSubscription, error) {
	var items []models.WhatsAppSubscription
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).
		Order("created_at ASC").Find(&items).Error
	return items, err
}
