package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type NewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Create creates a new newsletter draft
func (r *NewsletterRepository) Create(n *models.Newsletter) error {
	return r.db.Create(n).Error
}

// GetByID retrieves a newsletter by ID
func (r *NewsletterRepository) GetByID(id string) (*models.Newsletter, error) {
	var n models.Newsletter
	if err := r.db.First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns newsletters with pagination, newest first
func (r *NewsletterRepository) List(offset, limit int) ([]models.Newsletter, int64, error) {
	var total int64
	if err := r.db.Model(&models.Newsletter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Newsletter
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates a newsletter
func (r *NewsletterRepository) Update(n *models.Newsletter) error {
	return r.db.Save(n).Error
}

// Delete deletes a newsletter
func (r *NewsletterRepository) Delete(id string) error {
	return r.db.Delete(&models.Newsletter{}, "id = ?", id).Error
}

// MarkSending flips the newsletter into sending with the resolved recipient
// count and zeroed counters.
func (r *NewsletterRepository) MarkSending(id string, recipientCount int) error {
	return r.db.Model(&models.Newsletter{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":          models.CampaignStatusSending,
		"recipient_count": recipientCount,
		"success_count":   0,
		"failure_count":   0,
	}).Error
}

// UpdateProgress persists running counters so pollers observe live progress.
func (r *NewsletterRepository) UpdateProgress(id string, success, failure int) error {
	return r.db.Model(&models.Newsletter{}).Where("id = ?", id).Updates(map[string]interface{}{
		"success_count": success,
		"failure_count": failure,
	}).Error
}

// Finalize records the terminal status together with the final counters.
func (r *NewsletterRepository) Finalize(id string, status models.CampaignStatus, success, failure int) error {
	return r.db.Model(&models.Newsletter{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"success_count": success,
		"failure_count": failure,
	}).Error
}

// FailStuckSending fails every newsletter left in sending, used by the
// startup sweep: in-flight sends do not survive the process.
func (r *NewsletterRepository) FailStuckSending() (int64, error) {
	res := r.db.Model(&models.Newsletter{}).
		Where("status = ?", models.CampaignStatusSending).
		Update("status", models.CampaignStatusFailed)
	return res.RowsAffected, res.Error
}
