package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type BroadcastRepository struct {
	db *gorm.DB
}

func NewBroadcastRepository(db *gorm.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

// Create creates a new broadcast record
func (r *BroadcastRepository) Create(b *models.Broadcast) error {
	return r.db.Create(b).Error
}

// GetByID retrieves a broadcast by ID
func (r *BroadcastRepository) GetByID(id string) (*models.Broadcast, error) {
	var b models.Broadcast
	if err := r.db.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns broadcasts with pagination, newest first
func (r *BroadcastRepository) List(offset, limit int) ([]models.Broadcast, int64, error) {
	var total int64
	if err := r.db.Model(&models.Broadcast{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Broadcast
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Delete deletes a broadcast
func (r *BroadcastRepository) Delete(id string) error {
	return r.db.Delete(&models.Broadcast{}, "id = ?", id).Error
}

// UpdateProgress persists running counters so pollers observe live progress.
func (r *BroadcastRepository) UpdateProgress(id string, success, failure int) error {
	return r.db.Model(&models.Broadcast{}).Where("id = ?", id).Updates(map[string]interface{}{
		"success_count": success,
		"failure_count": failure,
	}).Error
}

// Finalize records the terminal status together with the final counters.
func (r *BroadcastRepository) Finalize(id string, status models.CampaignStatus, success, failure int) error {
	return r.db.Model(&models.Broadcast{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"success_count": success,
		"failure_count": failure,
	}).Error
}

// FailStuckSending fails every broadcast left in sending, used by the
// startup sweep.
func (r *BroadcastRepository) FailStuckSending() (int64, error) {
	res := r.db.Model(&models.Broadcast{}).
		Where("status = ?", models.CampaignStatusSending).
		Update("status", models.CampaignStatusFailed)
	return res.RowsAffected, res.Error
}
