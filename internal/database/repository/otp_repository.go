package repository

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create stores a new OTP code
func (r *OTPRepository) Create(otp *models.OTPCode) error {
	return r.db.Create(otp).Error
}

// GetLatestByEmail returns the most recently issued code for an email
func (r *OTPRepository) GetLatestByEmail(email string) (*models.OTPCode, error) {
	var otp models.OTPCode
	err := r.db.Where("email = ?", email).Order("created_at DESC").First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// MarkConsumed stamps a code as used so it cannot be redeemed twice
func (r *OTPRepository) MarkConsumed(id uint) error {
	now := time.Now()
	return r.db.Model(&models.OTPCode{}).Where("id = ?", id).Update("consumed_at", &now).Error
}

// InvalidatePending consumes all outstanding codes for an email, used when a
// fresh code is issued
func (r *OTPRepository) InvalidatePending(email string) error {
	now := time.Now()
	return r.db.Model(&models.OTPCode{}).
		Where("email = ? AND consumed_at IS NULL", email).
		Update("consumed_at", &now).Error
}

// DeleteExpired removes codes past their expiry
func (r *OTPRepository) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.OTPCode{}).Error
}
