package models

import (
	"time"
)

// OTPCode stores a pending one-time login code. Only the bcrypt hash of the
// code is persisted; codes are single-use and expire after a short window.
type OTPCode struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time  `json:"created_at"`
	Email      string     `json:"email" gorm:"type:varchar(255);not null;index"`
	CodeHash   string     `json:"-" gorm:"type:varchar(255);not null"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null;index"`
	ConsumedAt *time.Time `json:"consumed_at"`
}

// TableName specifies the table name for the OTPCode model
func (OTPCode) TableName() string {
	return "otp_codes"
}

// Usable reports whether the code can still be redeemed.
func (o *OTPCode) Usable(now time.Time) bool {
	return o.ConsumedAt == nil && now.Before(o.ExpiresAt)
}
