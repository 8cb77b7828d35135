package models

import (
	"time"
)

// WhatsAppSubscription represents an opted-in broadcast recipient. Phone
// numbers are stored normalized (digits with country code) and unique, which
// deduplicates the recipient set at the source.
type WhatsAppSubscription struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Phone       string     `json:"phone" gorm:"type:varchar(20);not null;unique;index"`
	Name        string     `json:"name" gorm:"type:varchar(255)"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	OptOutToken string     `json:"-" gorm:"type:uuid;not null;unique;index"`
	LastSentAt  *time.Time `json:"last_sent_at"`
}

// TableName specifies the table name for the WhatsAppSubscription model
func (WhatsAppSubscription) TableName() string {
	return "whatsapp_subscriptions"
}

// SubscribeWhatsAppRequest represents the public opt-in payload
type SubscribeWhatsAppRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}
