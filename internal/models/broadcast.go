package models

import (
	"time"
)

// Broadcast represents one WhatsApp campaign. Unlike newsletters there is no
// draft stage: creating a broadcast triggers it, so records enter storage
// already in sending.
type Broadcast struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Message        string         `json:"message" gorm:"type:text;not null"`
	InitiatorID    string         `json:"initiator_id" gorm:"type:uuid;index"`
	Status         CampaignStatus `json:"status" gorm:"type:varchar(20);default:'sending';index"`
	RecipientCount int            `json:"recipient_count" gorm:"default:0"`
	SuccessCount   int            `json:"success_count" gorm:"default:0"`
	FailureCount   int            `json:"failure_count" gorm:"default:0"`
	// Relationships
	Initiator User `json:"initiator,omitempty" gorm:"foreignKey:InitiatorID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Broadcast model
func (Broadcast) TableName() string {
	return "broadcasts"
}

// CreateBroadcastRequest creates and immediately triggers a broadcast. An
// empty SubscriptionIDs list targets every active subscription.
type CreateBroadcastRequest struct {
	Message         string   `json:"message" binding:"required"`
	SubscriptionIDs []string `json:"subscription_ids,omitempty"`
}
