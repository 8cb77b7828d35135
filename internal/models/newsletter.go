package models

import (
	"time"
)

// Newsletter represents one email campaign. Counters are mutated only by the
// dispatch loop while the newsletter is sending; success + failure never
// exceeds RecipientCount and equals it once the status is terminal.
type Newsletter struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Subject        string         `json:"subject" gorm:"type:varchar(500);not null"`
	BodyHTML       string         `json:"body_html" gorm:"type:text;not null"`
	InitiatorID    string         `json:"initiator_id" gorm:"type:uuid;index"`
	Status         CampaignStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	RecipientCount int            `json:"recipient_count" gorm:"default:0"`
	SuccessCount   int            `json:"success_count" gorm:"default:0"`
	FailureCount   int            `json:"failure_count" gorm:"default:0"`
	// Relationships
	Initiator User `json:"initiator,omitempty" gorm:"foreignKey:InitiatorID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Newsletter model
func (Newsletter) TableName() string {
	return "newsletters"
}

// CreateNewsletterRequest represents the request to create a newsletter draft
type CreateNewsletterRequest struct {
	Subject  string `json:"subject" binding:"required"`
	BodyHTML string `json:"body_html" binding:"required"`
}

// UpdateNewsletterRequest represents the request to update a newsletter draft
type UpdateNewsletterRequest = CreateNewsletterRequest

// SendNewsletterRequest optionally limits the send to an explicit user subset.
// An empty list means every eligible subscriber.
type SendNewsletterRequest struct {
	UserIDs []string `json:"user_ids,omitempty"`
}

// TriggerResponse is returned by send endpoints: the request is accepted and
// delivery continues in the background. Final counters are observed by
// re-polling the campaign record.
type TriggerResponse struct {
	Accepted       bool   `json:"accepted"`
	RecipientCount int    `json:"recipient_count"`
	Message        string `json:"message,omitempty"`
}
