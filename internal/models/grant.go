package models

import (
	"time"
)

// Grant represents a government grant or public funding scheme listing
type Grant struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null;unique;index"`
	Description string     `json:"description" gorm:"type:text"`
	Agency      string     `json:"agency" gorm:"type:varchar(255);index"`
	Country     string     `json:"country" gorm:"type:varchar(100);index"`
	State       string     `json:"state" gorm:"type:varchar(100)"`
	AmountUSD   int64      `json:"amount_usd" gorm:"default:0"`
	Deadline    *time.Time `json:"deadline" gorm:"index"`
	Eligibility string     `json:"eligibility" gorm:"type:text"`
	ApplyURL    string     `json:"apply_url" gorm:"type:varchar(512)"`
}

// TableName specifies the table name for the Grant model
func (Grant) TableName() string {
	return "grants"
}

// CreateGrantRequest represents the request to create a grant listing
type CreateGrantRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Agency      string     `json:"agency"`
	Country     string     `json:"country"`
	State       string     `json:"state"`
	AmountUSD   int64      `json:"amount_usd" binding:"omitempty,min=0"`
	Deadline    *time.Time `json:"deadline"`
	Eligibility string     `json:"eligibility"`
	ApplyURL    string     `json:"apply_url" binding:"omitempty,url"`
}

// UpdateGrantRequest represents the request to update a grant listing
type UpdateGrantRequest = CreateGrantRequest
