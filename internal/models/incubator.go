package models

import (
	"time"
)

// Incubator represents a startup incubator listing
type Incubator struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null;unique;index"`
	Description  string    `json:"description" gorm:"type:text"`
	Website      string    `json:"website" gorm:"type:varchar(512)"`
	LogoURL      string    `json:"logo_url" gorm:"type:varchar(512)"`
	Sectors      string    `json:"sectors" gorm:"type:varchar(512);index"`
	Country      string    `json:"country" gorm:"type:varchar(100);index"`
	City         string    `json:"city" gorm:"type:varchar(100)"`
	AffiliatedTo string    `json:"affiliated_to" gorm:"type:varchar(255)"` // university, corporate or independent
	Services     string    `json:"services" gorm:"type:text"`
}

// TableName specifies the table name for the Incubator model
func (Incubator) TableName() string {
	return "incubators"
}

// CreateIncubatorRequest represents the request to create an incubator
type CreateIncubatorRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Website      string `json:"website" binding:"omitempty,url"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	Sectors      string `json:"sectors"`
	Country      string `json:"country"`
	City         string `json:"city"`
	AffiliatedTo string `json:"affiliated_to"`
	Services     string `json:"services"`
}

// UpdateIncubatorRequest represents the request to update an incubator
type UpdateIncubatorRequest = CreateIncubatorRequest
