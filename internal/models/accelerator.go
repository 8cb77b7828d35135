package models

import (
	"time"
)

// Accelerator represents a startup accelerator program listing
type Accelerator struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null;unique;index"`
	Description     string    `json:"description" gorm:"type:text"`
	Website         string    `json:"website" gorm:"type:varchar(512)"`
	LogoURL         string    `json:"logo_url" gorm:"type:varchar(512)"`
	Sectors         string    `json:"sectors" gorm:"type:varchar(512);index"`
	Country         string    `json:"country" gorm:"type:varchar(100);index"`
	City            string    `json:"city" gorm:"type:varchar(100)"`
	ProgramDuration string    `json:"program_duration" gorm:"type:varchar(100)"`
	EquityPercent   float64   `json:"equity_percent" gorm:"default:0"`
	FundingAmount   string    `json:"funding_amount" gorm:"type:varchar(100)"`
	ApplicationURL  string    `json:"application_url" gorm:"type:varchar(512)"`
}

// TableName specifies the table name for the Accelerator model
func (Accelerator) TableName() string {
	return "accelerators"
}

// CreateAcceleratorRequest represents the request to create an accelerator
type CreateAcceleratorRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Website         string  `json:"website" binding:"omitempty,url"`
	LogoURL         string  `json:"logo_url" binding:"omitempty,url"`
	Sectors         string  `json:"sectors"`
	Country         string  `json:"country"`
	City            string  `json:"city"`
	ProgramDuration string  `json:"program_duration"`
	EquityPercent   float64 `json:"equity_percent" binding:"omitempty,min=0,max=100"`
	FundingAmount   string  `json:"funding_amount"`
	ApplicationURL  string  `json:"application_url" binding:"omitempty,url"`
}

// UpdateAcceleratorRequest represents the request to update an accelerator
type UpdateAcceleratorRequest = CreateAcceleratorRequest
