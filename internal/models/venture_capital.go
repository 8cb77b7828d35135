package models

import (
	"time"
)

// VentureCapital represents a VC firm listing
type VentureCapital struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null;unique;index"`
	Description  string    `json:"description" gorm:"type:text"`
	Website      string    `json:"website" gorm:"type:varchar(512)"`
	LogoURL      string    `json:"logo_url" gorm:"type:varchar(512)"`
	Sectors      string    `json:"sectors" gorm:"type:varchar(512);index"`
	Stages       string    `json:"stages" gorm:"type:varchar(255);index"` // seed, series_a, growth...
	Country      string    `json:"country" gorm:"type:varchar(100);index"`
	City         string    `json:"city" gorm:"type:varchar(100)"`
	FundSizeUSD  int64     `json:"fund_size_usd" gorm:"default:0"`
	ChequeMinUSD int64     `json:"cheque_min_usd" gorm:"default:0"`
	ChequeMaxUSD int64     `json:"cheque_max_usd" gorm:"default:0"`
	PortfolioURL string    `json:"portfolio_url" gorm:"type:varchar(512)"`
}

// TableName specifies the table name for the VentureCapital model
func (VentureCapital) TableName() string {
	return "venture_capitals"
}

// CreateVentureCapitalRequest represents the request to create a VC firm
type CreateVentureCapitalRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Website      string `json:"website" binding:"omitempty,url"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	Sectors      string `json:"sectors"`
	Stages       string `json:"stages"`
	Country      string `json:"country"`
	City         string `json:"city"`
	FundSizeUSD  int64  `json:"fund_size_usd" binding:"omitempty,min=0"`
	ChequeMinUSD int64  `json:"cheque_min_usd" binding:"omitempty,min=0"`
	ChequeMaxUSD int64  `json:"cheque_max_usd" binding:"omitempty,min=0"`
	PortfolioURL string `json:"portfolio_url" binding:"omitempty,url"`
}

// UpdateVentureCapitalRequest represents the request to update a VC firm
type UpdateVentureCapitalRequest = CreateVentureCapitalRequest
