package models

import (
	"time"
)

// AngelInvestor represents an individual angel investor listing
type AngelInvestor struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Bio            string    `json:"bio" gorm:"type:text"`
	LinkedInURL    string    `json:"linkedin_url" gorm:"type:varchar(512)"`
	Sectors        string    `json:"sectors" gorm:"type:varchar(512);index"`
	Country        string    `json:"country" gorm:"type:varchar(100);index"`
	City           string    `json:"city" gorm:"type:varchar(100)"`
	ChequeMinUSD   int64     `json:"cheque_min_usd" gorm:"default:0"`
	ChequeMaxUSD   int64     `json:"cheque_max_usd" gorm:"default:0"`
	PortfolioCount int       `json:"portfolio_count" gorm:"default:0"`
}

// TableName specifies the table name for the AngelInvestor model
func (AngelInvestor) TableName() string {
	return "angel_investors"
}

// CreateAngelInvestorRequest represents the request to create an angel investor
type CreateAngelInvestorRequest struct {
	Name           string `json:"name" binding:"required"`
	Bio            string `json:"bio"`
	LinkedInURL    string `json:"linkedin_url" binding:"omitempty,url"`
	Sectors        string `json:"sectors"`
	Country        string `json:"country"`
	City           string `json:"city"`
	ChequeMinUSD   int64  `json:"cheque_min_usd" binding:"omitempty,min=0"`
	ChequeMaxUSD   int64  `json:"cheque_max_usd" binding:"omitempty,min=0"`
	PortfolioCount int    `json:"portfolio_count" binding:"omitempty,min=0"`
}

// UpdateAngelInvestorRequest represents the request to update an angel investor
type UpdateAngelInvestorRequest = CreateAngelInvestorRequest
