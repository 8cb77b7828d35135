package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type AngelInvestorRepository struct {
	db *gorm.DB
}

func NewAngelInvestorRepository(db *gorm.DB) *AngelInvestorRepository {
	return &AngelInvestorRepository{db: db}
}

// AngelInvestorFilter narrows angel investor listings
type AngelInvestorFilter struct {
	Search    string
	Sector    string
	Country   string
	MinCheque int64
}

// Create creates a new angel investor
func (r *AngelInvestorRepository) Create(a *models.AngelInvestor) error {
	return r.db.Create(a).Error
}

// GetByID retrieves an angel investor by ID
func (r *AngelInvestorRepository) GetByID(id string) (*models.AngelInvestor, error) {
	var a models.AngelInvestor
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns angel investors matching the filter with pagination
func (r *AngelInvestorRepository) List(filter AngelInvestorFilter, offset, limit int) ([]models.AngelInvestor, int64, error) {
	query := r.db.Model(&models.AngelInvestor{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Sector != "" {
		query = query.Where("sectors ILIKE ?", "%"+filter.Sector+"%")
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.MinCheque > 0 {
		query = query.Where("cheque_max_usd >= ?", filter.MinCheque)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.AngelInvestor
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates an angel investor
func (r *AngelInvestorRepository) Update(a *models.AngelInvestor) error {
	return r.db.Save(a).Error
}

// Delete deletes an angel investor
func (r *AngelInvestorRepository) Delete(id string) error {
	return r.db.Delete(&models.AngelInvestor{}, "id = ?", id).Error
}
