package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type AcceleratorRepository struct {
	db *gorm.DB
}

func NewAcceleratorRepository(db *gorm.DB) *AcceleratorRepository {
	return &AcceleratorRepository{db: db}
}

// AcceleratorFilter narrows accelerator listings
type AcceleratorFilter struct {
	Search  string
	Sector  string
	Country string
}

// Create creates a new accelerator
func (r *AcceleratorRepository) Create(a *models.Accelerator) error {
	return r.db.Create(a).Error
}

// GetByID retrieves an accelerator by ID
func (r *AcceleratorRepository) GetByID(id string) (*models.Accelerator, error) {
	var a models.Accelerator
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns accelerators matching the filter with pagination
func (r *AcceleratorRepository) List(filter AcceleratorFilter, offset, limit int) ([]models.Accelerator, int64, error) {
	query := r.db.Model(&models.Accelerator{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Sector != "" {
		query = query.Where("sectors ILIKE ?", "%"+filter.Sector+"%")
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Accelerator
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates an accelerator
func (r *AcceleratorRepository) Update(a *models.Accelerator) error {
	return r.db.Save(a).Error
}

// Delete deletes an accelerator
func (r *AcceleratorRepository) Delete(id string) error {
	return r.db.Delete(&models.Accelerator{}, "id = ?", id).Error
}
