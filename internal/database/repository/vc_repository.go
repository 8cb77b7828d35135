package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type VentureCapitalRepository struct {
	db *gorm.DB
}

func NewVentureCapitalRepository(db *gorm.DB) *VentureCapitalRepository {
	return &VentureCapitalRepository{db: db}
}

// VentureCapitalFilter narrows VC listings
type VentureCapitalFilter struct {
	Search  string
	Sector  string
	Stage   string
	Country string
}

// Create creates a new VC firm
func (r *VentureCapitalRepository) Create(v *models.VentureCapital) error {
	return r.db.Create(v).Error
}

// GetByID retrieves a VC firm by ID
func (r *VentureCapitalRepository) GetByID(id string) (*models.VentureCapital, error) {
	var v models.VentureCapital
	if err := r.db.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns VC firms matching the filter with pagination
func (r *VentureCapitalRepository) List(filter VentureCapitalFilter, offset, limit int) ([]models.VentureCapital, int64, error) {
	query := r.db.Model(&models.VentureCapital{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Sector != "" {
		query = query.Where("sectors ILIKE ?", "%"+filter.Sector+"%")
	}
	if filter.Stage != "" {
		query = query.Where("stages ILIKE ?", "%"+filter.Stage+"%")
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.VentureCapital
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates a VC firm
func (r *VentureCapitalRepository) Update(v *models.VentureCapital) error {
	return r.db.Save(v).Error
}

// Delete deletes a VC firm
func (r *VentureCapitalRepository) Delete(id string) error {
	return r.db.Delete(&models.VentureCapital{}, "id = ?", id).Error
}
