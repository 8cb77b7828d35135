package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type IncubatorRepository struct {
	db *gorm.DB
}

func NewIncubatorRepository(db *gorm.DB) *IncubatorRepository {
	return &IncubatorRepository{db: db}
}

// IncubatorFilter narrows incubator listings
type IncubatorFilter struct {
	Search       string
	Sector       string
	Country      string
	AffiliatedTo string
}

// Create creates a new incubator
func (r *IncubatorRepository) Create(i *models.Incubator) error {
	return r.db.Create(i).Error
}

// GetByID retrieves an incubator by ID
func (r *IncubatorRepository) GetByID(id string) (*models.Incubator, error) {
	var i models.Incubator
	if err := r.db.First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// List returns incubators matching the filter with pagination
func (r *IncubatorRepository) List(filter IncubatorFilter, offset, limit int) ([]models.Incubator, int64, error) {
	query := r.db.Model(&models.Incubator{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Sector != "" {
		query = query.Where("sectors ILIKE ?", "%"+filter.Sector+"%")
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.AffiliatedTo != "" {
		query = query.Where("affiliated_to = ?", filter.AffiliatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Incubator
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates an incubator
func (r *IncubatorRepository) Update(i *models.Incubator) error {
	return r.db.Save(i).Error
}

// Delete deletes an incubator
func (r *IncubatorRepository) Delete(id string) error {
	return r.db.Delete(&models.Incubator{}, "id = ?", id).Error
}
