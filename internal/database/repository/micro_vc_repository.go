package repository

import (
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type MicroVCRepository struct {
	db *gorm.DB
}

func NewMicroVCRepository(db *gorm.DB) *MicroVCRepository {
	return &MicroVCRepository{db: db}
}

// MicroVCFilter narrows micro-VC listings
type MicroVCFilter struct {
	Search  string
	Sector  string
	Stage   string
	Country string
}

// Create creates a new micro-VC fund
func (r *MicroVCRepository) Create(m *models.MicroVC) error {
	return r.db.Create(m).Error
}

// GetByID retrieves a micro-VC fund by ID
func (r *MicroVCRepository) GetByID(id string) (*models.MicroVC, error) {
	var m models.MicroVC
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns micro-VC funds matching the filter with pagination
func (r *MicroVCRepository) List(filter MicroVCFilter, offset, limit int) ([]models.MicroVC, int64, error) {
	query := r.db.Model(&models.MicroVC{})
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

	var items []models.MicroVC
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates a micro-VC fund
func (r *MicroVCRepository) Update(m *models.MicroVC) error {
	return r.db.Save(m).Error
}

// Delete deletes a micro-VC fund
func (r *MicroVCRepository) Delete(id string) error {
	return r.db.Delete(&models.MicroVC{}, "id = ?", id).Error
}
