package repository

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// GrantFilter narrows grant listings
type GrantFilter struct {
	Search   string
	Agency   string
	Country  string
	OpenOnly bool
}

// Create creates a new grant listing
func (r *GrantRepository) Create(g *models.Grant) error {
	return r.db.Create(g).Error
}

// GetByID retrieves a grant by ID
func (r *GrantRepository) GetByID(id string) (*models.Grant, error) {
	var g models.Grant
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns grants matching the filter with pagination
func (r *GrantRepository) List(filter GrantFilter, offset, limit int) ([]models.Grant, int64, error) {
	query := r.db.Model(&models.Grant{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Agency != "" {
		query = query.Where("agency = ?", filter.Agency)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.OpenOnly {
		query = query.Where("deadline IS NULL OR deadline >= ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Grant
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Update updates a grant listing
func (r *GrantRepository) Update(g *models.Grant) error {
	return r.db.Save(g).Error
}

// Delete deletes a grant listing
func (r *GrantRepository) Delete(id string) error {
	return r.db.Delete(&models.Grant{}, "id = ?", id).Error
}
