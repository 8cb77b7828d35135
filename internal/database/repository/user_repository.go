package repository

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUnsubscribeToken retrieves a user by their unsubscribe token
func (r *UserRepository) GetByUnsubscribeToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "unsubscribe_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user
func (r *UserRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(id string) error {
	now := time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", &now).Error
}

// IncrementTokenVersion invalidates all outstanding access tokens for a user
func (r *UserRepository) IncrementTokenVersion(id string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

// SetActive sets the user's active flag
func (r *UserRepository) SetActive(id string, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}

// SetNewsletterPreference records an explicit newsletter preference
func (r *UserRepository) SetNewsletterPreference(id string, subscribed bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("newsletter_subscribed", subscribed).Error
}

// UserListFilter narrows admin user listings
type UserListFilter struct {
	IsActive   *bool
	IsVerified *bool
	Search     string
}

// List returns users matching the filter with pagination (admin only)
func (r *UserRepository) List(filter UserListFilter, offset, limit int) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// EligibleNewsletterRecipients returns every verified, active user whose
// newsletter preference is subscribed (a missing preference counts as
// subscribed), in insertion order.
func (r *UserRepository) EligibleNewsletterRecipients() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("is_verified = ? AND is_active = ?", true, true).
		Where("newsletter_subscribed IS NULL OR newsletter_subscribed = ?", true).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

// EligibleNewsletterRecipientsByIDs restricts eligibility to an explicit
// subset. Ineligible IDs are silently dropped.
func (r *UserRepository) EligibleNewsletterRecipientsByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("id IN ?", ids).
		Where("is_verified = ? AND is_active = ?", true, true).
		Where("newsletter_subscribed IS NULL OR newsletter_subscribed = ?", true).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}
