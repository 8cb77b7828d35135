package models

import (
	"time"
)

// User represents a platform account. Accounts are created on first OTP
// request or first Google sign-in and become addressable for the newsletter
// once verified.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	// GoogleID is set when the account was linked through Google OAuth.
	GoogleID   string `json:"-" gorm:"type:varchar(255);index"`
	IsVerified bool   `json:"is_verified" gorm:"default:false;index"`
	IsActive   bool   `json:"is_active" gorm:"default:true;index"`
	IsAdmin    bool   `json:"is_admin" gorm:"default:false;index"`
	// NewsletterSubscribed is tri-state: nil means the user never expressed a
	// preference and counts as subscribed.
	NewsletterSubscribed *bool      `json:"newsletter_subscribed" gorm:"index"`
	UnsubscribeToken     string     `json:"-" gorm:"type:uuid;not null;unique;index"`
	LastLoginAt          *time.Time `json:"last_login_at"`
	TokenVersion         uint       `json:"token_version" gorm:"default:0"`
	// Relationships
	RefreshTokens []RefreshToken `json:"refresh_tokens,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// SubscribedToNewsletter reports whether the user currently receives the
// newsletter. A missing preference defaults to subscribed.
func (u *User) SubscribedToNewsletter() bool {
	return u.NewsletterSubscribed == nil || *u.NewsletterSubscribed
}
