package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RequestOTPRequest represents the email OTP request payload
type RequestOTPRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name,omitempty"`
}

// VerifyOTPRequest represents the email OTP verification payload
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// GoogleLoginRequest carries the authorization code returned by Google
type GoogleLoginRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

// RefreshTokenRequest represents the refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// JWTClaims represents the JWT claims
type JWTClaims struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint   `json:"token_version"`
	jwt.RegisteredClaims
}

// TokenInfo represents validated token information
type TokenInfo struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	TokenVersion uint      `json:"token_version"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SetUserActiveRequest represents a request to set user active status
type SetUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// UpdateNewsletterPreferenceRequest toggles the caller's newsletter preference
type UpdateNewsletterPreferenceRequest struct {
	Subscribed bool `json:"subscribed"`
}
