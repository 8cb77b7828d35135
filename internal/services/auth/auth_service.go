package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/venturescope/venturescope-backend/internal/config"
	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/models"
	"github.com/venturescope/venturescope-backend/internal/utils"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	otpTTL         = 10 * time.Minute
	googleIssuer   = "https://accounts.google.com"
	tokenIssuer    = "venturescope-backend"
	otpMailSubject = "Your VentureScope login code"
)

var (
	// ErrAccountDeactivated is returned for logins against a disabled account.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrInvalidCode is returned when an OTP code cannot be redeemed.
	ErrInvalidCode = errors.New("invalid or expired code")
	// ErrGoogleDisabled is returned when Google sign-in is not configured.
	ErrGoogleDisabled = errors.New("google sign-in is not configured")
)

type AuthService struct {
	userRepo         *repository.UserRepository
	otpRepo          *repository.OTPRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	mailSender       dispatch.Sender
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	oauthConfig      *oauth2.Config
	idTokenVerifier  *oidc.IDTokenVerifier
}

func NewAuthService(db *gorm.DB, jwtCfg config.JWTConfig, googleCfg config.GoogleConfig, mailSender dispatch.Sender) *AuthService {
	s := &AuthService{
		userRepo:         repository.NewUserRepository(db),
		otpRepo:          repository.NewOTPRepository(db),
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		mailSender:       mailSender,
		jwtSecret:        []byte(jwtCfg.Secret),
		accessTokenTTL:   jwtCfg.AccessTokenTTL,
		refreshTokenTTL:  jwtCfg.RefreshTokenTTL,
	}

	logrus.Infof("Access token TTL: %s", jwtCfg.AccessTokenTTL)
	logrus.Infof("Refresh token TTL: %s", jwtCfg.RefreshTokenTTL)

	if googleCfg.ClientID != "" {
		provider, err := oidc.NewProvider(context.Background(), googleIssuer)
		if err != nil {
			logrus.Warnf("Google sign-in disabled, provider discovery failed: %v", err)
		} else {
			s.oauthConfig = &oauth2.Config{
				ClientID:     googleCfg.ClientID,
				ClientSecret: googleCfg.ClientSecret,
				RedirectURL:  googleCfg.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			}
			s.idTokenVerifier = provider.Verifier(&oidc.Config{ClientID: googleCfg.ClientID})
		}
	}

	return s
}

// RequestOTP issues a login code for an email address. The account is created
// unverified on first contact; the code itself is only stored hashed.
func (s *AuthService) RequestOTP(ctx context.Context, req *models.RequestOTPRequest) error {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		user = &models.User{
			Email:            req.Email,
			FullName:         req.FullName,
			IsActive:         true,
			UnsubscribeToken: uuid.NewString(),
		}
		if err := s.userRepo.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	}

	if !user.IsActive {
		return ErrAccountDeactivated
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	// A fresh code supersedes any outstanding one.
	if err := s.otpRepo.InvalidatePending(req.Email); err != nil {
		return fmt.Errorf("failed to invalidate pending codes: %w", err)
	}
	if err := s.otpRepo.Create(&models.OTPCode{
		Email:     req.Email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(otpTTL),
	}); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if _, err := s.mailSender.Send(ctx, req.Email, dispatch.Message{
		Subject: otpMailSubject,
		Body:    otpMailBody(user.FullName, code),
	}); err != nil {
		return fmt.Errorf("failed to send login code: %w", err)
	}
	return nil
}

// VerifyOTP redeems a login code and returns a token pair. A successful
// verification marks the account verified, which makes it addressable for the
// newsletter.
func (s *AuthService) VerifyOTP(req *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCode
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	otp, err := s.otpRepo.GetLatestByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCode
	}
	if !otp.Usable(time.Now()) {
		return nil, ErrInvalidCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(req.Code)); err != nil {
		return nil, ErrInvalidCode
	}

	// Single use.
	if err := s.otpRepo.MarkConsumed(otp.ID); err != nil {
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to mark user verified: %w", err)
		}
	}
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logrus.Warnf("Failed to update last login for %s: %v", user.ID, err)
	}

	return s.generateAuthResponse(user)
}

// GoogleLogin exchanges a Google authorization code, verifies the resulting
// ID token and signs the account in, creating it verified on first contact.
func (s *AuthService) GoogleLogin(ctx context.Context, req *models.GoogleLoginRequest) (*models.AuthResponse, error) {
	if s.oauthConfig == nil {
		return nil, ErrGoogleDisabled
	}

	cfg := *s.oauthConfig
	if req.RedirectURI != "" {
		cfg.RedirectURL = req.RedirectURI
	}

	token, err := cfg.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("token response missing id_token")
	}
	idToken, err := s.idTokenVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, errors.New("google account email is not verified")
	}

	user, err := s.userRepo.GetByEmail(claims.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		user = &models.User{
			Email:            claims.Email,
			FullName:         claims.Name,
			GoogleID:         idToken.Subject,
			IsVerified:       true,
			IsActive:         true,
			UnsubscribeToken: uuid.NewString(),
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		if !user.IsActive {
			return nil, ErrAccountDeactivated
		}
		changed := false
		if user.GoogleID == "" {
			user.GoogleID = idToken.Subject
			changed = true
		}
		if !user.IsVerified {
			user.IsVerified = true
			changed = true
		}
		if user.FullName == "" && claims.Name != "" {
			user.FullName = claims.Name
			changed = true
		}
		if changed {
			if err := s.userRepo.Update(user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logrus.Warnf("Failed to update last login for %s: %v", user.ID, err)
	}

	return s.generateAuthResponse(user)
}

// RefreshToken rotates a refresh token into a fresh token pair
func (s *AuthService) RefreshToken(refreshTokenStr string) (*models.AuthResponse, error) {
	refreshToken, err := s.refreshTokenRepo.GetByToken(refreshTokenStr)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if refreshToken.ExpiresAt.Before(time.Now()) {
		s.refreshTokenRepo.RevokeToken(refreshTokenStr)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(refreshToken.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	// Rotation: the used token is revoked before the new pair is issued.
	if err := s.refreshTokenRepo.RevokeToken(refreshTokenStr); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.generateAuthResponse(user)
}

// Logout revokes a single refresh token, or every session when none is given
func (s *AuthService) Logout(refreshTokenStr string, userID string) error {
	if refreshTokenStr != "" {
		return s.refreshTokenRepo.RevokeToken(refreshTokenStr)
	}
	if err := s.userRepo.IncrementTokenVersion(userID); err != nil {
		return fmt.Errorf("failed to increment token version: %w", err)
	}
	if err := s.refreshTokenRepo.RevokeAllUserTokens(userID); err != nil {
		return fmt.Errorf("failed to revoke all refresh tokens: %w", err)
	}
	return nil
}

// ValidateToken validates and parses a JWT access token
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*models.JWTClaims); ok && token.Valid {
		user, err := s.userRepo.GetByID(claims.UserID)
		if err != nil {
			return nil, errors.New("user not found")
		}
		if !user.IsActive {
			return nil, ErrAccountDeactivated
		}
		if claims.TokenVersion != user.TokenVersion {
			return nil, errors.New("token version mismatch")
		}

		return &models.TokenInfo{
			UserID:       claims.UserID,
			Email:        claims.Email,
			TokenVersion: claims.TokenVersion,
			ExpiresAt:    claims.ExpiresAt.Time,
		}, nil
	}

	return nil, errors.New("invalid token claims")
}

// GetUserByID loads a user record for an authenticated request
func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// generateAuthResponse generates access and refresh tokens for a user
func (s *AuthService) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

// generateAccessToken generates a JWT access token
func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := &models.JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// generateRefreshToken generates a refresh token and stores it in the database
func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(32)
	if err != nil {
		return "", err
	}

	refreshToken := &models.RefreshToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
		IsRevoked: false,
	}
	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return token, nil
}

func otpMailBody(name, code string) string {
	greeting := "Hi there,"
	if name != "" {
		greeting = "Hi " + name + ","
	}
	return fmt.Sprintf(
		`<p>%s</p><p>Your VentureScope login code is:</p><p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p><p>The code expires in %d minutes. If you did not request it you can ignore this email.</p>`,
		greeting, code, int(otpTTL.Minutes()),
	)
}
