package auth

import (
	"time"

	"github.com/venturescope/venturescope-backend/internal/database/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenCleanupService periodically prunes expired refresh tokens and expired
// OTP codes from storage.
type TokenCleanupService struct {
	refreshTokenRepo *repository.RefreshTokenRepository
	otpRepo          *repository.OTPRepository
	interval         time.Duration
	stopChan         chan bool
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		otpRepo:          repository.NewOTPRepository(db),
		interval:         24 * time.Hour,
		stopChan:         make(chan bool),
	}
}

// Start starts the cleanup service
func (s *TokenCleanupService) Start() {
	go s.run()
	logrus.Info("Token cleanup service started")
}

// Stop stops the cleanup service
func (s *TokenCleanupService) Stop() {
	s.stopChan <- true
	logrus.Info("Token cleanup service stopped")
}

// run runs the cleanup loop
func (s *TokenCleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

// cleanup removes expired and revoked refresh tokens and expired OTP codes
func (s *TokenCleanupService) cleanup() {
	logrus.Info("Starting token cleanup...")

	if err := s.refreshTokenRepo.CleanupTokens(); err != nil {
		logrus.Errorf("Failed to cleanup refresh tokens: %v", err)
	}
	if err := s.otpRepo.DeleteExpired(); err != nil {
		logrus.Errorf("Failed to cleanup OTP codes: %v", err)
	}

	logrus.Info("Token cleanup completed")
}

// SetInterval sets the cleanup interval
func (s *TokenCleanupService) SetInterval(interval time.Duration) {
	s.interval = interval
}
