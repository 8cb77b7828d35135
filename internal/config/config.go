package config

import (
	"fmt"
	"os"
	"time"
)

// Config collects every setting the server needs. It is read from the
// environment exactly once in Load; adapters and services receive their
// sections at construction time and never consult the environment themselves.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailer   MailerConfig
	WhatsApp WhatsAppConfig
	Google   GoogleConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     string
	BasePath string
	LogLevel string
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// JWTConfig holds token issuance settings
type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// MailerConfig holds the transactional email provider settings
type MailerConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	FromName    string
	// PublicBaseURL is used to build unsubscribe links in outbound email.
	PublicBaseURL string
}

// WhatsAppConfig holds the WhatsApp Cloud API settings
type WhatsAppConfig struct {
	BaseURL       string
	AccessToken   string
	PhoneNumberID string
	// CountryCode is prepended to bare 10-digit numbers on normalization.
	CountryCode string
}

// GoogleConfig holds Google OAuth settings
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// AdminConfig holds bootstrap admin settings used by the seeder
type AdminConfig struct {
	Email string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			BasePath: getEnv("BASE_PATH", "/api/v1"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
			AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Mailer: MailerConfig{
			BaseURL:       getEnv("MAIL_API_BASE_URL", "https://api.resend.com"),
			APIKey:        os.Getenv("MAIL_API_KEY"),
			FromAddress:   getEnv("MAIL_FROM_ADDRESS", "no-reply@venturescope.io"),
			FromName:      getEnv("MAIL_FROM_NAME", "VentureScope"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://venturescope.io"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:       getEnv("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v19.0"),
			AccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			CountryCode:   getEnv("WHATSAPP_COUNTRY_CODE", "91"),
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Admin: AdminConfig{
			Email: os.Getenv("ADMIN_EMAIL"),
		},
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("missing required database environment variables (DB_HOST, DB_USER, DB_NAME)")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
