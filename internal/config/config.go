package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when DATABASE_PATH is unset.
const DefaultDatabasePath = "./goodreads.db"

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Invitations
		SMTP
	}

	HTTP struct {
		Port int32
		Host string
		// BaseURL is the externally reachable address used in email links.
		BaseURL string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		TokenSecret string
		TokenExpiry time.Duration
		BcryptCost  int
	}
	Invitations struct {
		TokenSecret string
		TokenExpiry time.Duration
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("base_url", "http://localhost:8288")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_token_secret", "")
	v.SetDefault("auth_token_expiry", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)

	// Invitation token defaults
	v.SetDefault("invitation_token_secret", "")
	v.SetDefault("invitation_token_expiry", "168h") // one week

	// SMTP defaults; leaving the host empty disables delivery
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "noreply@goodreads.local")

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("BASE_URL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			TokenSecret: v.GetString("AUTH_TOKEN_SECRET"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
		},
		Invitations: Invitations{
			TokenSecret: v.GetString("INVITATION_TOKEN_SECRET"),
			TokenExpiry: v.GetDuration("INVITATION_TOKEN_EXPIRY"),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
	}
}
