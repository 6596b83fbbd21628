package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default paths for client-side storage
const (
	// DefaultCookieDatabasePath is the default path for the durable cookie store
	DefaultCookieDatabasePath = "./revbook-cookies.db"
)

type (
	Config struct {
		API
		Cookies
		Upload
		Refresh
		Global
	}

	API struct {
		BaseURL string
		Timeout time.Duration
	}
	Cookies struct {
		DatabasePath string
		SealingKey   string // Base64 AES-256 key; auto-resolved if empty
		KeyFilePath  string
	}
	Upload struct {
		Endpoint string // Opaque avatar upload service
		Preset   string // Unsigned upload preset identifier
	}
	Refresh struct {
		Enabled  bool
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Global struct {
		Environment string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("api_timeout", "10s")
	v.SetDefault("cookie_database_path", DefaultCookieDatabasePath)
	v.SetDefault("cookie_sealing_key", "")
	v.SetDefault("cookie_key_file", "")
	v.SetDefault("upload_endpoint", "")
	v.SetDefault("upload_preset", "revbook-avatars")
	v.SetDefault("session_refresh_enabled", false)
	v.SetDefault("session_refresh_schedule", "*/15 * * * *")
	v.SetDefault("environment", "development")

	return &Config{
		API: API{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Cookies: Cookies{
			DatabasePath: v.GetString("COOKIE_DATABASE_PATH"),
			SealingKey:   v.GetString("COOKIE_SEALING_KEY"),
			KeyFilePath:  v.GetString("COOKIE_KEY_FILE"),
		},
		Upload: Upload{
			Endpoint: v.GetString("UPLOAD_ENDPOINT"),
			Preset:   v.GetString("UPLOAD_PRESET"),
		},
		Refresh: Refresh{
			Enabled:  v.GetBool("SESSION_REFRESH_ENABLED"),
			Schedule: v.GetString("SESSION_REFRESH_SCHEDULE"),
		},
		Global: Global{
			Environment: v.GetString("ENVIRONMENT"),
		},
	}
}
