package profile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the chatme server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where chatme stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// Timezone is the single civil timezone all reminder computations
	// run in (IANA identifier).
	Timezone string

	// AI Configuration
	AIEnabled bool   // CHATME_AI_ENABLED
	AIAPIKey  string // CHATME_AI_API_KEY
	AIBaseURL string // CHATME_AI_BASE_URL (default: https://openrouter.ai/api/v1)
	AIModel   string // CHATME_AI_MODEL (default: mistralai/mixtral-8x7b-instruct)

	// Telegram Configuration
	TelegramToken string // CHATME_TELEGRAM_TOKEN
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CHATME_* environment variables.
// Empty values are skipped so defaults take effect.
func (p *Profile) FromEnv() {
	p.AIEnabled = os.Getenv("CHATME_AI_ENABLED") == "true"
	p.AIAPIKey = os.Getenv("CHATME_AI_API_KEY")
	p.AIBaseURL = getEnvOrDefault("CHATME_AI_BASE_URL", "https://openrouter.ai/api/v1")
	p.AIModel = getEnvOrDefault("CHATME_AI_MODEL", "mistralai/mixtral-8x7b-instruct")
	p.TelegramToken = os.Getenv("CHATME_TELEGRAM_TOKEN")
	p.Timezone = getEnvOrDefault("CHATME_TIMEZONE", p.Timezone)

	if port := os.Getenv("CHATME_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			p.Port = n
		}
	}
}

// Validate checks the profile and normalizes defaults.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		if p.Data == "" {
			p.Data = "."
		}
		p.DSN = fmt.Sprintf("%s/chatme_%s.db", p.Data, p.Mode)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}
	if p.Timezone == "" {
		p.Timezone = "Africa/Lagos"
	}
	return nil
}
