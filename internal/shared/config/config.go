package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port     string `validate:"required,numeric"`
	Env      string `validate:"required,oneof=development staging production test"`
	LogLevel string `validate:"required,oneof=debug info warn error"`

	// Remote bot platform
	BotAPIBaseURL string        `validate:"required,url"`
	DefaultAlias  string        `validate:"omitempty,max=128"`
	HTTPTimeout   time.Duration `validate:"min=1s,max=5m"`
	AskTimeout    time.Duration `validate:"min=1s,max=5m"`
	DemoHalDebug  bool

	// Session persistence. Empty DatabaseURL keeps sessions in memory.
	DatabaseURL          string
	SessionTTL           time.Duration `validate:"min=1m"`
	SessionSweepSchedule string        `validate:"required"`

	CORSAllowOrigins  string
	ThemeDefaultsFile string `validate:"omitempty,file"`
}

// LoadConfig reads .env (when present) and the process environment, applies
// defaults and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:                 getenv("PORT", "8080"),
		Env:                  getenv("ENV", "development"),
		LogLevel:             strings.ToLower(getenv("LOG_LEVEL", "info")),
		BotAPIBaseURL:        strings.TrimRight(os.Getenv("BOT_API_BASE_URL"), "/"),
		DefaultAlias:         strings.TrimSpace(os.Getenv("DEFAULT_ALIAS")),
		HTTPTimeout:          getenvDuration("HTTP_TIMEOUT", 15*time.Second),
		AskTimeout:           getenvDuration("ASK_TIMEOUT", 30*time.Second),
		DemoHalDebug:         getenvBool("DEMO_HAL_DEBUG", false),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SessionTTL:           getenvDuration("SESSION_TTL", 2*time.Hour),
		SessionSweepSchedule: getenv("SESSION_SWEEP_SCHEDULE", "0 */5 * * * *"),
		CORSAllowOrigins:     getenv("CORS_ALLOW_ORIGINS", "*"),
		ThemeDefaultsFile:    os.Getenv("THEME_DEFAULTS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// getenvDuration accepts Go durations ("45s") or a bare number of seconds.
func getenvDuration(name string, fallback time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getenvBool(name string, fallback bool) bool {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
