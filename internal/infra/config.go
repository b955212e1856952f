package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	WodProvider      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	FreeDailyLimit   int
	QuotaTimezone    string
	GeoIPDBPath      string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		WodProvider:      getEnv("WOD_PROVIDER", "openai"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		FreeDailyLimit:   getEnvInt("FREE_DAILY_WOD_LIMIT", 2),
		QuotaTimezone:    getEnv("QUOTA_TIMEZONE", "UTC"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.FreeDailyLimit <= 0 {
		return nil, fmt.Errorf("FREE_DAILY_WOD_LIMIT must be positive")
	}

	// Fail at startup rather than on the first quota check.
	if _, err := time.LoadLocation(cfg.QuotaTimezone); err != nil {
		return nil, fmt.Errorf("QUOTA_TIMEZONE %q is not a valid IANA zone: %w", cfg.QuotaTimezone, err)
	}

	return cfg, nil
}

// QuotaLocation returns the timezone used to delimit quota days.
func (c *Config) QuotaLocation() *time.Location {
	loc, err := time.LoadLocation(c.QuotaTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
