package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (optional - verification cache and analysis cooldown)
	RedisAddr string

	// Auth
	JWTSecret   string
	TokenExpiry time.Duration

	// Website analyzer
	SimilarWebAPIKey string
	FetchTimeout     time.Duration

	// Background analysis worker
	AnalysisInterval time.Duration
	AnalysisMaxAge   time.Duration

	// SMTP (optional - notifications disabled when unset)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Catalog file (categories, gray niches, countries)
	CatalogFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/postmarket?sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production-min-32-chars"),
		TokenExpiry: getDuration("TOKEN_EXPIRY", 24*time.Hour),

		SimilarWebAPIKey: getEnv("SIMILARWEB_API_KEY", ""),
		FetchTimeout:     getDuration("FETCH_TIMEOUT", 10*time.Second),

		AnalysisInterval: getDuration("ANALYSIS_INTERVAL", 15*time.Minute),
		AnalysisMaxAge:   getDuration("ANALYSIS_MAX_AGE", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "PostMarket"),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
		CatalogFile: getEnv("CATALOG_FILE", "catalog.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is fully configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsRedisEnabled returns true if a Redis address is configured.
func (c *Config) IsRedisEnabled() bool {
	return c.RedisAddr != ""
}
