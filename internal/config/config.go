package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	// Server
	Port string
	Host string

	// Database. DatabaseURL takes precedence (postgres DSN); DBPath is
	// the sqlite fallback for local development.
	DatabaseURL string
	DBPath      string

	// Security
	JWTSecret            string
	JWTExpiration        time.Duration
	ImpersonationTimeout time.Duration

	// Cookies are marked Secure outside local development.
	CookieSecure bool
}

// Load reads configuration from the environment, with a .env file
// applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Host:                 getEnv("HOST", "0.0.0.0"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DBPath:               getEnv("DB_PATH", "data/academy.db"),
		JWTSecret:            getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiration:        24 * time.Hour,
		ImpersonationTimeout: 2 * time.Hour,
	}

	if hours, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24")); err == nil && hours > 0 {
		cfg.JWTExpiration = time.Duration(hours) * time.Hour
	}
	if secure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false")); err == nil {
		cfg.CookieSecure = secure
	}

	return cfg, nil
}

// getEnv returns the environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
