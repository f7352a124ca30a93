package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	LogJSON  bool

	// PostgreSQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Gemini is optional; when the key is empty the explanation service
	// falls back to a fixed sentence.
	GeminiAPIKey string

	// Reference data changes rarely, so reads are cached briefly.
	ReferenceCacheTTL time.Duration

	// Session entries are evicted after this long without activity.
	SessionTTL time.Duration
}

// ErrMissingDatabase indicates the database connection is not configured
var ErrMissingDatabase = errors.New("database connection not configured")

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Try .env from the working dir and the project root
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Port:         os.Getenv("PORT"),
		GinMode:      os.Getenv("GIN_MODE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogJSON:      os.Getenv("LOG_JSON") != "false",
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBSSLMode:    os.Getenv("DB_SSLMODE"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	// Required settings
	if cfg.DBHost == "" || cfg.DBName == "" {
		return nil, ErrMissingDatabase
	}

	if cfg.DBUser == "" {
		return nil, errors.New("DB_USER not configured")
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}

	cfg.ReferenceCacheTTL = durationEnv("REFERENCE_CACHE_TTL_SECONDS", 300*time.Second)
	cfg.SessionTTL = durationEnv("SESSION_TTL_SECONDS", 24*time.Hour)

	return cfg, nil
}

// durationEnv reads a seconds value from the environment, falling back on
// missing or unparseable input.
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}

	return time.Duration(secs) * time.Second
}
