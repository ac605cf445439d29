package config

import (
	"fmt"
	"strings"
	"time"

	"propertyhub-backend/utils"
)

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

type Config struct {
	Port    string
	Storage string
	Seed    bool

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	CORSOrigins       []string
	AdminAPIKey       string
	BookingRatePerMin int
	Location          *time.Location

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (Config, error) {
	cfg := Config{
		Port:              utils.EnvOrDefault("PORT", "8080"),
		Storage:           strings.ToLower(utils.EnvOrDefault("STORAGE", StorageMemory)),
		Seed:              strings.ToLower(utils.EnvOrDefault("SEED_DATA", "true")) == "true",
		RedisAddr:         utils.EnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:     utils.EnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:           utils.EnvInt("REDIS_DB", 0),
		CatalogCacheTTL:   utils.EnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		CORSOrigins:       utils.SplitList(utils.EnvOrDefault("CORS_ORIGINS", "*")),
		AdminAPIKey:       utils.EnvOrDefault("ADMIN_API_KEY", ""),
		BookingRatePerMin: utils.EnvInt("BOOKING_RATE_PER_MIN", 30),
		LogLevel:          utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         utils.EnvOrDefault("LOG_FORMAT", "console"),
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageMySQL {
		return cfg, fmt.Errorf("unknown STORAGE %q (want %s or %s)", cfg.Storage, StorageMemory, StorageMySQL)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	tz := utils.EnvOrDefault("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}
