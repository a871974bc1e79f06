package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string // API listen port
	PagePort    string // sales page listen port
	DatabaseURL string
	RedisAddr   string
	CatalogTTL  time.Duration
	TokenTTL    time.Duration

	APIBaseURL     string // where the sales page loads records from
	HTTPTimeout    time.Duration
	CurrencySymbol string
}

// Load reads .env (when present) and then the environment, falling back to defaults.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, relying on system env")
	}

	return Config{
		Port:           getEnv("PORT", "3000"),
		PagePort:       getEnv("PAGE_PORT", "3001"),
		DatabaseURL:    databaseURL(),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CatalogTTL:     getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		TokenTTL:       getDuration("TOKEN_TTL", 24*time.Hour),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:3000"),
		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 10*time.Second),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the DB_* parts
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "retail"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_TIMEZONE", "UTC"),
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go duration syntax ("30s") or a bare number of seconds
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
	return def
}
