package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAGE_PORT", "DATABASE_URL", "API_BASE_URL", "HTTP_TIMEOUT", "CURRENCY_SYMBOL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "3001", cfg.PagePort)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "₹", cfg.CurrencySymbol)
	assert.Contains(t, cfg.DatabaseURL, "dbname=retail")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/sales")
	t.Setenv("HTTP_TIMEOUT", "3")
	t.Setenv("CATALOG_CACHE_TTL", "90s")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@db:5432/sales", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 90*time.Second, cfg.CatalogTTL)
}

func TestGetDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	assert.Equal(t, time.Hour, getDuration("TOKEN_TTL", time.Hour))
}
