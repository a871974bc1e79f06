package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-retail-sales/internal/model"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	for _, c := range []*CatalogCache{nil, NewCatalogCache(nil, time.Minute)} {
		c.SetProducts(ctx, userID, []model.Product{{Name: "Pen"}})
		_, ok := c.GetProducts(ctx, userID)
		assert.False(t, ok)
		_, ok = c.GetStores(ctx, userID)
		assert.False(t, ok)
		c.Invalidate(ctx, userID)
	}
}

func TestConnectWithoutAddressDisables(t *testing.T) {
	assert.Nil(t, Connect(context.Background(), ""))
}

// Runs against a real server when REDIS_ADDR is set.
func TestCatalogCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := Connect(ctx, addr)
	require.NotNil(t, rdb)
	defer rdb.Close()

	c := NewCatalogCache(rdb, time.Minute)
	userID := uuid.New()
	defer c.Invalidate(ctx, userID)

	c.SetStores(ctx, userID, []model.Store{{Name: "A"}, {Name: "B"}})
	stores, ok := c.GetStores(ctx, userID)
	require.True(t, ok)
	assert.Equal(t, "B", stores[1].Name)

	c.Invalidate(ctx, userID)
	_, ok = c.GetStores(ctx, userID)
	assert.False(t, ok)
}
