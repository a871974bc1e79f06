package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"go-retail-sales/internal/metrics"
	"go-retail-sales/internal/model"
)

// Connect returns a Redis client, or nil when addr is empty or unreachable.
// A nil client disables caching; every CatalogCache method is then a no-op.
func Connect(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, catalog caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("redis unreachable, catalog caching disabled", "addr", addr, "error", err)
		rdb.Close()
		return nil
	}

	slog.Info("connected to redis", "addr", addr)
	return rdb
}

// CatalogCache keeps each user's product and store lists in Redis. Sales are
// never cached: their totals must always reflect the database.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func productsKey(userID uuid.UUID) string { return "catalog:" + userID.String() + ":products" }
func storesKey(userID uuid.UUID) string   { return "catalog:" + userID.String() + ":stores" }

func (c *CatalogCache) GetProducts(ctx context.Context, userID uuid.UUID) ([]model.Product, bool) {
	return get[model.Product](ctx, c, productsKey(userID))
}

func (c *CatalogCache) SetProducts(ctx context.Context, userID uuid.UUID, products []model.Product) {
	set(ctx, c, productsKey(userID), products)
}

func (c *CatalogCache) GetStores(ctx context.Context, userID uuid.UUID) ([]model.Store, bool) {
	return get[model.Store](ctx, c, storesKey(userID))
}

func (c *CatalogCache) SetStores(ctx context.Context, userID uuid.UUID, stores []model.Store) {
	set(ctx, c, storesKey(userID), stores)
}

// Invalidate drops both lists for userID. Called after every write that changes them.
func (c *CatalogCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, productsKey(userID), storesKey(userID)).Err(); err != nil {
		slog.Error("redis DEL failed", "user_id", userID, "error", err)
	}
}

func get[T any](ctx context.Context, c *CatalogCache, key string) ([]T, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	cached, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("redis GET failed", "key", key, "error", err)
		}
		metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var items []T
	if err := json.Unmarshal([]byte(cached), &items); err != nil {
		slog.Warn("discarding unreadable cache entry", "key", key, "error", err)
		metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
	return items, true
}

func set[T any](ctx context.Context, c *CatalogCache, key string, items []T) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Error("redis SET failed", "key", key, "error", err)
	}
}
