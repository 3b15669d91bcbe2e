package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"dinehall/models"
)

// MenuCache fronts the read-mostly menu catalog. Implementations are
// best-effort: a miss or a cache error just falls through to the store.
type MenuCache interface {
	Get(ctx context.Context, restaurantID string) ([]models.MenuItem, bool)
	Set(ctx context.Context, restaurantID string, items []models.MenuItem)
	Invalidate(ctx context.Context, restaurantID string)
}

const menuCacheTTL = 5 * time.Minute

func menuCacheKey(restaurantID string) string {
	return fmt.Sprintf("menu:%s", restaurantID)
}

// RedisMenuCache caches the per-restaurant menu as a JSON blob.
type RedisMenuCache struct {
	client *redis.Client
}

func NewRedisMenuCache(client *redis.Client) *RedisMenuCache {
	return &RedisMenuCache{client: client}
}

func (c *RedisMenuCache) Get(ctx context.Context, restaurantID string) ([]models.MenuItem, bool) {
	data, err := c.client.Get(ctx, menuCacheKey(restaurantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisMenuCache) Set(ctx context.Context, restaurantID string, items []models.MenuItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.client.Set(ctx, menuCacheKey(restaurantID), data, menuCacheTTL)
}

func (c *RedisMenuCache) Invalidate(ctx context.Context, restaurantID string) {
	c.client.Del(ctx, menuCacheKey(restaurantID))
}

// NoopMenuCache is used when no redis address is configured.
type NoopMenuCache struct{}

func (NoopMenuCache) Get(ctx context.Context, restaurantID string) ([]models.MenuItem, bool) {
	return nil, false
}
func (NoopMenuCache) Set(ctx context.Context, restaurantID string, items []models.MenuItem) {}
func (NoopMenuCache) Invalidate(ctx context.Context, restaurantID string)                   {}

// NewRedisClient builds the client; callers decide whether the address is
// configured at all.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
