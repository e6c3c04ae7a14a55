// Package redis is the ListCache driver shared by several BFF replicas. Each
// session's list is one JSON value with a server-side TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
)

// KeyPrefix namespaces every key written by the driver.
const KeyPrefix = "clientadmin:clients:"

// RedisClient is the subset of *redis.Client the driver needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type Cache struct {
	client RedisClient
}

var _ store.ListCache = (*Cache)(nil)

func New(client RedisClient) *Cache {
	return &Cache{client: client}
}

// Open connects to the server described by a redis:// or rediss:// URL.
func Open(ctx context.Context, url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client), nil
}

func key(sessionID string) string {
	return KeyPrefix + sessionID
}

func (c *Cache) Load(ctx context.Context, sessionID string) ([]domain.ClientRecord, error) {
	data, err := c.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load client list: %w", err)
	}

	records := []domain.ClientRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode client list: %w", err)
	}
	return records, nil
}

func (c *Cache) Save(ctx context.Context, sessionID string, records []domain.ClientRecord, ttl time.Duration) error {
	if records == nil {
		records = []domain.ClientRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode client list: %w", err)
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save client list: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("invalidate client list: %w", err)
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
