package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Actor view caches hold per-user snapshots of order lists and dashboards.
// Writes to an order invalidate every snapshot keyed by the acting user so
// the next read rebuilds from the database.

const actorKeyPrefix = "actor:views:"

// RedisActorCache invalidates actor-keyed view caches in Redis. Suitable
// for distributed deployments where multiple instances share cache state.
type RedisActorCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisActorCache creates a Redis-backed actor cache
func NewRedisActorCache(cfg RedisConfig) (*RedisActorCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisActorCache{
		client:    client,
		keyPrefix: actorKeyPrefix,
	}, nil
}

// NewRedisActorCacheWithClient creates a cache with an existing Redis
// client, useful for testing or when sharing a client across components
func NewRedisActorCacheWithClient(client *redis.Client, keyPrefix string) *RedisActorCache {
	if keyPrefix == "" {
		keyPrefix = actorKeyPrefix
	}
	return &RedisActorCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Set stores a serialized view snapshot for an actor
func (c *RedisActorCache) Set(ctx context.Context, actorID uuid.UUID, view string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(actorID, view), payload, ttl).Err()
}

// Get retrieves a serialized view snapshot for an actor. Returns
// redis.Nil-wrapped error when absent.
func (c *RedisActorCache) Get(ctx context.Context, actorID uuid.UUID, view string) ([]byte, error) {
	return c.client.Get(ctx, c.key(actorID, view)).Bytes()
}

// InvalidateActor deletes every cached view for the actor
func (c *RedisActorCache) InvalidateActor(ctx context.Context, actorID uuid.UUID) error {
	pattern := c.keyPrefix + actorID.String() + ":*"

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0, 8)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan actor cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete actor cache keys: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisActorCache) Close() error {
	return c.client.Close()
}

func (c *RedisActorCache) key(actorID uuid.UUID, view string) string {
	return c.keyPrefix + actorID.String() + ":" + view
}

// InMemoryActorCache is a process-local actor cache for tests and
// single-instance deployments
type InMemoryActorCache struct {
	mu    sync.RWMutex
	views map[uuid.UUID]map[string][]byte
}

// NewInMemoryActorCache creates an in-memory actor cache
func NewInMemoryActorCache() *InMemoryActorCache {
	return &InMemoryActorCache{
		views: make(map[uuid.UUID]map[string][]byte),
	}
}

// Set stores a view snapshot for an actor. TTL is ignored.
func (c *InMemoryActorCache) Set(_ context.Context, actorID uuid.UUID, view string, payload []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.views[actorID] == nil {
		c.views[actorID] = make(map[string][]byte)
	}
	c.views[actorID][view] = payload
	return nil
}

// Get retrieves a view snapshot for an actor
func (c *InMemoryActorCache) Get(_ context.Context, actorID uuid.UUID, view string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.views[actorID][view]
	return payload, ok
}

// InvalidateActor drops every cached view for the actor
func (c *InMemoryActorCache) InvalidateActor(_ context.Context, actorID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, actorID)
	return nil
}
