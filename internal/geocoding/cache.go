package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/redis/go-redis/v9"
)

// Cache stores geocoding results by normalized address.
type Cache interface {
	Get(ctx context.Context, key string) (*models.Coordinates, error)
	Set(ctx context.Context, key string, coords models.Coordinates) error
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("geocode cache miss")

// RedisCache keeps coordinates as JSON values with a fixed lifetime.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache returns a cache over client. A non-positive ttl keeps entries forever.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (rc *RedisCache) Get(ctx context.Context, key string) (*models.Coordinates, error) {
	raw, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var coords models.Coordinates
	if err = json.Unmarshal(raw, &coords); err != nil {
		return nil, fmt.Errorf("failed to decode cached coordinates: %w", err)
	}

	return &coords, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, coords models.Coordinates) error {
	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("failed to encode coordinates: %w", err)
	}
	if err = rc.client.Set(ctx, key, raw, rc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}

	return nil
}

// CachedProvider answers from cache before asking the wrapped provider. Cache failures are logged
// and never fail a lookup.
type CachedProvider struct {
	next  Provider
	cache Cache
	log   *slog.Logger
}

// NewCachedProvider wraps next with cache.
func NewCachedProvider(next Provider, cache Cache, log *slog.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, log: log}
}

func (cp *CachedProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	key := CacheKey(address)

	coords, err := cp.cache.Get(ctx, key)
	switch {
	case err == nil:
		cp.log.DebugContext(ctx, "Geocode cache hit", "address", address)
		return coords, nil
	case !errors.Is(err, ErrCacheMiss):
		cp.log.WarnContext(ctx, "Geocode cache unavailable", "error", err)
	}

	coords, err = cp.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if err = cp.cache.Set(ctx, key, *coords); err != nil {
		cp.log.WarnContext(ctx, "Failed to store geocode result", "error", err)
	}

	return coords, nil
}

// CacheKey normalizes address case and whitespace.
func CacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
