package cache

import (
	"context"
	"fmt"
	"time"

	"cleanguard-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Locker cache keys
const (
	LockerSummaryKey = "lockers:summary"
	LockerHeatKeyFmt = "lockers:heat:%s"
	ProcessListKey   = "processes:list"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil
// and every helper below degrades to a cache miss.
func Init(cfg config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection pool
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// HeatKey is the cache key of one floor's heat blocks
func HeatKey(location string) string {
	if location == "" {
		location = "all"
	}
	return fmt.Sprintf(LockerHeatKeyFmt, location)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateLockerCaches clears summary and heat caches.
// Called after any change to locker occupancy, remarks or the locker list.
func InvalidateLockerCaches(ctx context.Context) {
	InvalidateKeys(ctx, LockerSummaryKey)
	InvalidatePattern(ctx, "lockers:heat:*")
}

// InvalidateProcessCaches clears the process list with employee counts.
// Employee writes change the counts too.
func InvalidateProcessCaches(ctx context.Context) {
	InvalidateKeys(ctx, ProcessListKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
