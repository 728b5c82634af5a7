package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"api/config"
	"api/metrics"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// DefaultCacheTTL bounds staleness of cached puzzle reads; the sync job
// also invalidates explicitly after every run.
const DefaultCacheTTL = 60 * time.Second

// InitCache connects the Redis client used by the read-side cache helpers.
// The cache is optional: when Redis is unreachable the helpers degrade to
// cache misses.
func InitCache() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unavailable, caching disabled: ", err)
		Redis = nil
	}
}

// GetFromCache fetches key into dest. Returns whether it was a hit.
func GetFromCache(ctx context.Context, key string, dest interface{}) (bool, error) {
	if Redis == nil {
		return false, nil
	}

	payload, err := Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheMisses.Inc()
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		metrics.CacheMisses.Inc()
		return false, err
	}

	metrics.CacheHits.Inc()
	return true, nil
}

// SetCache stores value under key for DefaultCacheTTL.
func SetCache(ctx context.Context, key string, value interface{}) error {
	if Redis == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(ctx, key, payload, DefaultCacheTTL).Err()
}

// InvalidateCache removes keys matching pattern.
func InvalidateCache(ctx context.Context, pattern string) {
	if Redis == nil {
		return
	}

	keys, err := Redis.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := Redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate cache keys %s: %v", pattern, err)
	}
}
