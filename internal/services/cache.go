package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyJobsPrefix = "ats:jobs:"
	cacheKeyTimeToHire = "ats:reports:time_to_hire"
)

func jobsListCacheKey(status string) string {
	if status == "" {
		status = "all"
	}
	return cacheKeyJobsPrefix + "list:" + status
}

// CacheService stores read-heavy responses. Every method is a no-op when the
// backing store is unavailable, so callers never fail because of the cache.
type CacheService interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedisCache returns a cache that bypasses itself when addr is empty or the server does not answer.
func NewRedisCache(addr, password string, db int, ttl time.Duration) CacheService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if addr == "" {
		log.Println("⚠️  REDIS_ADDR not set, response cache disabled")
		return &redisCache{ttl: ttl}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable, bypassing cache: %v\n", err)
		_ = client.Close()
		return &redisCache{ttl: ttl}
	}

	log.Println("✅ Redis cache connected")
	return &redisCache{client: client, ttl: ttl}
}

// NewNoopCache is used where caching is not wanted, e.g. batch tools.
func NewNoopCache() CacheService {
	return &redisCache{ttl: time.Minute}
}

func (r *redisCache) unavailable() bool {
	return r == nil || r.client == nil
}

func (r *redisCache) warnOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		log.Printf("⚠️  Redis error, continuing without cache: %v\n", err)
	}
}

func (r *redisCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.unavailable() {
		return false, nil
	}

	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnOnce(err)
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (r *redisCache) SetJSON(ctx context.Context, key string, value any) error {
	if r.unavailable() {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		r.warnOnce(err)
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if r.unavailable() || len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnOnce(err)
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (r *redisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if r.unavailable() || prefix == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("⚠️  Failed to delete cache key %s: %v\n", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		r.warnOnce(err)
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return nil
}
