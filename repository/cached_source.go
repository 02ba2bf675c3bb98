package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFeedCache stores raw feed bodies in Redis
type RedisFeedCache struct {
	client *redis.Client
}

// Ensure RedisFeedCache implements FeedCache
var _ FeedCache = (*RedisFeedCache)(nil)

// NewRedisFeedCache connects to redisURL and pings it
func NewRedisFeedCache(ctx context.Context, redisURL string) (*RedisFeedCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("✅ Connected to Redis for feed caching")
	return &RedisFeedCache{client: client}, nil
}

// Get returns the cached body or ErrCacheMiss
func (c *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return data, nil
}

// Set stores a body with a TTL
func (c *RedisFeedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisFeedCache) Close() error {
	return c.client.Close()
}

// CachedSource is a read-through cache in front of another FeedSource.
// Cache failures are logged and the underlying source is used.
type CachedSource struct {
	source FeedSource
	cache  FeedCache
	ttl    time.Duration
}

// Ensure CachedSource implements FeedSource
var _ FeedSource = (*CachedSource)(nil)

// NewCachedSource wraps source with cache
func NewCachedSource(source FeedSource, cache FeedCache, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, cache: cache, ttl: ttl}
}

// Open returns the cached body when present, otherwise reads the source
// fully and stores the body before returning it
func (s *CachedSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	key := "feed:" + ref

	data, err := s.cache.Get(ctx, key)
	if err == nil {
		log.Printf("💾 CachedSource.Open: cache hit for %s", ref)
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("⚠️  CachedSource.Open: cache read failed for %s: %v", ref, err)
	}

	rc, err := s.source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", ref, err)
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("⚠️  CachedSource.Open: cache write failed for %s: %v", ref, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
