package cloud

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_5_study_keep/internal/config"
	"go_5_study_keep/internal/middleware"

	goredis "github.com/redis/go-redis/v9"
)

// SyncCache はリモートから取得したデータを短時間保持するキャッシュです
type SyncCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// NewSyncCache は redis.addr が設定されていれば Redis を、なければプロセス内キャッシュを返します
func NewSyncCache(ctx context.Context, cfg *config.Config) (SyncCache, error) {
	if cfg.Redis.Addr == "" {
		return NewMemoryCache(time.Now), nil
	}
	cache, err := NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// --- MemoryCache ---

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(now func() time.Time) *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{data: append([]byte(nil), data...), expiresAt: c.now().Add(ttl)}
	return nil
}

// --- RedisCache ---

type RedisCache struct {
	rdb    *goredis.Client
	prefix string
}

func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb, prefix: cfg.Prefix}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		middleware.GetLogger(ctx).Warn("Redis cache read failed", "error", err, "key", key)
		return nil, false, fmt.Errorf("RedisCache.Get: %w", err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		middleware.GetLogger(ctx).Warn("Redis cache write failed", "error", err, "key", key)
		return fmt.Errorf("RedisCache.Set: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
