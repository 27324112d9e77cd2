package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "pantry:"

// RedisStore 以 Redis 保存結果快取，多個實例可共用
type RedisStore struct {
	client *redis.Client
	config config.CacheConfig
	hits   int64
	misses int64
}

// NewRedisStore 建立 Redis 快取並測試連線
func NewRedisStore(ctx context.Context, cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, config: cfg}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if !s.config.Enabled {
		return "", common.ErrCacheDisabled
	}

	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddInt64(&s.misses, 1)
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	atomic.AddInt64(&s.hits, 1)
	common.LogCacheHit("redis")
	return val, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if !s.config.Enabled {
		return nil
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 快取統計
func (s *RedisStore) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": config.CacheBackendRedis,
		"addr":    s.config.RedisAddr,
		"hits":    atomic.LoadInt64(&s.hits),
		"misses":  atomic.LoadInt64(&s.misses),
	}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// New 依設定建立快取
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if cfg.Backend == config.CacheBackendRedis {
		return NewRedisStore(ctx, cfg)
	}
	return NewManager(cfg), nil
}

// Key 以命名空間與內容雜湊組成快取鍵
func Key(namespace string, v interface{}) (string, error) {
	hash, err := common.HashJSON(v)
	if err != nil {
		return "", fmt.Errorf("build cache key: %w", err)
	}
	return namespace + ":" + hash, nil
}
