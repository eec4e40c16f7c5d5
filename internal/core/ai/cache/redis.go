package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"
)

const redisKeyPrefix = "ai:response:"

// RedisCache 以 Redis 儲存的快取，多個實例可以共用
type RedisCache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisCache 創建 Redis 快取並測試連線
func NewRedisCache(cfg *config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線", zap.String("addr", cfg.RedisAddr))
	return NewRedisCacheWithClient(client, cfg), nil
}

// NewRedisCacheWithClient 使用既有的 client
func NewRedisCacheWithClient(client *redis.Client, cfg *config.CacheConfig) *RedisCache {
	return &RedisCache{client: client, config: cfg}
}

// Get 獲取緩存
func (s *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("讀取 Redis 快取失敗", zap.Error(err))
		}
		common.LogCacheMiss("redis")
		return "", false
	}
	common.LogCacheHit("redis")
	return val, true
}

// Set 設置緩存
func (s *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉連線
func (s *RedisCache) Close() error {
	return s.client.Close()
}
