package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// CachedProvider 带 Redis 读穿缓存的遥测提供方
// 缓存按 polygon 维度存储；缓存读写失败降级为直连，不影响可用性
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

// NewCachedProvider 创建缓存提供方
func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// NewRedisClient 创建 Redis 客户端并验证连通性
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// cacheKey 缓存键命名规则
func cacheKey(polygonID string) string {
	return fmt.Sprintf("telemetry:snapshot:%s", polygonID)
}

// Current 优先读缓存，未命中时回源并写入
func (p *CachedProvider) Current(ctx context.Context, polygonID string, lat, lon float64) (*model.FieldConditions, error) {
	key := cacheKey(polygonID)

	if polygonID != "" {
		payload, err := p.rdb.Get(ctx, key).Result()
		if err == nil {
			var cached model.FieldConditions
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				p.log.Debugf(ctx, "telemetry cache hit: polygon=%s", polygonID)
				return &cached, nil
			}
		} else if err != redis.Nil {
			p.log.Warnf(ctx, "telemetry cache read failed, falling through: %v", err)
		}
	}

	conditions, err := p.inner.Current(ctx, polygonID, lat, lon)
	if err != nil {
		return nil, err
	}

	if polygonID != "" {
		payload, err := json.Marshal(conditions)
		if err == nil {
			if err := p.rdb.Set(ctx, key, payload, p.ttl).Err(); err != nil {
				p.log.Warnf(ctx, "telemetry cache write failed: %v", err)
			}
		}
	}

	return conditions, nil
}
