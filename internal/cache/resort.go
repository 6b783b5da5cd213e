package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

const resortsKey = "resorts:all"

func NewRedisClient(conf *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
}

// ResortCache keeps the resort listing in redis. Redis failures are logged
// and reported as a miss so reads fall through to the database.
type ResortCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResortCache(rdb *redis.Client, ttl time.Duration) *ResortCache {
	return &ResortCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *ResortCache) GetAll(ctx context.Context) ([]domain.Resort, bool) {
	val, err := c.rdb.Get(ctx, resortsKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("failed to read resorts from cache", zap.Error(err))
		}

		return nil, false
	}

	var resorts []domain.Resort
	if err = json.Unmarshal([]byte(val), &resorts); err != nil {
		zap.L().Warn("failed to decode cached resorts", zap.Error(err))

		return nil, false
	}

	return resorts, true
}

func (c *ResortCache) SetAll(ctx context.Context, resorts []domain.Resort) {
	val, err := json.Marshal(resorts)
	if err != nil {
		zap.L().Warn("failed to encode resorts for cache", zap.Error(err))

		return
	}

	if err = c.rdb.Set(ctx, resortsKey, val, c.ttl).Err(); err != nil {
		zap.L().Warn("failed to write resorts to cache", zap.Error(err))
	}
}

func (c *ResortCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, resortsKey).Err(); err != nil {
		zap.L().Warn("failed to invalidate resort cache", zap.Error(err))
	}
}
