package authclient

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStorage keeps session values under "<namespace>:<key>".
type RedisStorage struct {
	rdb       *redis.Client
	namespace string
	timeout   time.Duration
}

func NewRedisStorage(rdb *redis.Client, namespace string) *RedisStorage {
	return &RedisStorage{
		rdb:       rdb,
		namespace: namespace,
		timeout:   3 * time.Second,
	}
}

func (s *RedisStorage) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, err
	}

	return v, true, nil
}

func (s *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

func (s *RedisStorage) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.rdb.Del(ctx, s.key(key)).Err()
}

func (s *RedisStorage) key(key string) string {
	if s.namespace == "" {
		return key
	}

	return s.namespace + ":" + key
}
