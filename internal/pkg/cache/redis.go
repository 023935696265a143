package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"pickup/internal/pkg/config"
	"pickup/pkg/logger"
	retrierconfig "pickup/pkg/retrier"
	"pickup/pkg/retrier/backoff_adapter"
)

const pingTimeout = 20 * time.Second

type RedisCache struct {
	client      *redis.Client
	serviceName string
}

func NewRedisCache(ctx context.Context, log logger.Logger, cfg *config.Redis, serviceName string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	retryConfig := retrierconfig.Default()
	retryConfig.MaxElapsedTime = pingTimeout

	var attempt uint64
	err := backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return client.Ping(ctx).Err()
	})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("Redis connection established",
		logger.NewField("addr", cfg.Addr),
		logger.NewField("attempts", attempt),
	)

	return newRedisCache(client, serviceName), nil
}

func newRedisCache(client *redis.Client, serviceName string) *RedisCache {
	return &RedisCache{
		client:      client,
		serviceName: serviceName,
	}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get возвращает "" без ошибки, если ключа нет.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, operation, key)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
