package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMiss = errors.New("cache miss")

type Config struct {
	Enable   bool          `mapstructure:"enable"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// OrderKindCache remembers which ledger account kind an order key resolved to.
type OrderKindCache interface {
	GetKind(ctx context.Context, orderKey string) (string, error)
	SetKind(ctx context.Context, orderKey, kind string) error
	DeleteKind(ctx context.Context, orderKey string) error
}

func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", rdb.Options().Addr))

	return rdb, nil
}

type redisOrderKindCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOrderKindCache(rdb *redis.Client, ttl time.Duration) OrderKindCache {
	return &redisOrderKindCache{rdb: rdb, ttl: ttl}
}

func Key(orderKey string) string {
	return fmt.Sprintf("order:kind:%s", orderKey)
}

func (c *redisOrderKindCache) GetKind(ctx context.Context, orderKey string) (string, error) {
	kind, err := c.rdb.Get(ctx, Key(orderKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("get order kind: %w", err)
	}

	return kind, nil
}

func (c *redisOrderKindCache) SetKind(ctx context.Context, orderKey, kind string) error {
	return c.rdb.Set(ctx, Key(orderKey), kind, c.ttl).Err()
}

func (c *redisOrderKindCache) DeleteKind(ctx context.Context, orderKey string) error {
	return c.rdb.Del(ctx, Key(orderKey)).Err()
}

type noopOrderKindCache struct{}

// NewNoopOrderKindCache is used when Redis is disabled; every lookup misses.
func NewNoopOrderKindCache() OrderKindCache {
	return noopOrderKindCache{}
}

func (noopOrderKindCache) GetKind(context.Context, string) (string, error) { return "", ErrMiss }
func (noopOrderKindCache) SetKind(context.Context, string, string) error   { return nil }
func (noopOrderKindCache) DeleteKind(context.Context, string) error        { return nil }
