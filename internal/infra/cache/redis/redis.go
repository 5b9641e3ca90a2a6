package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
)

type Cache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

type Config struct {
	Addr     string
	DB       int
	Password string
}

var _ domain.Cache = (*Cache)(nil)

func New(cfg Config, logger *zap.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &Cache{rdb: rdb, logger: logger}
}

func (c *Cache) Ping(ctx context.Context) error {
	err := c.rdb.Ping(ctx).Err()
	if err != nil {
		c.logger.Warn("PING failed", zap.Error(err))
	} else {
		c.logger.Debug("PING ok")
	}
	return err
}

func (c *Cache) Close() {
	if c.rdb == nil {
		c.logger.Info("nothing to close")
		return
	}

	if err := c.rdb.Close(); err != nil {
		c.logger.Error("error while closing", zap.Error(err))
		return
	}

	c.logger.Info("closed")
}

// Get возвращает nil, nil для отсутствующего ключа.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("GET: not found", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("GET failed", zap.String("key", key), zap.Error(err))
	} else {
		c.logger.Debug("GET: hit", zap.String("key", key), zap.Int("bytes", len(b)))
	}
	return b, err
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	err := c.rdb.Set(ctx, key, val, ttl).Err()
	if err != nil {
		c.logger.Warn("SET failed", zap.String("key", key), zap.Error(err))
	} else {
		c.logger.Debug("SET ok", zap.String("key", key), zap.Duration("ttl", ttl))
	}
	return err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("DEL failed", zap.Strings("keys", keys), zap.Error(err))
	} else {
		c.logger.Debug("DEL ok", zap.Strings("keys", keys), zap.Int64("deleted", n))
	}
	return err
}
