package cache

import (
	"context"
	"fmt"
	"time"

	"hotel-ortus/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultDialTimeout = 5 * time.Second

// Options maps the Redis section of the config onto client options.
func Options(cfg config.RedisConfig) *redis.Options {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout,
	}
}

// NewRedisClient connects and pings. The client backs the token allow-list and the sweep lock.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts := Options(cfg)
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logrus.WithFields(logrus.Fields{"addr": opts.Addr, "db": opts.DB}).Info("Successfully connected to Redis")

	return client, nil
}
