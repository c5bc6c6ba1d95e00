package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tsukikage7/pagekit/logger"
)

// redisCache Redis 缓存实现.
type redisCache struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisCache 创建 Redis 缓存，创建时执行一次 PING，失败则返回错误.
func NewRedisCache(config *Config, log logger.Logger) (Cache, error) {
	if log == nil {
		return nil, ErrNilLogger
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Addr == "" {
		return nil, &ConfigError{Field: "addr", Message: "addr is required for redis"}
	}
	config.ApplyDefaults()

	client := redis.NewClient(redisOptions(config))

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.With(logger.String("addr", config.Addr), logger.Err(err)).Error("[cache] Redis 连接失败")
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	log.With(logger.String("addr", config.Addr), logger.Int("db", config.DB)).Debug("[cache] Redis 已连接")
	return &redisCache{client: client, logger: log}, nil
}

func redisOptions(config *Config) *redis.Options {
	return &redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.Timeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		MaxRetries:   config.MaxRetries,
	}
}

// fail 记录失败的命令并返回原始错误.
func (r *redisCache) fail(ctx context.Context, cmd string, err error, keys ...string) error {
	r.logger.WithContext(ctx).With(
		logger.String("cmd", cmd),
		logger.Any("keys", keys),
		logger.Err(err),
	).Error("[cache] Redis 命令失败")
	return err
}

// Set 写入键值，ttl <= 0 表示永不过期.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := serialize(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, max(ttl, 0)).Err(); err != nil {
		return r.fail(ctx, "SET", err, key)
	}
	return nil
}

// Get 读取值，键不存在时返回 ErrNotFound.
func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrNotFound
	case err != nil:
		return "", r.fail(ctx, "GET", err, key)
	}
	return value, nil
}

// Del 删除键.
func (r *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return r.fail(ctx, "DEL", err, keys...)
	}
	return nil
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
