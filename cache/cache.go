// Package cache 提供统一的缓存接口，支持 Redis 与内存两种实现.
//
// 分页场景下主要用于缓存总条数，避免每次翻页都执行 COUNT 查询.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tsukikage7/pagekit/logger"
)

// 缓存类型常量.
const (
	TypeRedis  = "redis"
	TypeMemory = "memory"
)

// 默认配置值.
const (
	DefaultPoolSize        = 10
	DefaultTimeout         = 5 * time.Second
	DefaultReadTimeout     = 3 * time.Second
	DefaultWriteTimeout    = 3 * time.Second
	DefaultMaxRetries      = 3
	DefaultMaxSize         = 10000
	DefaultCleanupInterval = time.Minute
)

// 预定义错误.
var (
	// ErrNotFound 缓存键不存在.
	ErrNotFound = errors.New("缓存键不存在")
	// ErrNilConfig 缓存配置为空.
	ErrNilConfig = errors.New("缓存配置为空")
	// ErrNilLogger 日志记录器为空.
	ErrNilLogger = errors.New("日志记录器为空")
	// ErrUnsupported 不支持的缓存类型.
	ErrUnsupported = errors.New("不支持的缓存类型")
	// ErrSerialize 序列化值失败.
	ErrSerialize = errors.New("序列化值失败")
)

// Cache 缓存接口.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
	Close() error
}

// Config 缓存配置.
type Config struct {
	Type string `json:"type" toml:"type" yaml:"type" mapstructure:"type"`

	// Redis 配置
	Addr         string        `json:"addr" toml:"addr" yaml:"addr" mapstructure:"addr"`
	Password     string        `json:"password" toml:"password" yaml:"password" mapstructure:"password"`
	DB           int           `json:"db" toml:"db" yaml:"db" mapstructure:"db"`
	PoolSize     int           `json:"pool_size" toml:"pool_size" yaml:"pool_size" mapstructure:"pool_size"`
	Timeout      time.Duration `json:"timeout" toml:"timeout" yaml:"timeout" mapstructure:"timeout"`
	ReadTimeout  time.Duration `json:"read_timeout" toml:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" toml:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxRetries   int           `json:"max_retries" toml:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// 内存缓存配置
	MaxSize         int           `json:"max_size" toml:"max_size" yaml:"max_size" mapstructure:"max_size"`
	CleanupInterval time.Duration `json:"cleanup_interval" toml:"cleanup_interval" yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache config error [%s]: %s", e.Field, e.Message)
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	switch c.Type {
	case "", TypeMemory:
	case TypeRedis:
		if c.Addr == "" {
			return &ConfigError{Field: "addr", Message: "addr is required for redis"}
		}
	default:
		return &ConfigError{Field: "type", Message: "unsupported cache type: " + c.Type}
	}
	return nil
}

// ApplyDefaults 应用默认值，未指定类型时使用内存缓存.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = TypeMemory
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
}

// NewMemoryConfig 返回内存缓存配置.
func NewMemoryConfig() *Config {
	c := &Config{Type: TypeMemory}
	c.ApplyDefaults()
	return c
}

// NewRedisConfig 返回 Redis 缓存配置.
func NewRedisConfig(addr string) *Config {
	c := &Config{Type: TypeRedis, Addr: addr}
	c.ApplyDefaults()
	return c
}

// NewCache 创建缓存实例.
// logger 是必需参数，不能为 nil.
func NewCache(config *Config, log logger.Logger) (Cache, error) {
	if log == nil {
		return nil, ErrNilLogger
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()

	switch config.Type {
	case TypeRedis:
		return NewRedisCache(config, log)
	case TypeMemory:
		return NewMemoryCache(config, log)
	default:
		return nil, ErrUnsupported
	}
}

// serialize 序列化值，字符串与字节切片原样保存.
func serialize(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSerialize, err)
		}
		return string(data), nil
	}
}
