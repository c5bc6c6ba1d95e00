// Package database 提供 GORM 数据库连接，供分页统计与查询使用.
package database

import (
	"errors"
	"time"
)

// 支持的驱动类型.
const (
	DriverMySQL      = "mysql"
	DriverPostgres   = "postgres"
	DriverPostgreSQL = "postgresql"
	DriverSQLite     = "sqlite"
	DriverSQLite3    = "sqlite3"
)

// 预定义错误.
var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("database: 配置为空")
	// ErrNilLogger 日志记录器为空.
	ErrNilLogger = errors.New("database: 日志记录器为空")
	// ErrEmptyDriver 驱动类型为空.
	ErrEmptyDriver = errors.New("database: 驱动类型为空")
	// ErrEmptyDSN 连接字符串为空.
	ErrEmptyDSN = errors.New("database: 连接字符串为空")
	// ErrUnsupportedDriver 不支持的驱动类型.
	ErrUnsupportedDriver = errors.New("database: 不支持的驱动类型")
	// ErrRegisterTracingPlugin 注册追踪插件失败.
	ErrRegisterTracingPlugin = errors.New("database: 注册追踪插件失败")
)

// Config 数据库配置.
type Config struct {
	// Driver 数据库驱动类型：mysql, postgres, sqlite
	Driver string `json:"driver" toml:"driver" yaml:"driver" mapstructure:"driver"`

	// DSN 数据库连接字符串
	DSN string `json:"dsn" toml:"dsn" yaml:"dsn" mapstructure:"dsn"`

	// Pool 连接池配置
	Pool PoolConfig `json:"pool" toml:"pool" yaml:"pool" mapstructure:"pool"`

	// SlowThreshold 慢查询阈值
	SlowThreshold time.Duration `json:"slow_threshold" toml:"slow_threshold" yaml:"slow_threshold" mapstructure:"slow_threshold"`

	// LogLevel SQL 日志级别: silent, error, warn, info
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// EnableTracing 启用链路追踪
	EnableTracing bool `json:"enable_tracing" toml:"enable_tracing" yaml:"enable_tracing" mapstructure:"enable_tracing"`
}

// PoolConfig 连接池配置.
type PoolConfig struct {
	MaxOpen     int           `json:"max_open" toml:"max_open" yaml:"max_open" mapstructure:"max_open"`
	MaxIdle     int           `json:"max_idle" toml:"max_idle" yaml:"max_idle" mapstructure:"max_idle"`
	MaxLifetime time.Duration `json:"max_lifetime" toml:"max_lifetime" yaml:"max_lifetime" mapstructure:"max_lifetime"`
	MaxIdleTime time.Duration `json:"max_idle_time" toml:"max_idle_time" yaml:"max_idle_time" mapstructure:"max_idle_time"`
}

// DefaultPoolConfig 返回默认连接池配置.
//
// 分页统计是短生命周期的只读查询，连接数保持较小.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpen:     10,
		MaxIdle:     2,
		MaxLifetime: time.Hour,
		MaxIdleTime: 10 * time.Minute,
	}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return ErrEmptyDriver
	}
	if c.DSN == "" {
		return ErrEmptyDSN
	}
	return nil
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	if c.SlowThreshold == 0 {
		c.SlowThreshold = 200 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	d := DefaultPoolConfig()
	if c.Pool.MaxOpen == 0 {
		c.Pool.MaxOpen = d.MaxOpen
	}
	if c.Pool.MaxIdle == 0 {
		c.Pool.MaxIdle = d.MaxIdle
	}
	if c.Pool.MaxLifetime == 0 {
		c.Pool.MaxLifetime = d.MaxLifetime
	}
	if c.Pool.MaxIdleTime == 0 {
		c.Pool.MaxIdleTime = d.MaxIdleTime
	}
}
