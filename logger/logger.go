// Package logger 提供结构化日志记录功能.
package logger

import (
	"context"
	"io"
)

// 日志级别常量.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// 输出格式常量.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// 输出目标常量.
const (
	OutputConsole = "console" // 标准输出
	OutputStderr  = "stderr"  // 标准错误，命令行工具使用，避免与结果输出混在一起
	OutputFile    = "file"
	OutputBoth    = "both"
)

// 时间格式，其他取值按 Go 时间布局解析.
const (
	TimeFormatDateTime = "datetime"
	TimeFormatRFC3339  = "rfc3339"
	TimeFormatEpoch    = "epoch"
)

// 级别编码常量.
const (
	EncodeLevelCapital      = "capital"
	EncodeLevelCapitalColor = "capitalcolor"
	EncodeLevelLower        = "lower"
)

type requestIDKey struct{}

// Field 表示一个日志字段.
type Field struct {
	Key   string
	Value any
}

// Logger 日志记录器接口.
type Logger interface {
	// 基础日志方法
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)

	// 结构化日志方法
	With(fields ...Field) Logger
	WithContext(ctx context.Context) Logger

	// 生命周期管理
	Sync() error
	Close() error
}

// ContextWithRequestID 将 requestId 注入到 context，WithContext 会将其写入日志.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 读取 context 中的 requestId.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// NewLogger 创建 logger 实例.
func NewLogger(config *Config) (Logger, error) {
	if err := prepare(config); err != nil {
		return nil, err
	}
	return newZapLogger(config, nil)
}

// NewLoggerWithWriter 创建输出到指定 writer 的 logger，忽略 Output 配置.
//
// 适用于测试或需要自行管理输出目标的场景.
func NewLoggerWithWriter(config *Config, w io.Writer) (Logger, error) {
	if w == nil {
		return nil, &ConfigError{Field: "writer", Message: "writer cannot be nil"}
	}
	if err := prepare(config); err != nil {
		return nil, err
	}
	return newZapLogger(config, w)
}

// MustNewLogger 创建 logger 实例，失败时 panic.
func MustNewLogger(config *Config) Logger {
	l, err := NewLogger(config)
	if err != nil {
		panic(err)
	}
	return l
}

func prepare(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	config.ApplyDefaults()
	return nil
}
