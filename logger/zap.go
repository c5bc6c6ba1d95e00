package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger zap 日志实现.
type zapLogger struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	closers []io.Closer
}

// newZapLogger 创建 zap logger，w 不为 nil 时只输出到 w.
func newZapLogger(config *Config, w io.Writer) (Logger, error) {
	level := parseLevel(config.Level)
	encoder := newEncoder(config)

	var (
		cores   []zapcore.Core
		closers []io.Closer
		err     error
	)
	if w != nil {
		cores = []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(w), level)}
	} else {
		cores, closers, err = buildCores(config, level, encoder)
		if err != nil {
			return nil, err
		}
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	var options []zap.Option
	if config.EnableCaller {
		options = append(options, zap.AddCaller())
	}
	zapLog := zap.New(core, options...).With(zap.String("service", config.ServiceName))

	return &zapLogger{
		logger:  zapLog,
		sugar:   zapLog.Sugar(),
		closers: closers,
	}, nil
}

// buildCores 构建日志核心.
func buildCores(config *Config, level zapcore.Level, encoder zapcore.Encoder) ([]zapcore.Core, []io.Closer, error) {
	var cores []zapcore.Core
	var closers []io.Closer

	if config.needsFileOutput() {
		file, err := openLogFile(config.LogDir, config.ServiceName)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, file)
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	if config.shouldOutputToConsole() {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	if config.shouldOutputToStderr() {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}

	if len(cores) == 0 {
		return nil, nil, &ConfigError{Field: "output", Message: "no valid output configured"}
	}

	return cores, closers, nil
}

// openLogFile 打开 {dir}/{name}/{name}.log.
func openLogFile(dir, name string) (*os.File, error) {
	dir = filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &ConfigError{Field: "log_dir", Message: ErrCreateDir.Error() + ": " + err.Error()}
	}

	file, err := os.OpenFile(filepath.Join(dir, name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &ConfigError{Field: "log_dir", Message: ErrOpenFile.Error() + ": " + err.Error()}
	}
	return file, nil
}

func (z *zapLogger) Debug(args ...any) {
	z.sugar.Debug(args...)
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.sugar.Debugf(format, args...)
}

func (z *zapLogger) Info(args ...any) {
	z.sugar.Info(args...)
}

func (z *zapLogger) Infof(format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *zapLogger) Warn(args ...any) {
	z.sugar.Warn(args...)
}

func (z *zapLogger) Warnf(format string, args ...any) {
	z.sugar.Warnf(format, args...)
}

func (z *zapLogger) Error(args ...any) {
	z.sugar.Error(args...)
}

func (z *zapLogger) Errorf(format string, args ...any) {
	z.sugar.Errorf(format, args...)
}

func (z *zapLogger) Fatal(args ...any) {
	z.sugar.Fatal(args...)
}

func (z *zapLogger) Fatalf(format string, args ...any) {
	z.sugar.Fatalf(format, args...)
}

// With 返回带有附加字段的 logger.
func (z *zapLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return z
	}

	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		zapFields[i] = toZapField(f)
	}

	newLogger := z.logger.With(zapFields...)
	return &zapLogger{
		logger:  newLogger,
		sugar:   newLogger.Sugar(),
		closers: z.closers,
	}
}

// toZapField 将 Field 转换为 zap.Field.
func toZapField(f Field) zap.Field {
	switch v := f.Value.(type) {
	case string:
		return zap.String(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case float64:
		return zap.Float64(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case time.Duration:
		return zap.Duration(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	default:
		// slice、map、struct 等复杂类型走 AddReflected
		return zap.Reflect(f.Key, v)
	}
}

// WithContext 返回带有 requestId 与 OpenTelemetry traceId、spanId 的 logger.
// context 中没有这些信息时返回当前 logger.
func (z *zapLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return z
	}

	var fields []Field
	if requestID, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, String("requestId", requestID))
	}
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		fields = append(fields,
			String("traceId", span.TraceID().String()),
			String("spanId", span.SpanID().String()),
		)
	}
	return z.With(fields...)
}

// Sync 同步日志缓冲区.
func (z *zapLogger) Sync() error {
	return z.logger.Sync()
}

// Close 关闭 logger 并释放资源.
func (z *zapLogger) Close() error {
	// stdout/stderr 的 sync 错误可以忽略
	// https://github.com/uber-go/zap/issues/328
	_ = z.logger.Sync()

	for _, c := range z.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// 便捷字段构造函数

// String 创建字符串字段.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int 创建整数字段.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 创建 int64 字段.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool 创建布尔字段.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration 创建持续时间字段.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err 创建错误字段.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any 创建任意类型字段.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
