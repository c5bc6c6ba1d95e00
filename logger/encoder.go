package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newEncoder 按配置构建 JSON 或 console 编码器.
func newEncoder(config *Config) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = config.TimeKey
	cfg.MessageKey = config.MessageKey
	cfg.EncodeTime = timeEncoder(config.TimeFormat)
	cfg.EncodeLevel = levelEncoder(config.EncodeLevel)
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(config.Format, FormatJSON) {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.ConsoleSeparator = "\t"
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func timeEncoder(format string) zapcore.TimeEncoder {
	switch strings.ToLower(format) {
	case TimeFormatDateTime:
		return zapcore.TimeEncoderOfLayout(time.DateTime)
	case TimeFormatRFC3339:
		return zapcore.RFC3339TimeEncoder
	case TimeFormatEpoch:
		return zapcore.EpochTimeEncoder
	default:
		return zapcore.TimeEncoderOfLayout(format)
	}
}

func levelEncoder(encoding string) zapcore.LevelEncoder {
	switch strings.ToLower(encoding) {
	case EncodeLevelCapitalColor:
		return zapcore.CapitalColorLevelEncoder
	case EncodeLevelLower:
		return zapcore.LowercaseLevelEncoder
	default:
		return zapcore.CapitalLevelEncoder
	}
}

// parseLevel 解析日志级别，无法识别时使用 info.
func parseLevel(level string) zapcore.Level {
	level = strings.ToLower(level)
	if level == "warning" {
		level = LevelWarn
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
