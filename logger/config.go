package logger

import (
	"fmt"
	"slices"
	"strings"
)

var (
	levels  = []string{LevelDebug, LevelInfo, LevelWarn, "warning", LevelError, LevelFatal}
	formats = []string{FormatJSON, FormatConsole}
	outputs = []string{OutputConsole, OutputStderr, OutputFile, OutputBoth}
)

// Config 日志配置.
type Config struct {
	ServiceName string `json:"service_name" toml:"service_name" yaml:"service_name" mapstructure:"service_name"`
	Level       string `json:"level" toml:"level" yaml:"level" mapstructure:"level"`
	Format      string `json:"format" toml:"format" yaml:"format" mapstructure:"format"`

	// Output 为 file 或 both 时写入 {LogDir}/{ServiceName}/{ServiceName}.log
	Output string `json:"output" toml:"output" yaml:"output" mapstructure:"output"`
	LogDir string `json:"log_dir" toml:"log_dir" yaml:"log_dir" mapstructure:"log_dir"`

	EnableCaller bool   `json:"enable_caller" toml:"enable_caller" yaml:"enable_caller" mapstructure:"enable_caller"`
	TimeFormat   string `json:"time_format" toml:"time_format" yaml:"time_format" mapstructure:"time_format"`
	TimeKey      string `json:"time_key" toml:"time_key" yaml:"time_key" mapstructure:"time_key"`
	MessageKey   string `json:"message_key" toml:"message_key" yaml:"message_key" mapstructure:"message_key"`
	EncodeLevel  string `json:"encode_level" toml:"encode_level" yaml:"encode_level" mapstructure:"encode_level"`
}

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("logger config error [%s]: %s", e.Field, e.Message)
}

// oneOf 空值视为合法，比较忽略大小写.
func oneOf(value string, allowed []string) bool {
	return value == "" || slices.Contains(allowed, strings.ToLower(value))
}

// Validate 验证配置.
func (c *Config) Validate() error {
	switch {
	case c == nil:
		return &ConfigError{Field: "config", Message: "config cannot be nil"}
	case !oneOf(c.Level, levels):
		return &ConfigError{Field: "level", Message: "invalid log level: " + c.Level}
	case !oneOf(c.Format, formats):
		return &ConfigError{Field: "format", Message: "invalid format: " + c.Format}
	case !oneOf(c.Output, outputs):
		return &ConfigError{Field: "output", Message: "invalid output: " + c.Output}
	case c.needsFileOutput() && c.LogDir == "":
		return &ConfigError{Field: "log_dir", Message: "log_dir is required when output is file or both"}
	}
	return nil
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	setDefault(&c.ServiceName, "pagekit")
	setDefault(&c.Level, LevelInfo)
	setDefault(&c.Format, FormatJSON)
	setDefault(&c.Output, OutputConsole)
	setDefault(&c.TimeFormat, TimeFormatDateTime)
	setDefault(&c.TimeKey, "timestamp")
	setDefault(&c.MessageKey, "msg")
	setDefault(&c.EncodeLevel, EncodeLevelCapital)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func (c *Config) needsFileOutput() bool {
	return strings.EqualFold(c.Output, OutputFile) || strings.EqualFold(c.Output, OutputBoth)
}

func (c *Config) shouldOutputToConsole() bool {
	return strings.EqualFold(c.Output, OutputConsole) || strings.EqualFold(c.Output, OutputBoth)
}

func (c *Config) shouldOutputToStderr() bool {
	return strings.EqualFold(c.Output, OutputStderr)
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// NewCLIConfig 返回命令行工具配置，日志以 console 格式输出到标准错误.
func NewCLIConfig(level string) *Config {
	return &Config{
		Level:  level,
		Format: FormatConsole,
		Output: OutputStderr,
	}
}
