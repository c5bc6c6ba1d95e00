package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Load 从文件加载配置.
// 支持 yaml, json, toml 等格式（根据文件扩展名自动识别）.
// 如果配置类型实现了 Validatable 接口，会自动进行验证.
func Load[T any](configPath string, opts ...Option) (*T, error) {
	options := buildOptions(opts)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
	}

	configType := options.ConfigType
	if configType == "" {
		configType = GetConfigType(configPath)
	}
	if configType == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(configType)
	applyOptions(v, options)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return unmarshalAndValidate[T](v)
}

// LoadFromBytes 从字节数组加载配置.
func LoadFromBytes[T any](data []byte, configType string, opts ...Option) (*T, error) {
	if len(data) == 0 {
		return nil, ErrNilConfig
	}
	options := buildOptions(opts)

	v := viper.New()
	v.SetConfigType(configType)
	applyOptions(v, options)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return unmarshalAndValidate[T](v)
}

// LoadWithSearch 在多个目录中按名称搜索配置文件.
//
// 所有目录都找不到时返回 ErrFileNotFound.
func LoadWithSearch[T any](configName string, searchPaths []string, opts ...Option) (*T, error) {
	options := buildOptions(opts)

	v := viper.New()
	v.SetConfigName(configName)
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	if options.ConfigType != "" {
		v.SetConfigType(options.ConfigType)
	}
	applyOptions(v, options)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configName)
		}
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return unmarshalAndValidate[T](v)
}

// applyOptions 应用通用选项到 viper 实例.
func applyOptions(v *viper.Viper, options *Options) {
	for key, value := range options.Defaults {
		v.SetDefault(key, value)
	}

	if options.EnvPrefix != "" {
		v.SetEnvPrefix(options.EnvPrefix)
	}
	if options.EnvKeyReplacer != nil {
		v.SetEnvKeyReplacer(options.EnvKeyReplacer)
	}
	if options.AutomaticEnv {
		v.AutomaticEnv()
	}

	v.AllowEmptyEnv(options.AllowEmptyEnv)
}

// unmarshalAndValidate 解析配置并验证.
func unmarshalAndValidate[T any](v *viper.Viper) (*T, error) {
	config := new(T)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}

	if validator, ok := any(config).(Validatable); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return config, nil
}
