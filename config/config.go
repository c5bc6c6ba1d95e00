// Package config 提供基于 viper 的配置加载功能.
package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// 预定义错误.
var (
	// ErrNilConfig 配置内容为空.
	ErrNilConfig = errors.New("配置为空")

	// ErrFileNotFound 配置文件不存在.
	ErrFileNotFound = errors.New("配置文件不存在")

	// ErrInvalidType 不支持的配置文件类型.
	ErrInvalidType = errors.New("不支持的配置文件类型")

	// ErrReadConfig 读取配置失败.
	ErrReadConfig = errors.New("读取配置失败")

	// ErrUnmarshal 解析配置失败.
	ErrUnmarshal = errors.New("解析配置失败")

	// ErrValidation 配置验证失败.
	ErrValidation = errors.New("配置验证失败")
)

// Validatable 可验证的配置接口.
type Validatable interface {
	Validate() error
}

// GetConfigType 根据文件扩展名获取配置类型，无法识别时返回空字符串.
func GetConfigType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".env":
		return "env"
	default:
		return ""
	}
}
