package pagination

import (
	"errors"
	"fmt"
	"math"

	"github.com/Tsukikage7/pagekit/config"
)

// 默认查询参数名.
const (
	DefaultPageParam  = "page"
	DefaultLimitParam = "limit"
)

// Settings 分页设置.
type Settings struct {
	// DefaultLimit 未指定每页数量时使用的值
	DefaultLimit int `json:"default_limit" toml:"default_limit" yaml:"default_limit" mapstructure:"default_limit"`

	// MaxLimit 每页数量上限
	MaxLimit int `json:"max_limit" toml:"max_limit" yaml:"max_limit" mapstructure:"max_limit"`

	// Links 当前页两侧展示的页码数量
	Links int `json:"links" toml:"links" yaml:"links" mapstructure:"links"`

	// PageParam 页码查询参数名
	PageParam string `json:"page_param" toml:"page_param" yaml:"page_param" mapstructure:"page_param"`

	// LimitParam 每页数量查询参数名
	LimitParam string `json:"limit_param" toml:"limit_param" yaml:"limit_param" mapstructure:"limit_param"`

	// Strict 页码超过末页时是否返回错误
	Strict bool `json:"strict" toml:"strict" yaml:"strict" mapstructure:"strict"`
}

// DefaultSettings 返回默认设置.
func DefaultSettings() Settings {
	return Settings{
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
		Links:        DefaultLinks,
		PageParam:    DefaultPageParam,
		LimitParam:   DefaultLimitParam,
	}
}

// settingsDefaults 返回供配置加载使用的默认值.
func settingsDefaults(prefix string) map[string]any {
	d := DefaultSettings()
	key := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "." + name
	}
	return map[string]any{
		key("default_limit"): d.DefaultLimit,
		key("max_limit"):     d.MaxLimit,
		key("links"):         d.Links,
		key("page_param"):    d.PageParam,
		key("limit_param"):   d.LimitParam,
		key("strict"):        d.Strict,
	}
}

// LoadSettings 从配置文件加载分页设置，缺省项使用默认值.
//
// 环境变量以 PAGEKIT 为前缀，例如 PAGEKIT_MAX_LIMIT 覆盖 max_limit.
func LoadSettings(path string, opts ...config.Option) (*Settings, error) {
	opts = append([]config.Option{
		config.WithDefaults(settingsDefaults("")),
		config.WithEnvPrefix("PAGEKIT"),
	}, opts...)
	return config.Load[Settings](path, opts...)
}

// FindSettings 在 paths 中搜索名为 name 的配置文件（扩展名任意），
// 所有目录都不存在该文件时返回默认设置.
func FindSettings(name string, paths []string, opts ...config.Option) (*Settings, error) {
	opts = append([]config.Option{
		config.WithDefaults(settingsDefaults("")),
		config.WithEnvPrefix("PAGEKIT"),
	}, opts...)
	s, err := config.LoadWithSearch[Settings](name, paths, opts...)
	if errors.Is(err, config.ErrFileNotFound) {
		d := DefaultSettings()
		return &d, nil
	}
	return s, err
}

// SettingsDefaults 返回挂载在 prefix 下的默认值，用于嵌入更大的配置结构.
func SettingsDefaults(prefix string) map[string]any {
	return settingsDefaults(prefix)
}

// Validate 验证设置.
func (s *Settings) Validate() error {
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("%w: default_limit 必须大于 0", ErrInvalidSettings)
	}
	if s.MaxLimit < s.DefaultLimit {
		return fmt.Errorf("%w: max_limit 不能小于 default_limit", ErrInvalidSettings)
	}
	if s.Links < 0 || s.Links > MaxLinks {
		return fmt.Errorf("%w: links 必须在 0 到 %d 之间", ErrInvalidSettings, MaxLinks)
	}
	if s.PageParam == "" || s.LimitParam == "" {
		return fmt.Errorf("%w: 查询参数名不能为空", ErrInvalidSettings)
	}
	return nil
}

// NewRequest 创建分页请求参数，自动应用默认值和边界校验.
func (s Settings) NewRequest(page, limit int) Request {
	r := Request{
		Page:  page,
		Limit: limit,
	}
	s.normalize(&r)
	return r
}

// normalize 标准化分页参数.
// 页码上限保证 (page-1)*limit 不溢出.
func (s Settings) normalize(r *Request) {
	if r.Page <= 0 {
		r.Page = DefaultPage
	}
	if r.Limit <= 0 {
		r.Limit = s.DefaultLimit
	}
	if r.Limit > s.MaxLimit {
		r.Limit = s.MaxLimit
	}
	if r.Limit > 0 && r.Page > math.MaxInt/r.Limit {
		r.Page = math.MaxInt / r.Limit
	}
}

// Options 将设置转换为分页选项.
func (s Settings) Options(opts ...Option) []Option {
	out := []Option{WithLinks(s.Links)}
	if s.Strict {
		out = append(out, WithStrict())
	}
	return append(out, opts...)
}
