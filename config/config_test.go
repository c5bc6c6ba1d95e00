package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite 配置测试套件.
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

// listConfig 测试用配置结构.
type listConfig struct {
	Name  string     `mapstructure:"name"`
	Paged pageConfig `mapstructure:"paged"`
}

type pageConfig struct {
	Limit int  `mapstructure:"limit"`
	Links int  `mapstructure:"links"`
	Exact bool `mapstructure:"exact"`
}

// boundedConfig 实现 Validatable 接口的配置.
type boundedConfig struct {
	Limit int `mapstructure:"limit"`
	Max   int `mapstructure:"max"`
}

func (c *boundedConfig) Validate() error {
	if c.Limit <= 0 {
		return errors.New("limit 必须大于 0")
	}
	if c.Max < c.Limit {
		return errors.New("max 不能小于 limit")
	}
	return nil
}

func (s *ConfigTestSuite) writeFile(name, content string) string {
	path := filepath.Join(s.tempDir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

// === Load 测试 ===

func (s *ConfigTestSuite) TestLoad_YAML() {
	path := s.writeFile("list.yaml", `
name: articles
paged:
  limit: 25
  links: 3
  exact: true
`)

	cfg, err := Load[listConfig](path)
	s.Require().NoError(err)
	s.Equal("articles", cfg.Name)
	s.Equal(25, cfg.Paged.Limit)
	s.Equal(3, cfg.Paged.Links)
	s.True(cfg.Paged.Exact)
}

func (s *ConfigTestSuite) TestLoad_JSON() {
	path := s.writeFile("list.json", `{"name": "comments", "paged": {"limit": 50}}`)

	cfg, err := Load[listConfig](path)
	s.Require().NoError(err)
	s.Equal("comments", cfg.Name)
	s.Equal(50, cfg.Paged.Limit)
}

func (s *ConfigTestSuite) TestLoad_TOML() {
	path := s.writeFile("list.toml", "name = \"tags\"\n\n[paged]\nlimit = 10\nlinks = 2\n")

	cfg, err := Load[listConfig](path)
	s.Require().NoError(err)
	s.Equal("tags", cfg.Name)
	s.Equal(2, cfg.Paged.Links)
}

func (s *ConfigTestSuite) TestLoad_FileNotFound() {
	_, err := Load[listConfig](filepath.Join(s.tempDir, "missing.yaml"))
	s.ErrorIs(err, ErrFileNotFound)
}

func (s *ConfigTestSuite) TestLoad_UnknownExtension() {
	path := s.writeFile("list.conf", "name: x\n")

	_, err := Load[listConfig](path)
	s.ErrorIs(err, ErrInvalidType)
}

func (s *ConfigTestSuite) TestLoad_WithConfigType() {
	path := s.writeFile("pagekit_noext", "name: noext\npaged:\n  limit: 12\n")

	cfg, err := Load[listConfig](path, WithConfigType("yaml"))
	s.Require().NoError(err)
	s.Equal("noext", cfg.Name)
	s.Equal(12, cfg.Paged.Limit)
}

func (s *ConfigTestSuite) TestLoad_InvalidYAML() {
	path := s.writeFile("invalid.yaml", `invalid: yaml: content: [}`)

	_, err := Load[listConfig](path)
	s.ErrorIs(err, ErrReadConfig)
}

func (s *ConfigTestSuite) TestLoad_WithDefaults() {
	path := s.writeFile("partial.yaml", "name: partial\n")

	cfg, err := Load[listConfig](path,
		WithDefaults(map[string]any{"paged.limit": 20}),
		WithDefaults(map[string]any{"paged.links": 10}),
	)
	s.Require().NoError(err)
	s.Equal("partial", cfg.Name)
	s.Equal(20, cfg.Paged.Limit)
	s.Equal(10, cfg.Paged.Links)
}

func (s *ConfigTestSuite) TestLoad_EnvOverride() {
	path := s.writeFile("env.yaml", "name: env\npaged:\n  limit: 20\n")
	s.T().Setenv("LISTAPP_PAGED_LIMIT", "40")

	cfg, err := Load[listConfig](path, WithEnvPrefix("LISTAPP"))
	s.Require().NoError(err)
	s.Equal(40, cfg.Paged.Limit)

	cfg, err = Load[listConfig](path, WithEnvPrefix("LISTAPP"), WithoutEnv())
	s.Require().NoError(err)
	s.Equal(20, cfg.Paged.Limit)
}

func (s *ConfigTestSuite) TestLoad_Validation() {
	path := s.writeFile("valid.yaml", "limit: 20\nmax: 100\n")
	cfg, err := Load[boundedConfig](path)
	s.Require().NoError(err)
	s.Equal(100, cfg.Max)

	path = s.writeFile("invalid.yaml", "limit: 20\nmax: 10\n")
	_, err = Load[boundedConfig](path)
	s.ErrorIs(err, ErrValidation)
	s.Contains(err.Error(), "max 不能小于 limit")
}

// === LoadFromBytes 测试 ===

func (s *ConfigTestSuite) TestLoadFromBytes() {
	cfg, err := LoadFromBytes[listConfig]([]byte(`{"name": "bytes", "paged": {"links": 4}}`), "json")
	s.Require().NoError(err)
	s.Equal("bytes", cfg.Name)
	s.Equal(4, cfg.Paged.Links)
}

func (s *ConfigTestSuite) TestLoadFromBytes_Empty() {
	_, err := LoadFromBytes[listConfig](nil, "yaml")
	s.ErrorIs(err, ErrNilConfig)
}

func (s *ConfigTestSuite) TestLoadFromBytes_Invalid() {
	_, err := LoadFromBytes[listConfig]([]byte(`invalid yaml: [}`), "yaml")
	s.ErrorIs(err, ErrReadConfig)

	_, err = LoadFromBytes[boundedConfig]([]byte("limit: 0\n"), "yaml")
	s.ErrorIs(err, ErrValidation)
}

// === LoadWithSearch 测试 ===

func (s *ConfigTestSuite) TestLoadWithSearch_Found() {
	sub := filepath.Join(s.tempDir, "etc")
	s.Require().NoError(os.MkdirAll(sub, 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(sub, "pagekit.yaml"), []byte("name: searched\n"), 0o644))

	cfg, err := LoadWithSearch[listConfig]("pagekit", []string{filepath.Join(s.tempDir, "missing"), sub})
	s.Require().NoError(err)
	s.Equal("searched", cfg.Name)
}

func (s *ConfigTestSuite) TestLoadWithSearch_NotFound() {
	_, err := LoadWithSearch[listConfig]("pagekit", []string{s.tempDir})
	s.ErrorIs(err, ErrFileNotFound)
}

func (s *ConfigTestSuite) TestGetConfigType() {
	testCases := []struct {
		filename string
		expected string
	}{
		{"config.yaml", "yaml"},
		{"config.yml", "yaml"},
		{"config.json", "json"},
		{"config.toml", "toml"},
		{".env", "env"},
		{"config.ini", ""},
		{"config", ""},
		{"CONFIG.YAML", "yaml"},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, GetConfigType(tc.filename), "文件: %s", tc.filename)
	}
}

func (s *ConfigTestSuite) TestDefaultOptions() {
	opts := DefaultOptions()
	s.NotNil(opts.EnvKeyReplacer)
	s.True(opts.AutomaticEnv)
	s.False(opts.AllowEmptyEnv)
	s.Empty(opts.Defaults)
}
