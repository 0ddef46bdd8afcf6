// Package config 读取与生成 ccfront.toml 项目配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/tangzhangming/ccfront/internal/i18n"
)

// 常量定义
const (
	FileName = "ccfront.toml" // 配置文件名
)

// Config 项目配置
type Config struct {
	Lexer       LexerConfig       `toml:"lexer"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Log         LogConfig         `toml:"log"`
}

// LexerConfig 词法规则
type LexerConfig struct {
	// Rules 规则文件路径（.toml 或逐行格式），为空时使用内置 C 规则表
	Rules string `toml:"rules"`
}

// DiagnosticsConfig 诊断输出
type DiagnosticsConfig struct {
	Lang  string `toml:"lang"`  // en | zh
	Color bool   `toml:"color"` // 终端颜色
}

// LogConfig 日志
type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{Lang: "en", Color: true},
		Log:         LogConfig{Level: "info"},
	}
}

// Load 从文件加载配置，未给出的字段取默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// 规则文件相对于配置文件所在目录
	if cfg.Lexer.Rules != "" && !filepath.IsAbs(cfg.Lexer.Rules) {
		cfg.Lexer.Rules = filepath.Join(filepath.Dir(path), cfg.Lexer.Rules)
	}
	return cfg, nil
}

// Parse 解析配置内容
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if _, ok := i18n.ParseLanguage(c.Diagnostics.Lang); !ok {
		return fmt.Errorf("invalid diagnostics.lang %q", c.Diagnostics.Lang)
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	content := generateConfigWithComments(c)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("[lexer]\n")
	sb.WriteString("# 规则文件（.toml 或逐行格式），留空使用内置 C 规则表\n")
	sb.WriteString(fmt.Sprintf("rules = %q\n\n", c.Lexer.Rules))

	sb.WriteString("[diagnostics]\n")
	sb.WriteString("# 诊断语言：en | zh\n")
	sb.WriteString(fmt.Sprintf("lang = %q\n", c.Diagnostics.Lang))
	sb.WriteString("# 终端颜色\n")
	sb.WriteString(fmt.Sprintf("color = %t\n\n", c.Diagnostics.Color))

	sb.WriteString("[log]\n")
	sb.WriteString("# 日志级别：debug | info | warn | error\n")
	sb.WriteString(fmt.Sprintf("level = %q\n", c.Log.Level))

	return sb.String()
}

// Find 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func Find(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}

// LoadFrom 查找并加载 startPath 所在项目的配置，找不到时返回默认配置
func LoadFrom(startPath string) (*Config, string, error) {
	path := Find(startPath)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
