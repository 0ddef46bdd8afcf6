// Package logging 构建 ccfront 使用的 zap 日志记录器
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDebug 设置为 1/true/on 时强制输出调试日志
const EnvDebug = "CCFRONT_DEBUG"

const timeLayout = "2006-01-02 15:04:05"

// DebugEnabled 检查环境变量 CCFRONT_DEBUG
func DebugEnabled() bool {
	switch strings.ToLower(os.Getenv(EnvDebug)) {
	case "1", "true", "on":
		return true
	}
	return false
}

// ParseLevel 解析日志级别，空字符串为 info
func ParseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New 创建输出到 w 的日志记录器
//
// 格式为 [时间] [级别] 消息 字段...。CCFRONT_DEBUG 打开时级别固定为 debug。
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if DebugEnabled() {
		lvl = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// NewFile 创建追加写入 path 的日志记录器，返回的函数用于关闭文件
func NewFile(level, path string) (*zap.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logger, err := New(level, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() error {
		_ = logger.Sync()
		return f.Close()
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	cfg.ConsoleSeparator = " "
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeLayout) + "]")
	}
	cfg.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + l.CapitalString() + "]")
	}
	return cfg
}
