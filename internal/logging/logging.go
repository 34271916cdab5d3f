// Package logging 统一构造各组件使用的 charmbracelet/log 日志器
//
// 每个组件使用 WithPrefix 标注自己的名字，输出形如:
//
//	14:32:01.45 WARN Grid: out of bounds op=Get x=9 y=0
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var defaultLogger = New(os.Stderr, log.InfoLevel)

// New 创建带时间戳的日志器，时间格式为 "15:04:05.00"
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Default 返回进程级默认日志器（stderr, info 级别）
func Default() *log.Logger {
	return defaultLogger
}

// SetDefault 替换默认日志器，传入 nil 时忽略
func SetDefault(l *log.Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Component 返回带组件前缀的日志器
//
// 参数:
//   - l: 基础日志器，nil 时使用 Default()
//   - name: 组件名，如 "Grid"、"Selector"
func Component(l *log.Logger, name string) *log.Logger {
	if l == nil {
		l = defaultLogger
	}
	return l.WithPrefix(name)
}

// ParseLevel 解析配置中的日志级别，额外接受 "warning"
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger 把日志器挂到 context 上
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext 取出 context 中的日志器，没有时返回 Default()
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return defaultLogger
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return defaultLogger
}
