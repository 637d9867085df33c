package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger   *log.Logger
	initOnce sync.Once
)

// InitLog 初始化日志，appName 作为前缀
func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout，避免控制台把所有日志显示为红色
	l := log.New(os.Stdout)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetReportCaller(true)
	l.SetCallerOffset(1)
	l.SetLevel(ParseLevel(logLevel))
	initOnce.Do(func() {})
	logger = l
}

// SetOutput 重定向日志输出（测试里用来静音）
func SetOutput(w io.Writer) {
	current().SetOutput(w)
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// 没有 InitLog 的时候（单元测试、库调用）退化到 stderr + info
func current() *log.Logger {
	initOnce.Do(func() {
		if logger == nil {
			logger = log.New(os.Stderr)
			logger.SetLevel(log.InfoLevel)
			logger.SetReportCaller(true)
			logger.SetCallerOffset(1)
		}
	})
	return logger
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		current().Fatalf(format)
	} else {
		current().Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		current().Infof(format)
	} else {
		current().Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		current().Warnf(format)
	} else {
		current().Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		current().Errorf(format)
	} else {
		current().Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		current().Debugf(format)
	} else {
		current().Debugf(format, args...)
	}
}
