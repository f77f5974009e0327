package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Loggerはslog.LoggerにサービスとホストをつけたJSONロガー
type Logger struct {
	*slog.Logger
}

// New は level（debug/info/warn/error）で出力を絞る。wがnilならstdout。
func New(service string, level string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	hostname, _ := os.Hostname()

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return &Logger{
		Logger: slog.New(handler).With(
			slog.String("service", service),
			slog.String("hostname", hostname),
		),
	}
}

// WithComponent は component 属性つきの子ロガー
func (l *Logger) WithComponent(component string) *slog.Logger {
	return l.Logger.With(slog.String("component", component))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard はテスト用
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
