package applog

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LevelTrace sits below slog.LevelDebug; slog has no native trace level.
const LevelTrace = slog.Level(-8)

// DefaultLogger wraps slog.Logger and implements AppLogger.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewAppDefaultLogger creates a new DefaultLogger with the level taken from
// the "log.level" configuration key.
func NewAppDefaultLogger() *DefaultLogger {
	level := parseLogLevel(viper.GetString("log.level"))
	return &DefaultLogger{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})),
	}
}

func (l *DefaultLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *DefaultLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *DefaultLogger) Trace(msg string, args ...any) {
	l.logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *DefaultLogger) Fatal(msg string, args ...any) {
	l.logger.Error(msg, args...)
	os.Exit(1)
}

func parseLogLevel(s string) slog.Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "trace":
		return LevelTrace
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
