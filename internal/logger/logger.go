package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

// Init настраивает глобальный логгер: текст в development и test, JSON иначе
func Init(env string) {
	l := slog.New(newHandler(env, os.Stdout))
	current.Store(l)
	slog.SetDefault(l)
}

func newHandler(env string, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		return slog.NewTextHandler(w, opts)
	case "test":
		opts.Level = slog.LevelWarn
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// GetLogger возвращает глобальный логгер; до Init это slog.Default()
func GetLogger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { GetLogger().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetLogger().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetLogger().Warn(msg, args...) }
func Error(msg string, args ...any) { GetLogger().Error(msg, args...) }

// Fatal логирует ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// HTTPLog - запись access-лога; уровень зависит от статуса ответа
func HTTPLog(method, path string, status int, duration time.Duration, size int, args ...any) {
	fields := append([]any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}, args...)

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	GetLogger().Log(context.Background(), level, "http request", fields...)
}

// DBLog логирует SQL-запрос GORM
func DBLog(operation, query string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"query", query,
		"duration_ms", duration.Milliseconds(),
	}
	if err != nil {
		GetLogger().Error("database operation failed", append(fields, "error", err)...)
		return
	}
	GetLogger().Debug("database operation", fields...)
}

// WorkerLog логирует шаг фонового воркера
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{"worker", worker, "operation", operation}, args...)
	if err != nil {
		GetLogger().Error("worker operation failed", append(fields, "error", err)...)
		return
	}
	GetLogger().Info("worker operation completed", fields...)
}
