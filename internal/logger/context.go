package logger

import (
	"context"
	"log/slog"
)

type metaKey struct{}

// requestMeta - атрибуты запроса, которые попадают в каждую запись лога
type requestMeta struct {
	requestID string
	userID    string
}

func metaFrom(ctx context.Context) requestMeta {
	if ctx == nil {
		return requestMeta{}
	}
	m, _ := ctx.Value(metaKey{}).(requestMeta)
	return m
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	m := metaFrom(ctx)
	m.requestID = requestID
	return context.WithValue(ctx, metaKey{}, m)
}

// WithUserID вызывается после аутентификации
func WithUserID(ctx context.Context, userID string) context.Context {
	m := metaFrom(ctx)
	m.userID = userID
	return context.WithValue(ctx, metaKey{}, m)
}

func GetRequestID(ctx context.Context) string { return metaFrom(ctx).requestID }

func GetUserID(ctx context.Context) string { return metaFrom(ctx).userID }

// FromContext - логгер с request_id и user_id запроса
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	m := metaFrom(ctx)
	if m.requestID != "" {
		l = l.With("request_id", m.requestID)
	}
	if m.userID != "" {
		l = l.With("user_id", m.userID)
	}
	return l
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// CtxWithError пишет ошибку уровня Error с полем error
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err}, args...)...)
}
