package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

type contextKey string

const (
	ctxLogger  contextKey = "logger"
	ctxRID     contextKey = "rid"
	ctxMeta    contextKey = "update_meta"
	ctxHandler contextKey = "handler"
)

// UpdateMeta identifies the Telegram update currently being handled.
type UpdateMeta struct {
	UpdateID int
	ChatID   int64
	UserID   int64
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger, log)
}

// FromContext returns the request-scoped logger or the global default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLogger).(*slog.Logger); ok {
			return l
		}
	}
	if L != nil {
		return L
	}
	return slog.Default()
}

// WithRID attaches the request correlation id to ctx.
func WithRID(ctx context.Context, rid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxRID, rid)
}

// RIDFrom returns the correlation id stored in ctx, if any.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxRID).(string); ok {
		return s
	}
	return ""
}

// WithUpdateMeta attaches the update identifiers to ctx.
func WithUpdateMeta(ctx context.Context, meta UpdateMeta) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxMeta, meta)
}

// UpdateMetaFrom returns the update identifiers stored in ctx.
func UpdateMetaFrom(ctx context.Context) UpdateMeta {
	if ctx == nil {
		return UpdateMeta{}
	}
	if m, ok := ctx.Value(ctxMeta).(UpdateMeta); ok {
		return m
	}
	return UpdateMeta{}
}

// WithHandler stores the handler identifier in ctx for downstream logs.
func WithHandler(ctx context.Context, handler string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if handler == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxHandler, handler)
}

// HandlerFrom returns the handler identifier stored in ctx, if any.
func HandlerFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(ctxHandler).(string); ok {
		return s
	}
	return ""
}

// BuildRID formats a correlation id as updateID:chatID:userID.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

// Sanitize removes control and format runes from s, keeping tabs and newlines.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r == 0x7F || unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeLimit sanitizes s and truncates the result to max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	cleaned := Sanitize(s)
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	return string(runes[:max])
}
