// Package logging builds the process logger and carries request-scoped loggers
// through context.Context.
//
// Request metadata accumulates by deriving child loggers:
//
//	ctx = logging.With(ctx, "request_id", rid)
//	ctx = logging.With(ctx, "user_id", uid)
//	logging.FromContext(ctx).Info("document deleted") // carries both fields
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

type ctxKey struct{}

var fallback = slog.New(slog.NewJSONHandler(io.Discard, nil))

// New returns a JSON logger writing one object per line to w. The time attribute is
// emitted as "ts" in loc, matching the format of the migration and tracing logs.
func New(w io.Writer, level string, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})
	return slog.New(h)
}

// ParseLevel maps a textual level to slog.Level. Unknown values yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return fallback
}

// With derives a child context whose logger carries the extra key/value pairs.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}
