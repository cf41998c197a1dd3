package pg

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// slogTracer adapts slog to pgx's tracelog.Logger.
type slogTracer struct {
	logger *slog.Logger
}

func newSlogTracer(logger *slog.Logger) *slogTracer {
	return &slogTracer{logger: logger.With("component", "pgx")}
}

func (l *slogTracer) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}

	attrs := make([]slog.Attr, 0, len(data)+1)
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}

	var lvl slog.Level
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		lvl = slog.LevelDebug
	case tracelog.LogLevelInfo:
		lvl = slog.LevelInfo
	case tracelog.LogLevelWarn:
		lvl = slog.LevelWarn
	case tracelog.LogLevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
		attrs = append(attrs, slog.String("pgx_log_level", level.String()))
	}

	l.logger.LogAttrs(ctx, lvl, msg, attrs...)
}
