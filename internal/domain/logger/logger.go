package logger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// QueryLogger is a bun.QueryHook that reports every statement through slog.
// Statements faster than Slow are logged at debug level.
type QueryLogger struct {
	Slow time.Duration
}

var _ bun.QueryHook = (*QueryLogger)(nil)

func NewQueryLogger(slow time.Duration) *QueryLogger {
	return &QueryLogger{Slow: slow}
}

func (l *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (l *QueryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", event.Operation()),
		slog.String("query", event.Query),
		slog.Duration("took", duration),
	}

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		slog.Error("Query failed", append(attrs, slog.Any("error", event.Err))...)
		return
	}

	if event.Result != nil {
		if n, err := event.Result.RowsAffected(); err == nil {
			attrs = append(attrs, slog.Int64("affected_rows", n))
		}
	}

	if l.Slow > 0 && duration >= l.Slow {
		slog.Warn("Query executed slowly", attrs...)
		return
	}
	slog.Debug("Query executed", attrs...)
}
