package logger

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestQueryLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		started time.Duration
		err     error
		want    string
	}{
		{name: "fast", want: "level=DEBUG msg=\"Query executed\""},
		{name: "slow", started: time.Second, want: "level=WARN msg=\"Query executed slowly\""},
		{name: "no rows", err: sql.ErrNoRows, want: "level=DEBUG"},
		{name: "failure", err: errors.New("conn reset"), want: "level=ERROR msg=\"Query failed\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			NewQueryLogger(500 * time.Millisecond).AfterQuery(context.Background(), &bun.QueryEvent{
				Query:     "SELECT 1",
				StartTime: time.Now().Add(-tt.started),
				Err:       tt.err,
			})

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "type=db")
		})
	}
}
