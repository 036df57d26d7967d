package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "CMP"
	TypeDB        LogType = "DB"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
)

type CustomHandler struct {
	out    io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	groups []string
}

// NewHandler writes one colored line per record to w. A nil writer means
// stdout.
func NewHandler(w io.Writer, level slog.Leveler, color bool) *CustomHandler {
	if w == nil {
		w = os.Stdout
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &CustomHandler{
		out:   w,
		mu:    &sync.Mutex{},
		level: level,
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	fields := collect(&r)
	message := r.Message
	if r.Level >= slog.LevelError {
		location := fields["error_location"]
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := fields["error"]; details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}

	if cmd, user := fields["name"], fields["user_name"]; cmd != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmd, user)
	}
	if status := fields["status"]; status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took := fields["took"]; took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}

	var attrsStr strings.Builder
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	for _, attr := range h.attrs {
		if !isInternalAttr(attr.Key) {
			fmt.Fprintf(&attrsStr, " %s%s=%v", prefix, attr.Key, attr.Value)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		if !isInternalAttr(a.Key) {
			fmt.Fprintf(&attrsStr, " %s%s=%v", prefix, a.Key, a.Value)
		}
		return true
	})

	line := fmt.Sprintf("[HonorBot] [%s] [%s] [%s] %s%s",
		r.Time.Format("15:04:05"), levelText, getLogType(fields["type"]), message, attrsStr.String())
	if h.color {
		line = fmt.Sprintf("%s[HonorBot] [%s] [%s%s%s] [%s] %s%s%s",
			colorWhite, r.Time.Format("15:04:05"), levelColor, levelText, colorWhite,
			getLogType(fields["type"]), message, attrsStr.String(), colorReset)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// skippedMessages are disgo internals that drown out the bot's own output.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(r *slog.Record) bool {
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func collect(r *slog.Record) map[string]string {
	fields := make(map[string]string, 6)
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "type", "name", "user_name", "status", "error", "error_location", "took":
			fields[a.Key] = a.Value.String()
		}
		return true
	})
	return fields
}

func getLogType(t string) LogType {
	switch t {
	case "cmd":
		return TypeCommand
	case "component":
		return TypeComponent
	case "db":
		return TypeDB
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "error", "error_location", "took":
		return true
	}
	return false
}

// Setup installs the handler as the slog default.
func Setup(level slog.Level, color bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, color)))
	slog.Debug("Logger initialized", slog.String("type", "sys"), slog.String("level", level.String()))
}

// Since is a convenience for the took attribute.
func Since(start time.Time) slog.Attr {
	return slog.Duration("took", time.Since(start).Round(time.Millisecond))
}
