package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type ctxKey string

const contextKeyRequestID ctxKey = "request_id"

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config value to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	minLvl           = LevelInfo
)

// SetOutput redirects every subsequent log line to w. Nil restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLvl = l
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

var tags = map[Level]struct {
	label string
	attrs []color.Attribute
}{
	LevelDebug: {"[DEBUG]", []color.Attribute{color.FgCyan}},
	LevelInfo:  {"[INFO] ", []color.Attribute{color.FgWhite, color.BgGreen}},
	LevelWarn:  {"[WARN] ", []color.Attribute{color.FgWhite, color.BgYellow}},
	LevelError: {"[Error]", []color.Attribute{color.FgRed}},
}

func write(l Level, requestID, format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLvl {
		return
	}
	tag := tags[l]
	paint := color.New(tag.attrs...).SprintFunc()
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		msg = fmt.Sprintf("[req_id=%s] %s", requestID, msg)
	}
	fmt.Fprintf(out, "%s %s\n", paint(tag.label), msg)
}

// Debug log debug detail
func Debug(format string, a ...interface{}) { write(LevelDebug, "", format, a...) }

// Info log information
func Info(format string, a ...interface{}) { write(LevelInfo, "", format, a...) }

// Warn log warning
func Warn(format string, a ...interface{}) { write(LevelWarn, "", format, a...) }

// Error log error
func Error(format string, a ...interface{}) { write(LevelError, "", format, a...) }

// InfoWithContext logs information with context (includes request ID if available)
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	write(LevelInfo, RequestID(ctx), format, a...)
}

// WarnWithContext logs warning with context (includes request ID if available)
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	write(LevelWarn, RequestID(ctx), format, a...)
}

// ErrorWithContext logs error with context (includes request ID if available)
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	write(LevelError, RequestID(ctx), format, a...)
}

// DebugStruct dumps values at debug level.
func DebugStruct(label string, a ...interface{}) {
	mu.Lock()
	enabled := minLvl <= LevelDebug
	mu.Unlock()
	if !enabled {
		return
	}
	write(LevelDebug, "", "%s\n%s", label, strings.TrimRight(spew.Sdump(a...), "\n"))
}
