// Package logging is the diagnostic side channel. Every entry carries the
// fixed tag the native library used on the platform log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Tag is attached to every record.
const Tag = "libgl2jni"

var (
	mu     sync.Mutex
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With("tag", Tag)
}

// SetOutput redirects all subsequent records to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Logger returns the current process logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Info logs a printf-style message at informational level.
func Info(format string, args ...any) {
	emit(slog.LevelInfo, format, args...)
}

// Error logs a printf-style message at error level.
func Error(format string, args ...any) {
	emit(slog.LevelError, format, args...)
}

func emit(level slog.Level, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	Logger().Log(context.Background(), level, msg)
}
