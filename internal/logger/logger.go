// Package logger provides structured logging for the textclean CLI.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	Init(Options{})
}

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Init replaces the package logger according to opts.
func Init(opts Options) {
	if opts.Logger != nil {
		current.Store(opts.Logger)
		return
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	current.Store(slog.New(handler))
}

// SetLogger installs a custom slog.Logger, e.g. the host application's.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// L returns the current logger.
func L() *slog.Logger {
	return current.Load()
}

// Enabled reports whether the current logger emits records at level.
func Enabled(level slog.Level) bool {
	return L().Enabled(context.Background(), level)
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }

func Info(msg string, args ...any) { L().Info(msg, args...) }

func Warn(msg string, args ...any) { L().Warn(msg, args...) }

func Error(msg string, args ...any) { L().Error(msg, args...) }

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	L().DebugContext(ctx, msg, args...)
}
