package spatial

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used across the package.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output. It is the default
// for every structure in this package.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithStructure tags log records with the kind of index emitting them.
func (l *Logger) WithStructure(name string) *Logger {
	return &Logger{Logger: l.Logger.With("structure", name)}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

func (l *Logger) logBuild(count, depth int) {
	l.Debug("balanced build completed",
		"count", count,
		"depth", depth,
	)
}

func (l *Logger) logResize(oldBins, newBins int) {
	l.Debug("grid resized",
		"old_bins", oldBins,
		"new_bins", newBins,
	)
}

func (l *Logger) logTagReset(tag string, bins int) {
	l.Warn("tag counter saturated, resetting bin tags",
		"tag", tag,
		"bins", bins,
	)
}
