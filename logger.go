package rowchase

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/hupe1980/rowchase/chase"
	"github.com/hupe1980/rowchase/fmindex"
)

// Logger wraps slog.Logger with rowchase-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSource adds the index source name to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogOpen logs loading an index. idx is nil when loading failed.
func (l *Logger) LogOpen(ctx context.Context, idx *fmindex.Index, size int64, zeroCopy bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed", "error", err)
		return
	}
	p := idx.Params()
	l.InfoContext(ctx, "index opened",
		slog.Int64("size", size),
		slog.Bool("zero_copy", zeroCopy),
		slog.Group("index",
			slog.Any("rows", p.Len),
			slog.Any("off_rate", p.OffRate),
			slog.Int("references", len(idx.References())),
			slog.Int("fragments", len(idx.Fragments())),
		),
	)
}

// LogResolve logs a one-shot row resolution. Bad rows and query lengths are
// the caller's mistake and log at warn; anything else that fails is an
// index problem.
func (l *Logger) LogResolve(ctx context.Context, row, qlen, steps uint32, err error) {
	switch {
	case err == nil:
		l.DebugContext(ctx, "resolve completed",
			"row", row,
			"qlen", qlen,
			"steps", steps,
		)
	case errors.Is(err, chase.ErrInvalidRow), errors.Is(err, chase.ErrInvalidQueryLength):
		l.WarnContext(ctx, "resolve rejected",
			"row", row,
			"qlen", qlen,
			"error", err,
		)
	default:
		l.ErrorContext(ctx, "resolve failed",
			"row", row,
			"qlen", qlen,
			"steps", steps,
			"error", err,
		)
	}
}

// LogValidate logs a full integrity walk.
func (l *Logger) LogValidate(ctx context.Context, rows uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "validation failed",
			"rows", rows,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "validation passed", "rows", rows)
}
