package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Format selects the handler installed by Initialize.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
)

// Options configures the default logger.
type Options struct {
	Debug   bool
	Verbose bool
	Format  Format
	Writer  io.Writer
}

// Level maps the CLI flags onto a slog level: warn by default,
// info with --verbose, debug with --debug.
func (o Options) Level() slog.Level {
	switch {
	case o.Debug:
		return slog.LevelDebug
	case o.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// New builds a logger without touching the process default.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level(),
		AddSource: opts.Debug,
	}

	var handler slog.Handler
	switch opts.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = NewPrettyHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Initialize installs the logger described by opts as slog's default.
func Initialize(opts Options) {
	slog.SetDefault(New(opts))
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return WithLogger(ctx, l)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
