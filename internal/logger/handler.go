package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandler writes one coloured line per record for terminal use.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	w      io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts: opts,
		w:    w,
		mu:   &sync.Mutex{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelWarn
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString(badge(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		parts = append(parts, h.formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, h.formatAttr(a))
		return true
	})
	if len(parts) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(parts, " "))
	}

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	clone := *h
	clone.attrs = merged
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	clone := *h
	clone.groups = groups
	return &clone
}

func badge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("[ERROR]")
	case level >= slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case level >= slog.LevelInfo:
		return color.CyanString("[INFO] ")
	case level == slog.LevelDebug:
		return color.HiBlackString("[DEBUG]")
	default:
		return fmt.Sprintf("[%s]", level.String())
	}
}

func (h *PrettyHandler) formatAttr(a slog.Attr) string {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	val := a.Value.Resolve().String()

	switch a.Key {
	case "error", "err":
		return color.RedString("%s=%s", key, val)
	case "duration_ms", "duration", "delay":
		return color.MagentaString("%s=%s", key, val)
	case "count", "total", "created", "failed", "status":
		return color.GreenString("%s=%s", key, val)
	case "owner", "repo", "caller", "request_id":
		return color.BlueString("%s=%s", key, val)
	default:
		return color.HiBlackString("%s=%s", key, val)
	}
}
