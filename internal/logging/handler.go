// Package logging configures log/slog for the CLI and for hosts embedding
// the registry.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Options selects the output and the identity stamped on every record.
type Options struct {
	Service string
	Version string
	// Format is "json" or "text". Empty means text.
	Format string
	// Level is parsed with ParseLevel.
	Level string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// spanHandler copies the trace and span IDs of the record's context, if any,
// onto the record.
type spanHandler struct {
	slog.Handler
}

func (h spanHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	//nolint:wrapcheck // handlers pass errors through untouched
	return h.Handler.Handle(ctx, r)
}

func (h spanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanHandler{h.Handler.WithAttrs(attrs)}
}

func (h spanHandler) WithGroup(name string) slog.Handler {
	return spanHandler{h.Handler.WithGroup(name)}
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else,
// including the empty string, is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from opts. Service and version are bound before any
// caller-supplied group, so they stay at the top level of every record.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}

	var identity []slog.Attr
	if opts.Service != "" {
		identity = append(identity, slog.String("service", opts.Service))
	}
	if opts.Version != "" {
		identity = append(identity, slog.String("version", opts.Version))
	}
	if len(identity) > 0 {
		h = h.WithAttrs(identity)
	}
	return slog.New(spanHandler{h})
}

// SetDefault builds a logger with New and installs it as the slog default.
func SetDefault(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}
