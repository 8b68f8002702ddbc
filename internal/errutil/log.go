// Package errutil holds helpers for the coded errors produced with
// github.com/samber/oops.
package errutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the code carried by err, or "" when err is not an oops error
// or has no code.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	switch code := oopsErr.Code().(type) {
	case nil:
		return ""
	case string:
		return code
	default:
		return fmt.Sprint(code)
	}
}

// LogError logs err at error level on logger. Code, domain and context of an
// oops error become separate attributes.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	attrs := []slog.Attr{slog.String("error", err.Error())}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(err); code != "" {
			attrs = append(attrs, slog.String("code", code))
		}
		if domain := oopsErr.Domain(); domain != "" {
			attrs = append(attrs, slog.String("domain", domain))
		}
		if fields := oopsErr.Context(); len(fields) > 0 {
			attrs = append(attrs, slog.Any("context", fields))
		}
	}
	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
