package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// InitLogger builds the JSON logger the servers run with. Records
// logged under a traced context carry trace_id and span_id, so a study
// run's log lines can be joined with its spans. LOG_LEVEL selects the
// minimum level (debug, info, warn, error), defaulting to info.
func InitLogger() *slog.Logger {
	inner := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return slog.New(&traceAttrHandler{inner: inner})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// traceAttrHandler stamps each record with the ids of the span active
// in its context. Records logged outside any span pass through as-is.
type traceAttrHandler struct {
	inner slog.Handler
}

func (h *traceAttrHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *traceAttrHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *traceAttrHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceAttrHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *traceAttrHandler) WithGroup(name string) slog.Handler {
	return &traceAttrHandler{inner: h.inner.WithGroup(name)}
}
