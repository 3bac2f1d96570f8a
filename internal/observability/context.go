package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// DetachTraceContext returns a fresh background context carrying only
// the span context of ctx. A study started from an MCP or HTTP request
// outlives that request; its goroutine runs on the detached context so
// canceling the request does not kill the study, while the study's
// spans still link back to the request trace.
func DetachTraceContext(ctx context.Context) context.Context {
	return DetachTraceContextFrom(ctx, context.Background())
}

// DetachTraceContextFrom grafts the span context of src onto baseCtx.
// The study manager uses it to keep studies under the server's
// lifetime context (so SIGTERM still cancels them) while tracing them
// as children of the request that started them.
func DetachTraceContextFrom(src, baseCtx context.Context) context.Context {
	sc := trace.SpanContextFromContext(src)
	if !sc.IsValid() {
		return baseCtx
	}
	return trace.ContextWithRemoteSpanContext(baseCtx, sc)
}
