package hooks

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/wrapcall"
	"github.com/rise-and-shine/wrapcall/meta"
)

// TraceEvent returns a hook that records an event named name on the span
// carried by the context. Without a recording span it does nothing.
func TraceEvent[R any](name string) wrapcall.Hook[R] {
	return Effect[R](func(ctx context.Context, args wrapcall.Args) error {
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return nil
		}

		span.AddEvent(name, trace.WithAttributes(
			attribute.String("wrapcall.call_id", meta.Find(ctx, meta.CallID)),
			attribute.String("wrapcall.wrapper", meta.Find(ctx, meta.WrapperName)),
			attribute.String("wrapcall.phase", meta.Find(ctx, meta.Phase)),
			attribute.Int("wrapcall.args", args.Len()),
		))
		return nil
	})
}
