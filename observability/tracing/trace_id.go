package tracing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// GetStartingTraceID returns the trace id of the span carried by ctx.
// Without a valid span a "man-" prefixed uuid is returned, so hook logs of one
// call can still be correlated when otel tracing is not initialized.
func GetStartingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}
	return fmt.Sprintf("man-%s", uuid.NewString())
}
