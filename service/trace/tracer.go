package trace

import (
	"context"

	otelTrace "go.opentelemetry.io/otel/trace"
)

type SpanName string

// Tracer starts spans for the operations of the ledger history proxy.
type Tracer interface {
	// Ready commences startup
	Ready() <-chan struct{}

	// Done commences shutdown
	Done() <-chan struct{}

	StartSpanFromContext(
		ctx context.Context,
		operationName SpanName,
		opts ...otelTrace.SpanStartOption,
	) (context.Context, otelTrace.Span)
}
