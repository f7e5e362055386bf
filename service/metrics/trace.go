package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"

	historyTrace "github.com/optakt/ledger-history/service/trace"
)

// Tracer exports spans to an OTLP collector over gRPC.
type Tracer struct {
	tracer   trace.Tracer
	shutdown func(context.Context) error
	log      zerolog.Logger
}

// NewTracer creates a tracer for the given service. The given attributes are
// attached to the resource, so that every span of the process carries them,
// such as the primary ledger endpoint the proxy is bound to.
func NewTracer(log zerolog.Logger, serviceName string, attributes ...attribute.KeyValue) (*Tracer, error) {
	ctx := context.TODO()
	attributes = append([]attribute.KeyValue{semconv.ServiceNameKey.String(serviceName)}, attributes...)
	res, err := resource.New(
		ctx,
		resource.WithAttributes(attributes...),
		resource.WithFromEnv(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// OLTP trace gRPC client initialization. Connection parameters for the exporter are extracted
	// from environment variables. e.g.: `OTEL_EXPORTER_OTLP_TRACES_ENDPOINT`.
	traceExporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Debug().Err(err).Msg("tracing error")
	}))

	t := Tracer{
		tracer:   tracerProvider.Tracer(serviceName),
		shutdown: tracerProvider.Shutdown,
		log:      log.With().Str("component", "tracer").Str("service", serviceName).Logger(),
	}

	return &t, nil
}

// Ready returns a channel that will close when the network stack is ready.
func (t *Tracer) Ready() <-chan struct{} {
	ready := make(chan struct{})
	close(ready)
	return ready
}

// Done returns a channel that will close when shutdown is complete.
func (t *Tracer) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := t.shutdown(ctx); err != nil {
			t.log.Error().Err(err).Msg("failed to shutdown tracer")
		}
		close(done)
	}()
	return done
}

func (t *Tracer) StartSpanFromContext(
	ctx context.Context,
	operationName historyTrace.SpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	kind := trace.SpanKindInternal
	switch operationName {
	case historyTrace.LookupPrimary, historyTrace.LookupArchive:
		kind = trace.SpanKindClient
	}
	opts = append(opts, trace.WithSpanKind(kind))
	return t.tracer.Start(ctx, string(operationName), opts...)
}
