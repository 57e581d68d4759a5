package trace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"modalstack/internal/config"
	"modalstack/internal/modal"
)

const tracerName = "modalstack/registry"

// OTLPExporter exports registry spans to an OTLP endpoint
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter creates an OTLP exporter when tracing is enabled in cfg.
// Returns nil if disabled.
func NewOTLPExporter(ctx context.Context, cfg config.TraceConfig) (*OTLPExporter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(), // local collectors only
	)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return newOTLPExporter(provider), nil
}

func newOTLPExporter(provider *sdktrace.TracerProvider) *OTLPExporter {
	return &OTLPExporter{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
	}
}

// Observer returns a registry observer that records one span per mutation,
// or nil when the exporter is disabled.
func (e *OTLPExporter) Observer() modal.Observer {
	if e == nil {
		return nil
	}
	return &SpanObserver{Tracer: e.tracer}
}

// Shutdown flushes and closes the exporter
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}

// SpanObserver turns registry events into short spans.
type SpanObserver struct {
	Tracer oteltrace.Tracer
}

var _ modal.Observer = (*SpanObserver)(nil)

// OnEvent implements modal.Observer.
func (o *SpanObserver) OnEvent(e modal.Event) {
	_, span := o.Tracer.Start(context.Background(), "registry."+e.Op.String(),
		oteltrace.WithSpanKind(oteltrace.SpanKindInternal),
	)
	span.SetAttributes(eventAttributes(e)...)
	span.End()
}

// eventAttributes maps an event onto the modalstack.* attribute namespace.
func eventAttributes(e modal.Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("modalstack.op", e.Op.String()),
		attribute.Int("modalstack.count", e.Count),
		attribute.Int("modalstack.registry.len", e.Len),
	}
	if e.ID != "" {
		attrs = append(attrs, attribute.String("modalstack.modal.id", e.ID))
	}
	return attrs
}
