package tracer

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracing installs the global tracer provider. Spans are recorded by
// every service and repository method; attach an exporter here when one is
// available in the deployment environment.
func InitTracing() *trace.TracerProvider {
	tp := trace.NewTracerProvider(
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("LazyTraveler"),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp
}
