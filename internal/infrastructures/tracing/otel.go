package tracing

import (
	"strings"

	"github.com/qamar62/st-booking/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "booking-api"

// Init builds the tracer provider and installs it as the global one used by
// the booking service spans. With tracing disabled the provider carries no
// exporter and spans are never shipped anywhere.
func Init(cfg config.TracingConfig) (*tracesdk.TracerProvider, error) {
	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	}

	if cfg.Enabled {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
			jaeger.WithEndpoint(collectorEndpoint(cfg.Collector)),
		))
		if err != nil {
			return nil, err
		}
		opts = append(opts, tracesdk.WithBatcher(exp))
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// collectorEndpoint normalizes the configured collector to the full traces
// URL the Jaeger exporter expects.
func collectorEndpoint(collector string) string {
	endpoint := strings.TrimSpace(collector)
	if endpoint == "" {
		endpoint = "localhost:14268"
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasSuffix(endpoint, "/api/traces") {
		endpoint += "/api/traces"
	}
	return endpoint
}
