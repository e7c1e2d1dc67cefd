package sqltask

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultZipkinURL = "http://localhost:9411/api/v2/spans"
	defaultOTLPURL   = "localhost:4317"
)

// initTracer installs a tracer provider for task spans and the otelsql driver spans below
// them. Spans are exported when TRACE_EXPORTER is zipkin or otlp; otherwise they only give
// log lines a trace ID.
func (a *App) initTracer() {
	ratio, err := strconv.ParseFloat(a.Config.GetOrDefault("TRACER_RATIO", defaultTracerRatio), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		a.container.Errorf("invalid TRACER_RATIO %q, sampling every trace", a.Config.Get("TRACER_RATIO"))

		ratio = 1
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", a.container.GetAppName()),
			attribute.String("service.version", a.container.GetAppVersion()),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}

	if exporter := a.traceExporter(); exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	a.tracerProvider = sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(a.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	a.tracer = a.tracerProvider.Tracer(tracerName)
}

func (a *App) traceExporter() sdktrace.SpanExporter {
	name := strings.ToLower(a.Config.Get("TRACE_EXPORTER"))
	url := a.Config.Get("TRACER_URL")

	switch name {
	case "":
		return nil
	case "zipkin":
		if url == "" {
			url = defaultZipkinURL
		}

		a.container.Logf("Exporting traces to zipkin at %s", url)

		exporter, err := zipkin.New(url)
		if err != nil {
			a.container.Errorf("could not create zipkin exporter: %v", err)
			return nil
		}

		return exporter
	case "otlp":
		if url == "" {
			url = defaultOTLPURL
		}

		a.container.Logf("Exporting traces to otlp at %s", url)

		exporter, err := otlptracegrpc.New(context.Background(), otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(url))
		if err != nil {
			a.container.Errorf("could not create otlp exporter: %v", err)
			return nil
		}

		return exporter
	default:
		a.container.Errorf("unsupported TRACE_EXPORTER %q, traces are not exported", name)
		return nil
	}
}
