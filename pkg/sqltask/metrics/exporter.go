package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Provider bundles the meter provider with the Prometheus registry it exports to.
type Provider struct {
	*sdkmetric.MeterProvider
	Registry *prometheus.Registry
}

// NewPrometheusProvider builds a MeterProvider whose readings are exposed on a dedicated Prometheus registry.
func NewPrometheusProvider(appName, appVersion string) (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithoutTargetInfo())
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", appName),
		attribute.String("service.version", appVersion),
	)

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter), sdkmetric.WithResource(res))

	return &Provider{MeterProvider: mp, Registry: registry}, nil
}

// GetHandler serves the registry in the Prometheus text format.
func GetHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
