// Package metrics registers and records application metrics through the OpenTelemetry metric API.
// Instruments must be registered before use; recording an unknown metric is logged and dropped.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	errMetricDoesNotExist = errors.New("metric does not exist")
	errMetricExists       = errors.New("metric already exists")
)

// Manager registers instruments by name and records values against them.
type Manager interface {
	NewCounter(name, desc string)
	NewUpDownCounter(name, desc string)
	NewHistogram(name, desc string, buckets ...float64)
	NewGauge(name, desc string)

	IncrementCounter(ctx context.Context, name string, labels ...string)
	DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

// Logger is the subset of logging the manager needs.
type Logger interface {
	Error(args ...any)
	Errorf(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
}

type metricsManager struct {
	meter  metric.Meter
	logger Logger

	mu         sync.RWMutex
	counters   map[string]metric.Int64Counter
	upDowns    map[string]metric.Float64UpDownCounter
	histograms map[string]metric.Float64Histogram
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsManager returns a Manager that creates instruments on meter.
func NewMetricsManager(meter metric.Meter, logger Logger) Manager {
	return &metricsManager{
		meter:      meter,
		logger:     logger,
		counters:   make(map[string]metric.Int64Counter),
		upDowns:    make(map[string]metric.Float64UpDownCounter),
		histograms: make(map[string]metric.Float64Histogram),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *metricsManager) exists(name string) bool {
	_, c := m.counters[name]
	_, u := m.upDowns[name]
	_, h := m.histograms[name]
	_, g := m.gauges[name]

	return c || u || h || g
}

func (m *metricsManager) NewCounter(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricExists, name))
		return
	}

	counter, err := m.meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error while creating counter %v: %v", name, err)
		return
	}

	m.counters[name] = counter
}

func (m *metricsManager) NewUpDownCounter(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricExists, name))
		return
	}

	upDown, err := m.meter.Float64UpDownCounter(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error while creating up-down counter %v: %v", name, err)
		return
	}

	m.upDowns[name] = upDown
}

func (m *metricsManager) NewHistogram(name, desc string, buckets ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricExists, name))
		return
	}

	opts := []metric.Float64HistogramOption{metric.WithDescription(desc)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}

	histogram, err := m.meter.Float64Histogram(name, opts...)
	if err != nil {
		m.logger.Errorf("error while creating histogram %v: %v", name, err)
		return
	}

	m.histograms[name] = histogram
}

func (m *metricsManager) NewGauge(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(name) {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricExists, name))
		return
	}

	gauge, err := m.meter.Float64Gauge(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error while creating gauge %v: %v", name, err)
		return
	}

	m.gauges[name] = gauge
}

func (m *metricsManager) IncrementCounter(ctx context.Context, name string, labels ...string) {
	m.mu.RLock()
	counter, ok := m.counters[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricDoesNotExist, name))
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(m.attributes(labels)...))
}

func (m *metricsManager) DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string) {
	m.mu.RLock()
	upDown, ok := m.upDowns[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricDoesNotExist, name))
		return
	}

	upDown.Add(ctx, value, metric.WithAttributes(m.attributes(labels)...))
}

func (m *metricsManager) RecordHistogram(ctx context.Context, name string, value float64, labels ...string) {
	m.mu.RLock()
	histogram, ok := m.histograms[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricDoesNotExist, name))
		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(m.attributes(labels)...))
}

func (m *metricsManager) SetGauge(name string, value float64, labels ...string) {
	m.mu.RLock()
	gauge, ok := m.gauges[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Error(fmt.Errorf("%w: %s", errMetricDoesNotExist, name))
		return
	}

	gauge.Record(context.Background(), value, metric.WithAttributes(m.attributes(labels)...))
}

// attributes turns key/value label pairs into attributes. A dangling key is dropped.
func (m *metricsManager) attributes(labels []string) []attribute.KeyValue {
	if len(labels)%2 != 0 {
		m.logger.Warnf("metrics label has invalid key value pair, dropping %q", labels[len(labels)-1])
		labels = labels[:len(labels)-1]
	}

	attrs := make([]attribute.KeyValue, 0, len(labels)/2)

	for i := 0; i < len(labels); i += 2 {
		attrs = append(attrs, attribute.String(labels[i], labels[i+1]))
	}

	return attrs
}
