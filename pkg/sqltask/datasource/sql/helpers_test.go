package sql

import (
	"context"
	"fmt"
	"sync"
)

type mockLogger struct {
	mu     sync.Mutex
	debugs []any
	infos  []string
	errors []string
}

func (l *mockLogger) Debug(args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.debugs = append(l.debugs, args...)
}

func (*mockLogger) Debugf(string, ...any) {}
func (*mockLogger) Info(...any)           {}

func (l *mockLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (*mockLogger) Logf(string, ...any) {}
func (*mockLogger) Error(...any)        {}

func (l *mockLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (*mockLogger) Warnf(string, ...any) {}

func (l *mockLogger) statementTypes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	types := make([]string, 0, len(l.debugs))

	for _, d := range l.debugs {
		if entry, ok := d.(*Log); ok {
			types = append(types, entry.Type)
		}
	}

	return types
}

type histogramRecord struct {
	name   string
	labels []string
}

type mockMetrics struct {
	mu         sync.Mutex
	histograms []histogramRecord
	open       float64
}

func (m *mockMetrics) RecordHistogram(_ context.Context, name string, _ float64, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.histograms = append(m.histograms, histogramRecord{name: name, labels: labels})
}

func (m *mockMetrics) DeltaUpDownCounter(_ context.Context, _ string, value float64, _ ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open += value
}
