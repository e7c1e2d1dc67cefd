package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []any
	warns  []string
}

func (l *recordingLogger) Error(args ...any)             { l.errors = append(l.errors, args...) }
func (l *recordingLogger) Errorf(f string, _ ...any)     { l.errors = append(l.errors, f) }
func (*recordingLogger) Warn(...any)                     {}
func (l *recordingLogger) Warnf(format string, _ ...any) { l.warns = append(l.warns, format) }

func scrape(t *testing.T, p *Provider) string {
	t.Helper()

	srv := httptest.NewServer(GetHandler(p.Registry))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestManager_RecordsToPrometheus(t *testing.T) {
	p, err := NewPrometheusProvider("sqltask-test", "dev")
	require.NoError(t, err)

	l := &recordingLogger{}
	m := NewMetricsManager(p.Meter("sqltask-test"), l)

	m.NewCounter("app_task_runs", "number of task runs")
	m.NewHistogram("app_task_duration", "task duration in seconds", .01, .1, 1)
	m.NewUpDownCounter("app_sql_open_connections", "connections in use")
	m.NewGauge("app_tasks_registered", "registered tasks")

	ctx := context.Background()

	m.IncrementCounter(ctx, "app_task_runs", "task", "sql_query", "status", "success")
	m.RecordHistogram(ctx, "app_task_duration", 0.05, "task", "sql_query")
	m.DeltaUpDownCounter(ctx, "app_sql_open_connections", 1)
	m.SetGauge("app_tasks_registered", 2)

	body := scrape(t, p)

	assert.Contains(t, body, "app_task_runs")
	assert.Contains(t, body, `task="sql_query"`)
	assert.Contains(t, body, "app_task_duration")
	assert.Contains(t, body, "app_sql_open_connections")
	assert.Contains(t, body, "app_tasks_registered")
	assert.Empty(t, l.errors)
}

func TestManager_UnknownAndDuplicateMetrics(t *testing.T) {
	p, err := NewPrometheusProvider("sqltask-test", "dev")
	require.NoError(t, err)

	l := &recordingLogger{}
	m := NewMetricsManager(p.Meter("sqltask-test"), l)

	m.IncrementCounter(context.Background(), "missing")
	m.NewCounter("dup", "first")
	m.NewHistogram("dup", "second")

	require.Len(t, l.errors, 2)
	assert.ErrorIs(t, l.errors[0].(error), errMetricDoesNotExist)
	assert.ErrorIs(t, l.errors[1].(error), errMetricExists)
}

func TestManager_OddLabelsAreTrimmed(t *testing.T) {
	p, err := NewPrometheusProvider("sqltask-test", "dev")
	require.NoError(t, err)

	l := &recordingLogger{}
	m := NewMetricsManager(p.Meter("sqltask-test"), l)

	m.NewCounter("app_task_runs", "runs")
	m.IncrementCounter(context.Background(), "app_task_runs", "task", "sql_execute", "status")

	assert.Len(t, l.warns, 1)
	assert.Contains(t, scrape(t, p), `task="sql_execute"`)
}
