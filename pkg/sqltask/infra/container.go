/*
Package infra wires the shared dependencies of a sqltask App. A Container owns the logger,
the metrics manager and the SQL credentials that tasks run against; it is created once at
startup and handed to every task run.
*/
package infra

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/sllt/sqltask/pkg/sqltask/config"
	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
	"github.com/sllt/sqltask/pkg/sqltask/logging"
	"github.com/sllt/sqltask/pkg/sqltask/metrics"
)

type Container struct {
	logging.Logger

	appName    string
	appVersion string

	metricsManager  metrics.Manager
	metricsProvider *metrics.Provider

	SQL sql.Credentials
}

// NewContainer builds the logger and metrics from conf. When DB_DIALECT is set, the SQL
// credentials described by the DB_* keys are created and checked as well.
func NewContainer(conf config.Config) *Container {
	c := &Container{
		appName:    conf.GetOrDefault("APP_NAME", "sqltask"),
		appVersion: conf.GetOrDefault("APP_VERSION", "dev"),
		Logger:     logging.NewLogger(logging.GetLevelFromString(conf.Get("LOG_LEVEL"))),
	}

	c.Debug("Container is being created")

	c.newMetricsManager()
	c.registerFrameworkMetrics()

	if conf.Get("DB_DIALECT") != "" {
		creds := sql.NewCredentials(sql.NewDBConfig(conf))
		creds.UseLogger(c.Logger)
		creds.UseMetrics(c.metricsManager)
		creds.Connect()

		c.SQL = creds
	}

	return c
}

func (c *Container) newMetricsManager() {
	provider, err := metrics.NewPrometheusProvider(c.appName, c.appVersion)
	if err != nil {
		c.Errorf("could not create metrics exporter, metrics are disabled: %v", err)
		c.metricsManager = metrics.NewMetricsManager(noop.NewMeterProvider().Meter(c.appName), c.Logger)

		return
	}

	c.metricsProvider = provider
	c.metricsManager = metrics.NewMetricsManager(provider.Meter(c.appName), c.Logger)
}

func (c *Container) registerFrameworkMetrics() {
	sqlBuckets := []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}
	taskBuckets := []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5, 10, 30, 60}

	c.metricsManager.NewHistogram("app_sql_stats", "Response time of SQL statements in milliseconds.", sqlBuckets...)
	c.metricsManager.NewUpDownCounter("app_sql_open_connections", "Number of SQL connections currently checked out.")
	c.metricsManager.NewHistogram("app_task_duration", "Duration of task runs in seconds.", taskBuckets...)
	c.metricsManager.NewCounter("app_task_runs", "Number of task runs by task and status.")
	c.metricsManager.NewGauge("app_tasks_registered", "Number of registered tasks.")
}

func (c *Container) GetAppName() string {
	return c.appName
}

func (c *Container) GetAppVersion() string {
	return c.appVersion
}

func (c *Container) Metrics() metrics.Manager {
	return c.metricsManager
}

// MetricsRegistry is the Prometheus registry metrics are exported to, nil when metrics are disabled.
func (c *Container) MetricsRegistry() *prometheus.Registry {
	if c.metricsProvider == nil {
		return nil
	}

	return c.metricsProvider.Registry
}

// Close releases the SQL pool and flushes metrics.
func (c *Container) Close() error {
	var err error

	if closer, ok := c.SQL.(interface{ Close() error }); ok {
		err = errors.Join(err, closer.Close())
	}

	if c.metricsProvider != nil {
		err = errors.Join(err, c.metricsProvider.Shutdown(context.Background()))
	}

	return err
}
