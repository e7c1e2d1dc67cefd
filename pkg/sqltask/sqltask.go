/*
Package sqltask runs named tasks over SQL databases. An App owns the configuration, logger,
metrics, tracer and an explicit task registry; the two SQL tasks, Execute and Query, are
registered with AddSQLTasks and invoked by name through Run or a YAML flow.
*/
package sqltask

import (
	"context"
	"errors"
	"strconv"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sllt/sqltask/pkg/sqltask/config"
	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
	"github.com/sllt/sqltask/pkg/sqltask/infra"
	"github.com/sllt/sqltask/pkg/sqltask/logging"
	"github.com/sllt/sqltask/pkg/sqltask/metrics"
)

// App is the main application in the sqltask framework.
type App struct {
	// Config can be used by applications to fetch custom configurations from environment or file.
	Config config.Config

	container *infra.Container
	registry  *TaskRegistry

	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer

	metricServer   *metricServer
	defaultTimeout time.Duration
}

// New creates an App with configuration read from ./configs.
func New() *App {
	return NewWithConfig(config.NewEnvFile(configLocation, logging.NewLogger(logging.INFO)))
}

// NewWithConfig creates an App from an already loaded configuration.
func NewWithConfig(cfg config.Config) *App {
	app := &App{
		Config:    cfg,
		container: infra.NewContainer(cfg),
		registry:  newTaskRegistry(),
	}

	app.initTracer()

	if port, err := strconv.Atoi(cfg.GetOrDefault("METRICS_PORT", defaultMetricPort)); err == nil && port > 0 {
		app.metricServer = newMetricServer(port, app.container)
	} else if err != nil {
		app.container.Errorf("invalid METRICS_PORT %q, metrics server disabled", cfg.Get("METRICS_PORT"))
	}

	timeout, err := time.ParseDuration(cfg.GetOrDefault("TASK_TIMEOUT", defaultTaskTimeout))
	if err != nil {
		app.container.Errorf("invalid TASK_TIMEOUT %q, tasks run without a default timeout", cfg.Get("TASK_TIMEOUT"))
	}

	app.defaultTimeout = timeout

	return app
}

// Logger returns the logger instance associated with the App.
func (a *App) Logger() logging.Logger {
	return a.container.Logger
}

// Metrics returns the metrics manager associated with the App.
func (a *App) Metrics() metrics.Manager {
	return a.container.Metrics()
}

// SQL returns the credentials tasks run against, nil when none are configured.
func (a *App) SQL() sql.Credentials {
	return a.container.SQL
}

// AddSQL sets the SQL credentials tasks run against, replacing any configured from DB_* keys.
func (a *App) AddSQL(db sql.Provider) {
	db.UseLogger(a.Logger())
	db.UseMetrics(a.Metrics())

	db.Connect()

	a.container.SQL = db
}

// Start runs fn while the metrics server serves alongside it. The server is stopped once fn
// returns, and fn's error is returned.
func (a *App) Start(ctx context.Context, fn func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	if a.metricServer != nil {
		g.Go(func() error {
			a.metricServer.Run()
			return nil
		})

		g.Go(func() error {
			select {
			case <-done:
			case <-gctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutDownTimeout)
			defer cancel()

			return a.metricServer.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer close(done)
		return fn(gctx)
	})

	return g.Wait()
}

// Shutdown stops the metrics server, closes the SQL pool and flushes pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	var err error

	if a.metricServer != nil {
		err = errors.Join(err, a.metricServer.Shutdown(ctx))
	}

	if a.container != nil {
		err = errors.Join(err, a.container.Close())
	}

	if a.tracerProvider != nil {
		err = errors.Join(err, a.tracerProvider.Shutdown(ctx))
	}

	if err != nil {
		a.Logger().Errorf("error while shutting down: %v", err)
	}

	return err
}
