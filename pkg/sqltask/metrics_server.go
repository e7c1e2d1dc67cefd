package sqltask

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sllt/sqltask/pkg/sqltask/infra"
	"github.com/sllt/sqltask/pkg/sqltask/metrics"
)

type metricServer struct {
	port      int
	srv       *http.Server
	container *infra.Container
}

func newMetricServer(port int, c *infra.Container) *metricServer {
	registry := c.MetricsRegistry()
	if registry == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.GetHandler(registry))

	return &metricServer{
		port:      port,
		container: c,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *metricServer) Run() {
	if m == nil {
		return
	}

	m.container.Logf("Starting metrics server on port: %d", m.port)

	err := m.srv.ListenAndServe()

	if !errors.Is(err, http.ErrServerClosed) {
		m.container.Errorf("error while listening to metrics server, err: %v", err)
	}
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	if m == nil || m.srv == nil {
		return nil
	}

	return ShutdownWithContext(ctx, func(ctx context.Context) error {
		return m.srv.Shutdown(ctx)
	}, m.srv.Close)
}
