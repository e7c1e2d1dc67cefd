package sql

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq" // postgres driver
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/sllt/sqltask/pkg/sqltask/datasource"
)

// Credentials hands out database connections. Every call to Connection yields a connection the
// caller owns until it calls Close; whether connections are pooled is up to the implementation.
type Credentials interface {
	Connection(ctx context.Context) (*Conn, error)
	Dialect() string
}

// Provider is a Credentials that can be wired into an App.
type Provider interface {
	Credentials

	UseLogger(logger any)
	UseMetrics(metrics any)
	Connect()
	Close() error
}

// DBCredentials is the Credentials for mysql, postgres and sqlite databases described by a DBConfig.
// The underlying pool is opened on first use.
type DBCredentials struct {
	config  *DBConfig
	logger  datasource.Logger
	metrics Metrics

	mu sync.Mutex
	db *sql.DB
}

// NewCredentials returns credentials for cfg. Nothing is dialled until a connection is requested.
func NewCredentials(cfg *DBConfig) *DBCredentials {
	return &DBCredentials{config: withNormalizedDialect(cfg)}
}

// NewCredentialsWithDB serves connections from an already opened pool.
func NewCredentialsWithDB(cfg *DBConfig, db *sql.DB) *DBCredentials {
	return &DBCredentials{config: withNormalizedDialect(cfg), db: db}
}

// withNormalizedDialect resolves dialect aliases up front so the dialect is never rewritten
// once connections are handed out. Unknown dialects are left for Validate to report.
func withNormalizedDialect(cfg *DBConfig) *DBConfig {
	if d, err := normalizeDialect(cfg.Dialect); err == nil {
		cfg.Dialect = d
	}

	return cfg
}

func (c *DBCredentials) UseLogger(logger any) {
	if l, ok := logger.(datasource.Logger); ok {
		c.logger = l
	}
}

func (c *DBCredentials) UseMetrics(metrics any) {
	if m, ok := metrics.(Metrics); ok {
		c.metrics = m
	}
}

func (c *DBCredentials) Dialect() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.config.Dialect
}

// Connect opens the pool and checks the database is reachable. Failures are only logged:
// they surface again on the first Connection call.
func (c *DBCredentials) Connect() {
	db, err := c.pool()
	if err != nil {
		c.logError("could not open %s database pool: %v", c.config.Dialect, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		c.logError("could not connect to %s database %q at %q: %v", c.config.Dialect, c.config.Database,
			c.config.HostName, err)

		return
	}

	if c.logger != nil {
		c.logger.Infof("connected to '%s' database at '%s:%s'", c.config.Database, c.config.HostName, c.config.Port)
	}
}

const pingTimeout = 5 * time.Second

func (c *DBCredentials) logError(format string, args ...any) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}

// Connection checks a dedicated connection out of the pool. Errors from the driver are returned as is.
func (c *DBCredentials) Connection(ctx context.Context) (*Conn, error) {
	db, err := c.pool()
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return NewConn(conn, c.config, c.logger, c.metrics), nil
}

// Stats exposes the pool statistics; it is zero before the pool is opened.
func (c *DBCredentials) Stats() sql.DBStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return sql.DBStats{}
	}

	return c.db.Stats()
}

func (c *DBCredentials) pool() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	db, err := otelsql.Open(c.config.driverName(), c.config.dataSourceName(),
		otelsql.WithAttributes(attribute.String("db.system", c.config.Dialect)))
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(c.config.MaxIdleConn)
	db.SetMaxOpenConns(c.config.MaxOpenConn)
	db.SetConnMaxLifetime(c.config.ConnMaxLifetime)

	c.db = db

	return db, nil
}

// Close closes the pool. Connections already handed out stay valid until released.
func (c *DBCredentials) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil

	return err
}

// WithConnection runs fn on a connection from creds and releases it on every exit path.
func WithConnection(ctx context.Context, creds Credentials, fn func(conn *Conn) error) (err error) {
	conn, err := creds.Connection(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := conn.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(conn)
}
