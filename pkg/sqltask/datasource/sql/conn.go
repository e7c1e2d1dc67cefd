// Package sql provides connections to SQL databases through the database/sql package. Connections are
// handed out one per call by a Credentials provider and wrap sql.Conn and sql.Tx with statement logging
// and metrics recording.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/sllt/sqltask/pkg/sqltask/datasource"
)

// Metrics is the recording surface used by connections.
type Metrics interface {
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	DeltaUpDownCounter(ctx context.Context, name string, value float64, labels ...string)
}

type Log struct {
	Type     string `json:"type"`
	Query    string `json:"query"`
	Duration int64  `json:"duration"`
	Args     []any  `json:"args,omitempty"`
}

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;24m%-6s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		l.Type, "SQL", l.Duration, clean(l.Query))
}

var whitespace = regexp.MustCompile(`\s+`)

func clean(query string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(query, " "))
}

func sendStats(logger datasource.Logger, metrics Metrics, config *DBConfig, start time.Time, queryType, query string, args ...any) {
	duration := time.Since(start).Microseconds()

	if logger != nil {
		logger.Debug(&Log{
			Type:     queryType,
			Query:    query,
			Duration: duration,
			Args:     args,
		})
	}

	if metrics != nil {
		metrics.RecordHistogram(context.Background(), "app_sql_stats", float64(duration)/1e3, "hostname", config.HostName,
			"database", config.Database, "type", getOperationType(query))
	}
}

func getOperationType(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return ""
	}

	return strings.ToUpper(words[0])
}

// Conn is a single connection checked out of a Credentials provider. It must be closed to be released.
type Conn struct {
	conn    *sql.Conn
	config  *DBConfig
	logger  datasource.Logger
	metrics Metrics
	closed  bool
}

// NewConn wraps an already acquired sql.Conn.
func NewConn(conn *sql.Conn, config *DBConfig, logger datasource.Logger, metrics Metrics) *Conn {
	if config == nil {
		config = &DBConfig{}
	}

	if metrics != nil {
		metrics.DeltaUpDownCounter(context.Background(), "app_sql_open_connections", 1,
			"database", config.Database)
	}

	return &Conn{conn: conn, config: config, logger: logger, metrics: metrics}
}

func (c *Conn) Dialect() string {
	return c.config.Dialect
}

// Begin starts a transaction on this connection.
func (c *Conn) Begin(ctx context.Context) (*Tx, error) {
	defer sendStats(c.logger, c.metrics, c.config, time.Now(), "Begin", "BEGIN")

	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Tx{Tx: tx, config: c.config, logger: c.logger, metrics: c.metrics}, nil
}

// Close returns the connection to its provider. Closing twice is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	if c.metrics != nil {
		c.metrics.DeltaUpDownCounter(context.Background(), "app_sql_open_connections", -1,
			"database", c.config.Database)
	}

	return c.conn.Close()
}

type Tx struct {
	*sql.Tx
	config  *DBConfig
	logger  datasource.Logger
	metrics Metrics
}

func (t *Tx) sendOperationStats(start time.Time, queryType, query string, args ...any) {
	sendStats(t.logger, t.metrics, t.config, start, queryType, query, args...)
}

// Execute binds params to query for the connection's dialect, runs it and returns its result
// handle. Statements without a result set still yield a Cursor; it simply reports no columns.
func (t *Tx) Execute(ctx context.Context, query string, params Params) (*Cursor, error) {
	query, args, err := bind(t.config.Dialect, query, params)
	if err != nil {
		return nil, err
	}

	defer t.sendOperationStats(time.Now(), "TxExecute", query, args...)

	rows, err := t.Tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return newCursor(rows)
}

func (t *Tx) Commit() error {
	defer t.sendOperationStats(time.Now(), "TxCommit", "COMMIT")
	return t.Tx.Commit()
}

func (t *Tx) Rollback() error {
	defer t.sendOperationStats(time.Now(), "TxRollback", "ROLLBACK")
	return t.Tx.Rollback()
}
