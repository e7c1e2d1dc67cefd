package sql

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrResultNoRows is returned when fetching from a statement that produced no result set.
	ErrResultNoRows = errors.New("this result object does not return rows")
	// ErrInvalidLimit is returned by FetchMany for a negative size.
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")
	// ErrCursorClosed is returned when fetching from a released cursor.
	ErrCursorClosed = errors.New("cursor is closed")
)

// Row is one fetched row; values are whatever the driver produced for each column.
type Row []any

// Cursor is the result handle of one executed statement. It is only readable while the
// connection that produced it is held, and rows are consumed as they are fetched.
type Cursor struct {
	rows    *sql.Rows
	columns []string
	closed  bool
}

func newCursor(rows *sql.Rows) (*Cursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}

	return &Cursor{rows: rows, columns: columns}, nil
}

// Columns returns the column names of the result set, empty for statements without one.
func (c *Cursor) Columns() []string {
	return c.columns
}

// ReturnsRows reports whether the statement produced a result set.
func (c *Cursor) ReturnsRows() bool {
	return len(c.columns) > 0
}

// FetchAll returns every remaining row.
func (c *Cursor) FetchAll() ([]Row, error) {
	return c.fetch(-1)
}

// FetchMany returns at most size rows from the current position.
func (c *Cursor) FetchMany(size int) ([]Row, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, size)
	}

	return c.fetch(size)
}

// fetch reads up to limit rows; a negative limit reads until the result set is exhausted.
func (c *Cursor) fetch(limit int) ([]Row, error) {
	if c.closed {
		return nil, ErrCursorClosed
	}

	if !c.ReturnsRows() {
		return nil, ErrResultNoRows
	}

	result := make([]Row, 0)

	for (limit < 0 || len(result) < limit) && c.rows.Next() {
		row, err := c.scan()
		if err != nil {
			return nil, err
		}

		result = append(result, row)
	}

	if err := c.rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Cursor) scan() (Row, error) {
	values := make(Row, len(c.columns))
	dest := make([]any, len(c.columns))

	for i := range values {
		dest[i] = &values[i]
	}

	if err := c.rows.Scan(dest...); err != nil {
		return nil, err
	}

	return values, nil
}

// Close discards any unread rows. It is safe to call more than once.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	if err := c.rows.Close(); err != nil {
		return err
	}

	return c.rows.Err()
}
