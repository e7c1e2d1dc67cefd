package sqltask

import (
	"context"
	"errors"

	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
)

const (
	TaskExecute = "sql_execute"
	TaskQuery   = "sql_query"
)

var ErrNoSQL = errors.New("no SQL credentials configured")

// execute runs query on a connection acquired from creds and commits it. When fetch is set it
// reads the live cursor before the cursor is closed, the transaction committed and the
// connection released. An error from fetch is returned after the commit; an execution error
// rolls the transaction back. Errors are returned as the driver reported them.
func execute(ctx context.Context, query string, creds sql.Credentials, params sql.Params, fetch func(*sql.Cursor) error) error {
	return sql.WithConnection(ctx, creds, func(conn *sql.Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}

		ended := false

		defer func() {
			if !ended {
				_ = tx.Rollback()
			}
		}()

		cursor, err := tx.Execute(ctx, query, params)
		if err != nil {
			return err
		}

		defer cursor.Close()

		var fetchErr error
		if fetch != nil {
			fetchErr = fetch(cursor)
		}

		if err := cursor.Close(); err != nil {
			return err
		}

		ended = true

		if err := tx.Commit(); err != nil {
			return err
		}

		return fetchErr
	})
}

// Execute runs a statement that does not return rows, such as DDL or DML, and commits it.
func Execute(ctx context.Context, query string, creds sql.Credentials, params sql.Params) error {
	return execute(ctx, query, creds, params, nil)
}

// Query runs query and returns its rows. A nil limit fetches every row; otherwise at most
// *limit rows are fetched from the start of the result.
//
// A statement that does not return rows fails with sql.ErrResultNoRows and a negative limit
// with sql.ErrInvalidLimit; in both cases the statement has already been committed.
func Query(ctx context.Context, query string, creds sql.Credentials, params sql.Params, limit *int) ([]sql.Row, error) {
	var rows []sql.Row

	err := execute(ctx, query, creds, params, func(cursor *sql.Cursor) (err error) {
		if limit == nil {
			rows, err = cursor.FetchAll()
			return err
		}

		rows, err = cursor.FetchMany(*limit)

		return err
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func executeHandler(c *Context) (any, error) {
	in := c.Input()
	if err := in.validate(); err != nil {
		return nil, err
	}

	if c.SQL == nil {
		return nil, ErrNoSQL
	}

	return nil, Execute(c, in.Query, c.SQL, in.Params)
}

func queryHandler(c *Context) (any, error) {
	in := c.Input()
	if err := in.validate(); err != nil {
		return nil, err
	}

	if c.SQL == nil {
		return nil, ErrNoSQL
	}

	rows, err := Query(c, in.Query, c.SQL, in.Params, in.Limit)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// AddSQLTasks registers the Execute and Query tasks as sql_execute and sql_query.
func (a *App) AddSQLTasks() error {
	if err := a.AddTask(TaskExecute, executeHandler,
		WithDescription("Execute a statement that returns no rows and commit it."),
		WithTags("sql"),
	); err != nil {
		return err
	}

	return a.AddTask(TaskQuery, queryHandler,
		WithDescription("Execute a query and return its rows, optionally limited in count."),
		WithTags("sql"),
	)
}
