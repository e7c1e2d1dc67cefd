package sqltask

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/sllt/sqltask/pkg/sqltask/config"
	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
	"github.com/sllt/sqltask/pkg/sqltask/testutil"
)

func newTestApp(t *testing.T, values map[string]string) *App {
	t.Helper()

	conf := map[string]string{"METRICS_PORT": "0", "LOG_LEVEL": "DEBUG"}
	for k, v := range values {
		conf[k] = v
	}

	app := NewWithConfig(config.NewMockConfig(conf))

	t.Cleanup(func() { _ = app.container.Close() })

	return app
}

func newSQLiteApp(t *testing.T) *App {
	t.Helper()

	app := newTestApp(t, map[string]string{
		"DB_DIALECT": "sqlite",
		"DB_NAME":    testutil.SQLiteFile(t),
	})

	require.NoError(t, app.AddSQLTasks())

	return app
}

func newMockCredentials(t *testing.T, dialect string) (*sql.DBCredentials, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return sql.NewCredentialsWithDB(&sql.DBConfig{Dialect: dialect, HostName: "localhost", Database: "shop"}, db), mock
}
