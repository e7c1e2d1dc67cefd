package sql

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectCustomers = "SELECT name, address FROM customers"

func customerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"name", "address"}).
		AddRow("Marvin", "Highway 42").
		AddRow("Ford", "Betelgeuse 5").
		AddRow("Arthur", "Cottington 1")
}

func cursorFor(t *testing.T, rows *sqlmock.Rows) (*Cursor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(selectCustomers).WillReturnRows(rows)

	r, err := db.Query(selectCustomers)
	require.NoError(t, err)

	c, err := newCursor(r)
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	return c, mock
}

func TestCursor_FetchAll(t *testing.T) {
	c, mock := cursorFor(t, customerRows())

	rows, err := c.FetchAll()

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "address"}, c.Columns())
	assert.Equal(t, []Row{
		{"Marvin", "Highway 42"},
		{"Ford", "Betelgeuse 5"},
		{"Arthur", "Cottington 1"},
	}, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCursor_FetchMany(t *testing.T) {
	testCases := []struct {
		desc  string
		size  int
		count int
	}{
		{"zero rows", 0, 0},
		{"prefix", 2, 2},
		{"exact", 3, 3},
		{"more than available", 10, 3},
	}

	all := []Row{{"Marvin", "Highway 42"}, {"Ford", "Betelgeuse 5"}, {"Arthur", "Cottington 1"}}

	for i, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c, _ := cursorFor(t, customerRows())

			rows, err := c.FetchMany(tc.size)

			require.NoError(t, err, "TEST[%d]: %s failed", i, tc.desc)
			assert.Equal(t, all[:tc.count], rows, "TEST[%d]: %s failed", i, tc.desc)
		})
	}
}

func TestCursor_FetchManyContinuesFromPosition(t *testing.T) {
	c, _ := cursorFor(t, customerRows())

	first, err := c.FetchMany(1)
	require.NoError(t, err)

	rest, err := c.FetchAll()
	require.NoError(t, err)

	assert.Equal(t, []Row{{"Marvin", "Highway 42"}}, first)
	assert.Len(t, rest, 2)
}

func TestCursor_FetchManyNegative(t *testing.T) {
	c, _ := cursorFor(t, customerRows())

	rows, err := c.FetchMany(-1)

	require.ErrorIs(t, err, ErrInvalidLimit)
	assert.Nil(t, rows)
}

func TestCursor_NoResultSet(t *testing.T) {
	c, _ := cursorFor(t, sqlmock.NewRows(nil))

	assert.False(t, c.ReturnsRows())

	_, err := c.FetchAll()
	require.ErrorIs(t, err, ErrResultNoRows)

	_, err = c.FetchMany(1)
	require.ErrorIs(t, err, ErrResultNoRows)
}

func TestCursor_RowError(t *testing.T) {
	rows := customerRows().RowError(1, sql.ErrConnDone)
	c, _ := cursorFor(t, rows)

	_, err := c.FetchAll()

	require.ErrorIs(t, err, sql.ErrConnDone)
}

func TestCursor_Closed(t *testing.T) {
	c, _ := cursorFor(t, customerRows())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.FetchAll()
	require.ErrorIs(t, err, ErrCursorClosed)
}
