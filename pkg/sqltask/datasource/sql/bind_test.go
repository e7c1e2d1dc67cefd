package sql

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	customer := Named{"name": "Marvin", "address": "Highway 42"}

	testCases := []struct {
		desc      string
		dialect   string
		query     string
		params    Params
		wantQuery string
		wantArgs  []any
	}{
		{"postgres named", "postgres", "INSERT INTO customers (name, address) VALUES (:name, :address)", customer,
			"INSERT INTO customers (name, address) VALUES ($1, $2)", []any{"Marvin", "Highway 42"}},
		{"mysql named", "mysql", "INSERT INTO customers (name, address) VALUES (:name, :address)", customer,
			"INSERT INTO customers (name, address) VALUES (?, ?)", []any{"Marvin", "Highway 42"}},
		{"postgres reuses position of a repeated name", "postgres",
			"SELECT * FROM customers WHERE name = :name OR nickname = :name AND address = :address", customer,
			"SELECT * FROM customers WHERE name = $1 OR nickname = $1 AND address = $2", []any{"Marvin", "Highway 42"}},
		{"mysql repeats a repeated name", "mysql",
			"SELECT * FROM customers WHERE name = :name OR nickname = :name", customer,
			"SELECT * FROM customers WHERE name = ? OR nickname = ?", []any{"Marvin", "Marvin"}},
		{"postgres cast kept", "postgres", "SELECT :name::text, now()::date", customer,
			"SELECT $1::text, now()::date", []any{"Marvin"}},
		{"quoted text kept", "postgres", "SELECT ':name', \":address\", 'it''s :x' FROM t WHERE a = :name", customer,
			"SELECT ':name', \":address\", 'it''s :x' FROM t WHERE a = $1", []any{"Marvin"}},
		{"mysql backslash escape in quotes", "mysql", `SELECT 'it\'s :x', :name`, customer,
			`SELECT 'it\'s :x', ?`, []any{"Marvin"}},
		{"comments kept", "postgres", "SELECT :name -- :x\n/* :y */ , :address", customer,
			"SELECT $1 -- :x\n/* :y */ , $2", []any{"Marvin", "Highway 42"}},
		{"escaped colon", "postgres", `SELECT '12' || \:name, :name`, customer,
			`SELECT '12' || :name, $1`, []any{"Marvin"}},
		{"colon after a word is not a placeholder", "mysql", "SELECT a:b, :name", customer,
			"SELECT a:b, ?", []any{"Marvin"}},
		{"positional untouched on postgres", "postgres", "SELECT $1", Positional{"Marvin"},
			"SELECT $1", []any{"Marvin"}},
		{"no params untouched", "mysql", "SELECT :name", nil, "SELECT :name", nil},
		{"sqlite binds by name", "sqlite", "SELECT :name", Named{"name": "Marvin"},
			"SELECT :name", []any{sql.Named("name", "Marvin")}},
	}

	for i, tc := range testCases {
		query, args, err := bind(tc.dialect, tc.query, tc.params)

		require.NoError(t, err, "TEST[%d]: %s failed", i, tc.desc)
		assert.Equal(t, tc.wantQuery, query, "TEST[%d]: %s failed", i, tc.desc)
		assert.Equal(t, tc.wantArgs, args, "TEST[%d]: %s failed", i, tc.desc)
	}
}

func TestBind_MissingParam(t *testing.T) {
	_, _, err := bind("postgres", "INSERT INTO customers VALUES (:name, :address)", Named{"name": "Marvin"})

	require.ErrorIs(t, err, ErrMissingParam)
	assert.Contains(t, err.Error(), `"address"`)
}
