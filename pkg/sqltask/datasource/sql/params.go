package sql

import (
	"database/sql"
	"sort"
)

// Params are the values bound to a statement's placeholders. Positional values reach the driver
// unmodified; whether they match the placeholder style of the query is for the driver to decide.
type Params interface {
	Args() []any
}

// Positional binds values in order, for `?` or `$n` placeholders.
type Positional []any

func (p Positional) Args() []any {
	return p
}

// Named binds values by name to `:name` placeholders. On postgres and mysql the placeholders are
// compiled to the driver's positional style; sqlite binds them by name.
type Named map[string]any

// Args returns the values as sql.NamedArg, ordered by name.
func (n Named) Args() []any {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}

	sort.Strings(names)

	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, n[name]))
	}

	return args
}

func argsOf(p Params) []any {
	if p == nil {
		return nil
	}

	return p.Args()
}
