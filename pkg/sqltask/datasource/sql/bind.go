package sql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMissingParam = errors.New("a value is required for bind parameter")

// bind returns the statement text and driver arguments for params on dialect. Named params are
// compiled from `:name` placeholders to `$n` on postgres and `?` on mysql, whose drivers cannot
// bind by name; sqlite binds names natively. Everything else reaches the driver unmodified.
func bind(dialect, query string, params Params) (string, []any, error) {
	named, ok := params.(Named)
	if !ok || (dialect != dialectPostgres && dialect != dialectMySQL) {
		return query, argsOf(params), nil
	}

	return compileNamed(dialect, query, named)
}

// compileNamed rewrites `:name` placeholders outside of quoted text and comments. A colon
// preceded by a word character (`12:30`) or part of a `::` cast is kept as is, and `\:` yields
// a literal colon.
func compileNamed(dialect, query string, named Named) (string, []any, error) {
	var (
		b        strings.Builder
		args     []any
		position = make(map[string]int)
	)

	b.Grow(len(query))

	for i := 0; i < len(query); {
		c := query[i]

		switch {
		case c == '\'' || c == '"' || c == '`':
			end := quotedEnd(query, i, dialect == dialectMySQL)
			b.WriteString(query[i:end])
			i = end
		case strings.HasPrefix(query[i:], "--"):
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = len(query) - i
			}

			b.WriteString(query[i : i+end])
			i += end
		case strings.HasPrefix(query[i:], "/*"):
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				end = len(query) - i
			} else {
				end += 4
			}

			b.WriteString(query[i : i+end])
			i += end
		case strings.HasPrefix(query[i:], `\:`):
			b.WriteByte(':')
			i += 2
		case c == ':' && isPlaceholder(query, i):
			end := i + 1
			for end < len(query) && isWordChar(query[end]) {
				end++
			}

			name := query[i+1 : end]

			value, ok := named[name]
			if !ok {
				return "", nil, fmt.Errorf("%w %q", ErrMissingParam, name)
			}

			if dialect == dialectMySQL {
				args = append(args, value)
				b.WriteByte('?')
			} else {
				n, seen := position[name]
				if !seen {
					args = append(args, value)
					n = len(args)
					position[name] = n
				}

				b.WriteString("$" + strconv.Itoa(n))
			}

			i = end
		case c == ':':
			// keep runs of colons together so `::name` is never read as a placeholder
			end := i
			for end < len(query) && query[end] == ':' {
				end++
			}

			b.WriteString(query[i:end])
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), args, nil
}

func isPlaceholder(query string, i int) bool {
	if i > 0 && isWordChar(query[i-1]) {
		return false
	}

	return i+1 < len(query) && isWordChar(query[i+1])
}

func isWordChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// quotedEnd returns the index just past the quoted text starting at start. Doubled quotes
// stay inside the text; backslash escapes do too when backslashEscapes is set.
func quotedEnd(query string, start int, backslashEscapes bool) int {
	quote := query[start]

	for i := start + 1; i < len(query); i++ {
		switch query[i] {
		case '\\':
			if backslashEscapes {
				i++
			}
		case quote:
			if i+1 < len(query) && query[i+1] == quote {
				i++
				continue
			}

			return i + 1
		}
	}

	return len(query)
}
