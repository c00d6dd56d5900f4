package dbx

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect accepts "postgres" or "sqlite".
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", s)
	}
}

// DriverName returns the database/sql driver registered for d.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind rewrites the ? placeholders of query into $1, $2, ... for
// PostgreSQL and returns it unchanged for SQLite. Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
