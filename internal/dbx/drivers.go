package dbx

import (
	// database/sql drivers behind Dialect.DriverName.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)
