package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/migrations"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repositories for one dialect and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a manager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return items.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gooseDialect(m.dialect)); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, string(m.dialect))
}

func gooseDialect(d dbx.Dialect) string {
	if d == dbx.Postgres {
		return "pgx"
	}
	return "sqlite3"
}
