// Package repomanager vends the repositories for the configured store
// driver and runs its schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Items(db dbx.DBTX) items.Repository
}
