package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/google/uuid"
)

var timeNow = time.Now

// SQLRepository implements Repository over dbx.DBTX (satisfied by *sql.DB
// or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := r.dialect.Rebind(`
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	now := timeNow().UTC()
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, token, now.Add(validity), now); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := r.dialect.Rebind(`
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = ?
	`)
	t := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&t.ID, &t.UserID, &t.Token, &t.Expires, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *SQLRepository) Delete(ctx context.Context, token string) error {
	query := r.dialect.Rebind(`DELETE FROM refresh_tokens WHERE token = ?`)
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := r.dialect.Rebind(`DELETE FROM refresh_tokens WHERE user_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
