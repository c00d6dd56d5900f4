package users

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

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := r.dialect.Rebind(
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`)

	id := uuid.NewString()
	createdAt := timeNow().UTC()

	_, err := r.db.ExecContext(ctx, query, id, user.UserName, user.PasswordHash, createdAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return user, nil
}

func (r *SQLRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, username, password_hash, created_at FROM users
		 WHERE username = ?`)

	return r.getOne(ctx, query, userName)
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, username, password_hash, created_at FROM users
		 WHERE id = ?`)

	return r.getOne(ctx, query, id)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
