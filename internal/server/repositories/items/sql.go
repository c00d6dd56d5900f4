package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/google/uuid"
)

var timeNow = time.Now

const itemColumns = `id, owner_id, name, quantity, expiration_date, category, image_url, created_at, updated_at`

// SQLRepository stores items in the items table of PostgreSQL or SQLite.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) CreateItem(ctx context.Context, item pantry.Item) (pantry.Item, error) {
	query := r.dialect.Rebind(
		`INSERT INTO items (` + itemColumns + `)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	now := timeNow().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Quantity, item.ExpirationDate,
		string(item.Category), item.ImageURL, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return pantry.Item{}, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) ListItemsByOwner(ctx context.Context, ownerID string) ([]pantry.Item, error) {
	query := r.dialect.Rebind(
		`SELECT ` + itemColumns + ` FROM items
		 WHERE owner_id = ?
		 ORDER BY created_at, id`)

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []pantry.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) GetItem(ctx context.Context, ownerID, id string) (pantry.Item, error) {
	query := r.dialect.Rebind(
		`SELECT ` + itemColumns + ` FROM items
		 WHERE id = ? AND owner_id = ?`)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pantry.Item{}, common.ErrorNotFound
		}
		return pantry.Item{}, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) UpdateItem(ctx context.Context, ownerID, id string, patch pantry.Patch) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Quantity != nil {
		set("quantity", *patch.Quantity)
	}
	if patch.ExpirationDate != nil {
		set("expiration_date", *patch.ExpirationDate)
	}
	if patch.Category != nil {
		set("category", string(*patch.Category))
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	set("updated_at", timeNow().UTC())
	args = append(args, id, ownerID)

	query := r.dialect.Rebind(
		`UPDATE items SET ` + strings.Join(sets, ", ") + `
		 WHERE id = ? AND owner_id = ?`)

	return r.execOne(ctx, query, args...)
}

func (r *SQLRepository) DeleteItem(ctx context.Context, ownerID, id string) error {
	query := r.dialect.Rebind(`DELETE FROM items WHERE id = ? AND owner_id = ?`)
	return r.execOne(ctx, query, id, ownerID)
}

// execOne runs a statement that must touch exactly one row.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (pantry.Item, error) {
	var (
		item     pantry.Item
		category string
	)
	err := s.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.ExpirationDate,
		&category, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return pantry.Item{}, err
	}
	item.Category = pantry.Category(category)
	return item, nil
}
