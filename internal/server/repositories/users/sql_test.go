package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	fixClock(t, now)

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const byLoginQ = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow("u-1", "alice", "hash", created)
	mock.ExpectQuery(byLoginQ).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "u-1", UserName: "alice", PasswordHash: "hash", CreatedAt: created}, got)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byLoginQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byLoginQ).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow("u-1", "alice", "hash", time.Now())
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
}

func TestSQLite_RoundTrip(t *testing.T) {
	db, err := dbx.Open(context.Background(), dbx.SQLite, "file:users_repo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM users`)
	require.NoError(t, err)

	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{UserName: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{UserName: "bob", PasswordHash: "other"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := repo.GetUserByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.UserName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
