package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitfolio-core/internal/config"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnection(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.ApplySchema(context.Background(), zap.NewNop()))
	return db
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: DialectPostgres}
	lite := &DB{dialect: DialectSQLite}

	q := "UPDATE repositories SET selected = ? WHERE id = ? AND user_id = ?"
	assert.Equal(t, "UPDATE repositories SET selected = $1 WHERE id = $2 AND user_id = $3", pg.Rebind(q))
	assert.Equal(t, q, lite.Rebind(q))
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}

func TestApplySchema_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ApplySchema(context.Background(), zap.NewNop()))

	var n int
	require.NoError(t, db.GetConnection().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('profiles', 'repositories', 'portfolio_generations')",
	).Scan(&n))
	assert.Equal(t, 3, n)
}

func insertProfile(ctx context.Context, db *DB, id string) error {
	_, err := db.Executor(ctx).ExecContext(ctx,
		db.Rebind("INSERT INTO profiles (id, username, github_id) VALUES (?, ?, ?)"), id, "octocat", "1")
	return err
}

func countProfiles(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetConnection().QueryRow("SELECT COUNT(*) FROM profiles").Scan(&n))
	return n
}

func TestWithinTx_CommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WithinTx(ctx, func(ctx context.Context) error {
		assert.True(t, InTx(ctx))
		return insertProfile(ctx, db, "u1")
	}))
	assert.Equal(t, 1, countProfiles(t, db))

	boom := errors.New("boom")
	err := db.WithinTx(ctx, func(ctx context.Context) error {
		if err := insertProfile(ctx, db, "u2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, countProfiles(t, db), "rolled back insert must not be visible")
}

func TestWithinTx_NestedJoinsOuter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.WithinTx(ctx, func(ctx context.Context) error {
		if err := db.WithinTx(ctx, func(ctx context.Context) error {
			return insertProfile(ctx, db, "u1")
		}); err != nil {
			return err
		}
		return errors.New("abort outer")
	})
	require.Error(t, err)
	assert.Equal(t, 0, countProfiles(t, db))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetConnection().Exec(
		"INSERT INTO repositories (id, user_id, name, html_url) VALUES (1, 'ghost', 'demo', 'https://github.com/x/demo')")
	assert.Error(t, err)
}

func TestSQLState(t *testing.T) {
	assert.Equal(t, "23505", SQLState(fmt.Errorf("upsert: %w", &pq.Error{Code: "23505"})))
	assert.Equal(t, "42501", SQLState(fmt.Errorf("select: %w", &pgconn.PgError{Code: "42501"})))
	assert.True(t, IsAccessPolicyError(&pgconn.PgError{Code: "42501"}))
	assert.True(t, IsAccessPolicyError(fmt.Errorf("assume role: %w", &pq.Error{Code: "22023"})))
	assert.False(t, IsAccessPolicyError(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "42501"}))
	assert.Equal(t, "", SQLState(errors.New("plain")))
}
