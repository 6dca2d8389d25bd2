package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// WithinCallerScope runs fn in a read-committed transaction that acts as the caller.
// On Postgres it publishes the caller's claims to request.jwt.claims and switches to
// role so row-level policies decide which rows fn can see. SQLite has no roles, so
// callers must filter by owner themselves.
func (db *DB) WithinCallerScope(ctx context.Context, role string, claims []byte, fn func(ctx context.Context) error) error {
	if db.dialect != DialectPostgres {
		return db.withinTx(ctx, nil, func(context.Context, *sql.Tx) error { return nil }, fn)
	}

	setup := func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT set_config('request.jwt.claims', $1, true)", string(claims)); err != nil {
			return fmt.Errorf("set claims: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "SET LOCAL ROLE "+pq.QuoteIdentifier(role)); err != nil {
			return fmt.Errorf("assume role %s: %w", role, err)
		}
		return nil
	}

	return db.withinTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, setup, fn)
}
