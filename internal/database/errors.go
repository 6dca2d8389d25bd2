package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLState returns the Postgres error code carried by err, or "" if there is none.
// Both supported Postgres drivers are recognised.
func SQLState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// IsAccessPolicyError reports whether err means the caller-scoped credential is not
// set up: missing privileges (42501), or a read role that does not exist (42704, 22023).
func IsAccessPolicyError(err error) bool {
	switch SQLState(err) {
	case "42501", "42704", "22023":
		return true
	}
	return false
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation
func IsUniqueViolation(err error) bool {
	return SQLState(err) == "23505"
}
