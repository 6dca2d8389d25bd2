package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/portfolio"
	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/domain/user"
)

// ScopedReader implements portfolio.ScopedReader. Every call runs as the caller:
// on Postgres under the read role with the caller's claims, so row-level policies apply.
type ScopedReader struct {
	db   *database.DB
	role string
}

var _ portfolio.ScopedReader = (*ScopedReader)(nil)

// NewScopedReader creates a reader that assumes role for each transaction
func NewScopedReader(db *database.DB, role string) *ScopedReader {
	return &ScopedReader{db: db, role: role}
}

// Read returns the profile and repositories visible to the caller
func (s *ScopedReader) Read(ctx context.Context, principal *user.Principal) (*portfolio.Portfolio, error) {
	out := &portfolio.Portfolio{}
	owner := principal.ID().String()

	err := s.db.WithinCallerScope(ctx, s.role, principal.Claims(), func(ctx context.Context) error {
		p, err := scanProfile(s.db.Executor(ctx).QueryRowContext(ctx,
			s.db.Rebind("SELECT "+profileColumns+" FROM profiles WHERE id = ?"), owner))
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("read profile: %w", err)
		default:
			out.Profile = p
		}

		repos, err := queryRepositories(ctx, s.db, "WHERE user_id = ?", owner)
		if err != nil {
			return fmt.Errorf("read repositories: %w", err)
		}
		out.Repositories = repos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetSelected flips the selected flag on one of the caller's repositories
func (s *ScopedReader) SetSelected(ctx context.Context, principal *user.Principal, id repo.GitHubID, selected bool) (bool, error) {
	var updated bool

	err := s.db.WithinCallerScope(ctx, s.role, principal.Claims(), func(ctx context.Context) error {
		res, err := s.db.Executor(ctx).ExecContext(ctx,
			s.db.Rebind("UPDATE repositories SET selected = ? WHERE id = ? AND user_id = ?"),
			selected, id.Int64(), principal.ID().String())
		if err != nil {
			return fmt.Errorf("update selection: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update selection: %w", err)
		}
		updated = n > 0
		return nil
	})
	return updated, err
}
