package repo

import (
	"context"

	"gitfolio-core/internal/domain/user"
)

// RepositoryRepo defines the interface for repository persistence.
// Write methods run inside the caller's transaction when ctx carries one.
type RepositoryRepo interface {
	// UpsertAll inserts or overwrites repositories keyed by GitHub ID.
	// The selected flag of existing rows is preserved.
	UpsertAll(ctx context.Context, repos []*Repository) error

	// DeleteStale removes the owner's repositories not written by the given sync batch
	DeleteStale(ctx context.Context, owner user.UserID, batch string) (int64, error)

	// FindByID retrieves a repository by its GitHub ID
	FindByID(ctx context.Context, id GitHubID) (*Repository, error)

	// FindByUserID retrieves a user's repositories, most starred first
	FindByUserID(ctx context.Context, userID user.UserID) ([]*Repository, error)

	// CountByUserID returns the total number of repositories for a user
	CountByUserID(ctx context.Context, userID user.UserID) (int64, error)
}
