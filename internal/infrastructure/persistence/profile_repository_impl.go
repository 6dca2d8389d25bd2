package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/user"
)

// ProfileRepoImpl implements the domain profile.Repository interface on the elevated connection
type ProfileRepoImpl struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository implementation
func NewProfileRepository(db *database.DB) *ProfileRepoImpl {
	return &ProfileRepoImpl{db: db}
}

const upsertProfileSQL = `INSERT INTO profiles (` + profileColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	username        = excluded.username,
	full_name       = excluded.full_name,
	avatar_url      = excluded.avatar_url,
	bio             = excluded.bio,
	location        = excluded.location,
	followers_count = excluded.followers_count,
	following_count = excluded.following_count,
	github_id       = excluded.github_id,
	updated_at      = excluded.updated_at`

// Upsert inserts or overwrites the profile keyed by user ID
func (r *ProfileRepoImpl) Upsert(ctx context.Context, p *profile.Profile) error {
	_, err := r.db.Executor(ctx).ExecContext(ctx, r.db.Rebind(upsertProfileSQL),
		p.UserID().String(),
		p.Username(),
		nullString(p.FullName()),
		nullString(p.AvatarURL()),
		nullString(p.Bio()),
		nullString(p.Location()),
		p.FollowersCount(),
		p.FollowingCount(),
		p.GitHubID(),
		p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// FindByUserID retrieves the profile for a user
func (r *ProfileRepoImpl) FindByUserID(ctx context.Context, userID user.UserID) (*profile.Profile, error) {
	p, err := scanProfile(r.db.Executor(ctx).QueryRowContext(ctx,
		r.db.Rebind("SELECT "+profileColumns+" FROM profiles WHERE id = ?"), userID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrProfileNotFound(userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ExistsByUserID checks if a profile has been synced for a user
func (r *ProfileRepoImpl) ExistsByUserID(ctx context.Context, userID user.UserID) (bool, error) {
	var n int
	err := r.db.Executor(ctx).QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM profiles WHERE id = ?"), userID.String()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return n > 0, nil
}
