package profile

import (
	"context"

	"gitfolio-core/internal/domain/user"
)

// Repository defines the interface for profile persistence
type Repository interface {
	// Upsert inserts or overwrites the profile keyed by user ID
	Upsert(ctx context.Context, p *Profile) error

	// FindByUserID retrieves the profile for a user
	FindByUserID(ctx context.Context, userID user.UserID) (*Profile, error)

	// ExistsByUserID checks if a profile has been synced for a user
	ExistsByUserID(ctx context.Context, userID user.UserID) (bool, error)
}
