package generation

import (
	"context"

	"gitfolio-core/internal/domain/user"
)

// Repository defines the interface for generation persistence
type Repository interface {
	// Create stores a new generation
	Create(ctx context.Context, g *Generation) error

	// UpdateStatus stores the status fields of g
	UpdateStatus(ctx context.Context, g *Generation) error

	// FindForOwner retrieves a generation started by owner
	FindForOwner(ctx context.Context, owner user.UserID, id string) (*Generation, error)

	// ListByUserID lists a user's generations, newest first
	ListByUserID(ctx context.Context, owner user.UserID) ([]*Generation, error)

	// HasInProgress reports whether owner has a generation still generating
	HasInProgress(ctx context.Context, owner user.UserID) (bool, error)
}
