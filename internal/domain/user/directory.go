package user

import (
	"context"
)

// Directory is the identity-provider port.
// Implementations return *DomainError values from this package so callers
// can branch on Code instead of on message text.
type Directory interface {
	// GetUser resolves the account behind a user ID
	GetUser(ctx context.Context, id UserID) (*User, error)

	// GetOAuthAccessToken returns the caller's linked third-party access token
	GetOAuthAccessToken(ctx context.Context, id UserID, provider string) (string, error)
}
