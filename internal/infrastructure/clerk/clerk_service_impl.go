package clerk

import (
	"context"
	"errors"

	"gitfolio-core/internal/clerk"
	"gitfolio-core/internal/domain/user"
)

// ClerkServiceImpl implements the domain user.Directory interface on top of the Clerk Backend API.
// Transport outcomes are translated into user.DomainError codes.
type ClerkServiceImpl struct {
	client *clerk.Client
}

var _ user.Directory = (*ClerkServiceImpl)(nil)

// NewClerkService creates a new Clerk service implementation
func NewClerkService(client *clerk.Client) *ClerkServiceImpl {
	return &ClerkServiceImpl{client: client}
}

// GetUser fetches user data from Clerk
func (c *ClerkServiceImpl) GetUser(ctx context.Context, id user.UserID) (*user.User, error) {
	cu, err := c.client.GetUser(ctx, id.String())
	if err != nil {
		return nil, translate(id, "", err)
	}

	u, err := user.NewUser(cu.ID, cu.Email, cu.Username)
	if err != nil {
		// a malformed email must not block a sync keyed on the user ID
		u, err = user.NewUser(cu.ID, "", cu.Username)
		if err != nil {
			return nil, user.ErrInvalidUserData("clerk user", err)
		}
	}
	return u.WithName(cu.FirstName, cu.LastName), nil
}

// GetOAuthAccessToken returns the user's linked provider token
func (c *ClerkServiceImpl) GetOAuthAccessToken(ctx context.Context, id user.UserID, provider string) (string, error) {
	tok, err := c.client.GetOAuthAccessToken(ctx, id.String(), provider)
	if err != nil {
		return "", translate(id, provider, err)
	}
	return tok.Token, nil
}

func translate(id user.UserID, provider string, err error) error {
	var cfgErr *clerk.ConfigError
	switch {
	case errors.Is(err, clerk.ErrUserNotFound):
		return user.ErrUserNotFound(id.String())
	case errors.Is(err, clerk.ErrNoOAuthToken):
		return user.ErrNoLinkedGrant(id.String(), provider)
	case errors.As(err, &cfgErr):
		return user.ErrIdentityConfiguration(err)
	default:
		return user.ErrIdentityUnavailable(err)
	}
}
