package profile

import (
	"context"
	"encoding/json"
)

// GitHubProfile is the authenticated user resource returned by GitHub
type GitHubProfile struct {
	ID        int64
	Login     string
	Name      *string
	AvatarURL *string
	Bio       *string
	Location  *string
	Followers int
	Following int
}

// GitHubService fetches the authenticated user's profile.
// raw is the unmodified response body, returned to the caller of a sync.
type GitHubService interface {
	FetchAuthenticatedUser(ctx context.Context, accessToken string) (p *GitHubProfile, raw json.RawMessage, err error)
}
