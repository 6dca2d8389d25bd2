package repo

import (
	"context"
)

// GitHubRepository represents a repository fetched from GitHub API
type GitHubRepository struct {
	ID              int64
	Name            string
	FullName        string
	Description     *string
	HTMLURL         string
	Private         bool
	Fork            bool
	StargazersCount int
	ForksCount      int
	Language        *string
}

// GitHubService is a domain service interface for interacting with GitHub
// Implementation will be in infrastructure layer
type GitHubService interface {
	// FetchUserRepositories fetches one page of the caller's repositories, most recently updated first
	FetchUserRepositories(ctx context.Context, accessToken string, perPage int) ([]*GitHubRepository, error)
}
