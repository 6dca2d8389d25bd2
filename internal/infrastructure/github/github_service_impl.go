package github

import (
	"context"
	"encoding/json"
	"fmt"

	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/github"
)

// GitHubServiceImpl implements the domain profile.GitHubService and repo.GitHubService interfaces
type GitHubServiceImpl struct {
	client *github.Client
}

var (
	_ profile.GitHubService = (*GitHubServiceImpl)(nil)
	_ repo.GitHubService    = (*GitHubServiceImpl)(nil)
)

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) *GitHubServiceImpl {
	return &GitHubServiceImpl{client: client}
}

// FetchAuthenticatedUser fetches the token owner's profile from GitHub
func (g *GitHubServiceImpl) FetchAuthenticatedUser(ctx context.Context, accessToken string) (*profile.GitHubProfile, json.RawMessage, error) {
	u, raw, err := g.client.GetAuthenticatedUser(ctx, accessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch profile from GitHub: %w", err)
	}

	return &profile.GitHubProfile{
		ID:        u.ID,
		Login:     u.Login,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Location:  u.Location,
		Followers: u.Followers,
		Following: u.Following,
	}, raw, nil
}

// FetchUserRepositories fetches one page of the token owner's repositories from GitHub
func (g *GitHubServiceImpl) FetchUserRepositories(ctx context.Context, accessToken string, perPage int) ([]*repo.GitHubRepository, error) {
	githubRepos, err := g.client.GetUserRepositories(ctx, accessToken, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories from GitHub: %w", err)
	}

	// Convert to domain GitHub repositories
	domainRepos := make([]*repo.GitHubRepository, len(githubRepos))
	for i, ghRepo := range githubRepos {
		domainRepos[i] = &repo.GitHubRepository{
			ID:              ghRepo.ID,
			Name:            ghRepo.Name,
			FullName:        ghRepo.FullName,
			Description:     ghRepo.Description,
			HTMLURL:         ghRepo.HTMLURL,
			Private:         ghRepo.Private,
			Fork:            ghRepo.Fork,
			StargazersCount: ghRepo.StargazersCount,
			ForksCount:      ghRepo.ForksCount,
			Language:        ghRepo.Language,
		}
	}

	return domainRepos, nil
}
