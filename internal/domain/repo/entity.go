package repo

import (
	"fmt"
	"time"

	"gitfolio-core/internal/domain/user"
)

// Repository is a stored snapshot of one GitHub repository owned by a synced user
type Repository struct {
	githubID    GitHubID
	userID      user.UserID
	name        Name
	description *string
	starsCount  int
	forksCount  int
	language    *string
	htmlURL     URL
	selected    bool
	syncBatch   string
	updatedAt   time.Time
}

// FromGitHub normalizes an upstream repository payload and tags it with its owner.
// batch identifies the sync run that produced the row.
func FromGitHub(owner user.UserID, gh *GitHubRepository, batch string, syncedAt time.Time) (*Repository, error) {
	if gh == nil {
		return nil, ErrInvalidRepositoryData("payload", fmt.Errorf("nil repository"))
	}
	if owner.IsZero() {
		return nil, ErrInvalidRepositoryData("owner", fmt.Errorf("owner cannot be empty"))
	}

	githubID, err := NewGitHubID(gh.ID)
	if err != nil {
		return nil, ErrInvalidRepositoryData("id", err)
	}

	name, err := NewName(gh.Name)
	if err != nil {
		return nil, ErrInvalidRepositoryData("name", err)
	}

	htmlURL, err := NewURL(gh.HTMLURL)
	if err != nil {
		return nil, ErrInvalidRepositoryData("html_url", err)
	}

	return &Repository{
		githubID:    githubID,
		userID:      owner,
		name:        name,
		description: gh.Description,
		starsCount:  nonNegative(gh.StargazersCount),
		forksCount:  nonNegative(gh.ForksCount),
		language:    gh.Language,
		htmlURL:     htmlURL,
		syncBatch:   batch,
		updatedAt:   syncedAt.UTC(),
	}, nil
}

// Reconstitute recreates a Repository entity from persistence
func Reconstitute(
	githubID int64,
	userID string,
	name string,
	description *string,
	stars, forks int,
	language *string,
	htmlURL string,
	selected bool,
	syncBatch string,
	updatedAt time.Time,
) (*Repository, error) {
	idVO, err := NewGitHubID(githubID)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub ID: %w", err)
	}

	owner, err := user.ParseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner: %w", err)
	}

	nameVO, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid repository name: %w", err)
	}

	urlVO, err := NewURL(htmlURL)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL: %w", err)
	}

	return &Repository{
		githubID:    idVO,
		userID:      owner,
		name:        nameVO,
		description: description,
		starsCount:  stars,
		forksCount:  forks,
		language:    language,
		htmlURL:     urlVO,
		selected:    selected,
		syncBatch:   syncBatch,
		updatedAt:   updatedAt,
	}, nil
}

// Select marks whether the repository is shown on the generated portfolio
func (r *Repository) Select(selected bool) {
	r.selected = selected
}

// BelongsToUser checks if the repository belongs to the specified user
func (r *Repository) BelongsToUser(userID user.UserID) bool {
	return r.userID.Equals(userID)
}

// Getters

func (r *Repository) GitHubID() GitHubID {
	return r.githubID
}

func (r *Repository) UserID() user.UserID {
	return r.userID
}

func (r *Repository) Name() Name {
	return r.name
}

func (r *Repository) Description() *string {
	return r.description
}

func (r *Repository) StarsCount() int {
	return r.starsCount
}

func (r *Repository) ForksCount() int {
	return r.forksCount
}

func (r *Repository) Language() *string {
	return r.language
}

func (r *Repository) HTMLURL() URL {
	return r.htmlURL
}

func (r *Repository) Selected() bool {
	return r.selected
}

func (r *Repository) SyncBatch() string {
	return r.syncBatch
}

func (r *Repository) UpdatedAt() time.Time {
	return r.updatedAt
}

// String returns string representation (for debugging)
func (r *Repository) String() string {
	return fmt.Sprintf("Repository{id: %s, name: %s, userID: %s}",
		r.githubID.String(), r.name.String(), r.userID.String())
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
