package dto

import "time"

// ProfileResponse represents a synced GitHub profile
type ProfileResponse struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	FullName       *string   `json:"full_name"`
	AvatarURL      *string   `json:"avatar_url"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	GitHubID       string    `json:"github_id"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PortfolioResponse is the dashboard view of the caller's snapshot
type PortfolioResponse struct {
	Profile       ProfileResponse       `json:"profile"`
	Repositories  []*RepositoryResponse `json:"repositories"`
	SelectedCount int                   `json:"selected_count"`
}
