package dto

import "time"

// RepositoryResponse represents repository data in API responses
type RepositoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Stars       int       `json:"stars_count"`
	Forks       int       `json:"forks_count"`
	Language    *string   `json:"language"`
	HTMLURL     string    `json:"html_url"`
	Selected    bool      `json:"selected"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SelectionRequest toggles whether a repository appears on the portfolio
type SelectionRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// SelectionResponse confirms a selection change
type SelectionResponse struct {
	ID       int64 `json:"id"`
	Selected bool  `json:"selected"`
}
