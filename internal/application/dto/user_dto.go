package dto

// MeResponse describes the authenticated caller
type MeResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email,omitempty"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileSynced   bool   `json:"profile_synced"`
	RepositoryCount int64  `json:"repository_count"`
}
