package portfolio

import (
	"context"

	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/domain/user"
)

// Portfolio is the caller-visible snapshot backing the dashboard
type Portfolio struct {
	Profile      *profile.Profile
	Repositories []*repo.Repository
}

// SelectedRepositories returns the repositories chosen for display
func (p *Portfolio) SelectedRepositories() []*repo.Repository {
	var out []*repo.Repository
	for _, r := range p.Repositories {
		if r.Selected() {
			out = append(out, r)
		}
	}
	return out
}

// ScopedReader reads with the caller's own narrower credential.
// Row visibility is decided by the store's access policy, not by this service.
type ScopedReader interface {
	// Read returns the rows visible to principal. Profile is nil when no row is visible.
	Read(ctx context.Context, principal *user.Principal) (*Portfolio, error)

	// SetSelected updates the selected flag of a repository visible to principal.
	// It reports false when no visible row matched.
	SetSelected(ctx context.Context, principal *user.Principal, id repo.GitHubID, selected bool) (bool, error)
}
