package service

import (
	"context"
	"fmt"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
)

// UserService handles user-related use cases
type UserService struct {
	directory user.Directory
	profiles  profile.Repository
	repoRepo  repo.RepositoryRepo
}

// NewUserService creates a new user service
func NewUserService(directory user.Directory, profiles profile.Repository, repoRepo repo.RepositoryRepo) *UserService {
	return &UserService{
		directory: directory,
		profiles:  profiles,
		repoRepo:  repoRepo,
	}
}

// GetMe resolves the caller from the identity provider and reports their sync state
func (s *UserService) GetMe(ctx context.Context, principal *user.Principal) (*dto.MeResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}

	u, err := s.directory.GetUser(ctx, principal.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	synced, err := s.profiles.ExistsByUserID(ctx, u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check profile: %w", err)
	}

	count, err := s.repoRepo.CountByUserID(ctx, u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count repositories: %w", err)
	}

	return &dto.MeResponse{
		ID:              u.ID().String(),
		Email:           u.Email().String(),
		Username:        u.Username(),
		FirstName:       u.FirstName(),
		LastName:        u.LastName(),
		ProfileSynced:   synced,
		RepositoryCount: count,
	}, nil
}
