package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/portfolio"
	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/logger"
	"gitfolio-core/internal/metrics"
)

// PortfolioService serves the caller's stored snapshot through the caller-scoped credential
type PortfolioService struct {
	reader   portfolio.ScopedReader
	profiles profile.Repository
	log      *zap.Logger
}

// NewPortfolioService creates a new portfolio service.
// profiles must use the elevated connection; it is only asked whether a row exists.
func NewPortfolioService(reader portfolio.ScopedReader, profiles profile.Repository, log *zap.Logger) *PortfolioService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PortfolioService{
		reader:   reader,
		profiles: profiles,
		log:      log,
	}
}

// GetPortfolio returns the profile and repositories the caller can see
func (s *PortfolioService) GetPortfolio(ctx context.Context, principal *user.Principal) (*dto.PortfolioResponse, error) {
	ctx, span := tracer.Start(ctx, "portfolio.read")
	defer span.End()

	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}
	uid := principal.ID()

	pf, err := s.reader.Read(ctx, principal)
	if err != nil {
		return nil, s.readError(ctx, uid, err)
	}

	if pf.Profile == nil {
		// Nothing visible. Either nothing was synced, or the read policy hides stored rows.
		stored, err := s.profiles.ExistsByUserID(ctx, uid)
		if err != nil {
			return nil, portfolio.ErrStoreUnavailable(fmt.Errorf("check stored profile: %w", err))
		}
		if stored {
			return nil, s.misconfigured(ctx, uid, nil)
		}
		return nil, portfolio.ErrProfileNotSynced(uid.String())
	}

	span.SetAttributes(attribute.Int("portfolio.repos", len(pf.Repositories)))
	return toPortfolioDTO(pf), nil
}

// SetSelection shows or hides one of the caller's repositories on the portfolio
func (s *PortfolioService) SetSelection(ctx context.Context, principal *user.Principal, rawID string, selected bool) (*dto.SelectionResponse, error) {
	ctx, span := tracer.Start(ctx, "portfolio.set_selection")
	defer span.End()

	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}

	id, err := repo.ParseGitHubID(rawID)
	if err != nil {
		return nil, portfolio.ErrRepositoryNotFound(rawID)
	}

	updated, err := s.reader.SetSelected(ctx, principal, id, selected)
	if err != nil {
		return nil, s.readError(ctx, principal.ID(), err)
	}
	if !updated {
		return nil, portfolio.ErrRepositoryNotFound(id.String())
	}

	logger.FromContext(ctx, s.log).Info("Repository selection changed",
		zap.String("user_id", principal.ID().String()),
		zap.Int64("repository_id", id.Int64()),
		zap.Bool("selected", selected),
	)
	return &dto.SelectionResponse{ID: id.Int64(), Selected: selected}, nil
}

func (s *PortfolioService) readError(ctx context.Context, uid user.UserID, err error) error {
	if database.IsAccessPolicyError(err) {
		return s.misconfigured(ctx, uid, err)
	}
	logger.FromContext(ctx, s.log).Error("Scoped read failed",
		zap.String("user_id", uid.String()),
		zap.String("sqlstate", database.SQLState(err)),
		zap.Error(err),
	)
	return portfolio.ErrStoreUnavailable(err)
}

func (s *PortfolioService) misconfigured(ctx context.Context, uid user.UserID, cause error) error {
	metrics.ReadPolicyMisconfigured()
	logger.FromContext(ctx, s.log).Error("Caller-scoped read cannot see stored rows; check row-level policies and the read role",
		zap.String("user_id", uid.String()),
		zap.String("sqlstate", database.SQLState(cause)),
		zap.Error(cause),
	)
	de := portfolio.ErrReadPolicyMisconfigured(uid.String())
	de.Err = cause
	return de
}

func toPortfolioDTO(pf *portfolio.Portfolio) *dto.PortfolioResponse {
	p := pf.Profile
	out := &dto.PortfolioResponse{
		Profile: dto.ProfileResponse{
			UserID:         p.UserID().String(),
			Username:       p.Username(),
			FullName:       p.FullName(),
			AvatarURL:      p.AvatarURL(),
			Bio:            p.Bio(),
			Location:       p.Location(),
			FollowersCount: p.FollowersCount(),
			FollowingCount: p.FollowingCount(),
			GitHubID:       p.GitHubID(),
			UpdatedAt:      p.UpdatedAt(),
		},
		Repositories:  make([]*dto.RepositoryResponse, 0, len(pf.Repositories)),
		SelectedCount: len(pf.SelectedRepositories()),
	}

	for _, r := range pf.Repositories {
		out.Repositories = append(out.Repositories, toRepositoryDTO(r))
	}
	return out
}

func toRepositoryDTO(r *repo.Repository) *dto.RepositoryResponse {
	return &dto.RepositoryResponse{
		ID:          r.GitHubID().Int64(),
		Name:        r.Name().String(),
		Description: r.Description(),
		Stars:       r.StarsCount(),
		Forks:       r.ForksCount(),
		Language:    r.Language(),
		HTMLURL:     r.HTMLURL().String(),
		Selected:    r.Selected(),
		UpdatedAt:   r.UpdatedAt(),
	}
}
