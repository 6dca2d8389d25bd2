package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/events"
	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/logger"
	"gitfolio-core/internal/metrics"
)

const (
	defaultPerPage       = 100
	defaultOAuthProvider = "oauth_github"
)

var tracer = otel.Tracer("gitfolio-core/application")

// SyncDeps are the collaborators of a SyncService.
// Profiles, Repositories and Tx share the elevated store connection.
type SyncDeps struct {
	Directory     user.Directory
	ProfileSource profile.GitHubService
	RepoSource    repo.GitHubService
	Profiles      profile.Repository
	Repositories  repo.RepositoryRepo
	Tx            domainsync.Transactor
	Dispatcher    *events.Dispatcher
	Guard         *domainsync.InFlightGuard
	Logger        *zap.Logger

	// Clock and NewBatchID default to time.Now and random UUIDs
	Clock      func() time.Time
	NewBatchID func() string
}

// SyncOptions control how a sync fetches and writes
type SyncOptions struct {
	OAuthProvider string
	PerPage       int
	PrunePolicy   domainsync.PrunePolicy
	// AtomicWrites commits the profile and repository writes together
	AtomicWrites bool
}

// SyncService copies the caller's GitHub profile and repositories into the store
type SyncService struct {
	deps    SyncDeps
	opts    SyncOptions
	metrics metrics.SyncRecorder
}

// NewSyncService creates a new sync service
func NewSyncService(deps SyncDeps, opts SyncOptions) *SyncService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Guard == nil {
		deps.Guard = domainsync.NewInFlightGuard()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewBatchID == nil {
		deps.NewBatchID = uuid.NewString
	}
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	if opts.OAuthProvider == "" {
		opts.OAuthProvider = defaultOAuthProvider
	}
	if opts.PrunePolicy == "" {
		opts.PrunePolicy = domainsync.PruneKeep
	}

	return &SyncService{deps: deps, opts: opts}
}

// Sync runs one sync for principal. Every returned error is a *sync.DomainError.
func (s *SyncService) Sync(ctx context.Context, principal *user.Principal) (*dto.SyncResponse, error) {
	ctx, span := tracer.Start(ctx, "sync.run", trace.WithAttributes(
		attribute.String("layer", "application"),
		attribute.String("sync.prune_policy", string(s.opts.PrunePolicy)),
	))
	defer span.End()

	log := logger.FromContext(ctx, s.deps.Logger)
	attempt := s.metrics.Started()
	start := s.deps.Clock()

	resp, err := s.run(ctx, principal)
	if err != nil {
		de, ok := domainsync.AsDomainError(err)
		if !ok {
			de = domainsync.ErrInternal("unknown", err)
		}
		s.logFailure(log, principal, de)
		if de.IsRejection() {
			attempt.Rejected(de.Code)
		} else {
			attempt.Failed(de.Code, de.Step)
		}

		span.RecordError(de)
		span.SetStatus(codes.Error, de.Code)
		return nil, de
	}

	attempt.Succeeded()
	span.SetAttributes(attribute.Int("sync.repos_count", resp.ReposCount))

	log.Info("Sync completed",
		zap.String("user_id", principal.ID().String()),
		zap.Int("repos_count", resp.ReposCount),
		zap.Duration("duration", s.deps.Clock().Sub(start)),
	)
	return resp, nil
}

func (s *SyncService) run(ctx context.Context, principal *user.Principal) (*dto.SyncResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}
	uid := principal.ID()

	if s.deps.Profiles == nil || s.deps.Repositories == nil || s.deps.Tx == nil {
		return nil, domainsync.ErrStoreUnavailable(errors.New("store client is not configured"))
	}
	if s.deps.Directory == nil || s.deps.ProfileSource == nil || s.deps.RepoSource == nil {
		return nil, domainsync.ErrConfiguration("setup", errors.New("sync collaborators are not configured"))
	}

	release, ok := s.deps.Guard.TryAcquire(uid.String())
	if !ok {
		return nil, domainsync.ErrSyncInProgress(uid.String())
	}
	defer release()

	token, err := s.resolveToken(ctx, uid)
	if err != nil {
		return nil, err
	}

	ghProfile, rawProfile, ghRepos, err := s.fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	syncedAt := s.deps.Clock().UTC()
	batch := s.deps.NewBatchID()

	p, err := profile.FromGitHub(uid, ghProfile, syncedAt)
	if err != nil {
		return nil, domainsync.ErrGitHubFetchFailed(fmt.Errorf("normalize profile: %w", err))
	}

	repos := make([]*repo.Repository, 0, len(ghRepos))
	for _, gh := range ghRepos {
		r, err := repo.FromGitHub(uid, gh, batch, syncedAt)
		if err != nil {
			return nil, domainsync.ErrGitHubFetchFailed(fmt.Errorf("normalize repository: %w", err))
		}
		repos = append(repos, r)
	}

	pruned, err := s.write(ctx, p, repos, batch)
	if err != nil {
		return nil, err
	}

	s.metrics.RepositoriesWritten(len(repos))
	s.metrics.RepositoriesPruned(pruned)
	s.dispatch(ctx, p, batch, len(repos), pruned)

	return &dto.SyncResponse{
		Success:    true,
		Profile:    rawProfile,
		ReposCount: len(repos),
	}, nil
}

// resolveToken confirms the caller exists and returns their GitHub grant
func (s *SyncService) resolveToken(ctx context.Context, uid user.UserID) (string, error) {
	ctx, span := tracer.Start(ctx, "sync.resolve_token")
	defer span.End()

	if _, err := s.deps.Directory.GetUser(ctx, uid); err != nil {
		return "", identityError("resolve_user", uid, err)
	}

	token, err := s.deps.Directory.GetOAuthAccessToken(ctx, uid, s.opts.OAuthProvider)
	if err != nil {
		return "", identityError("provider_token", uid, err)
	}
	if token == "" {
		return "", domainsync.ErrMissingProviderToken(uid.String(), nil)
	}
	return token, nil
}

func identityError(step string, uid user.UserID, err error) error {
	switch {
	case user.HasCode(err, user.CodeUserNotFound):
		return domainsync.ErrUserNotFound(uid.String(), err)
	case user.HasCode(err, user.CodeNoLinkedGrant):
		return domainsync.ErrMissingProviderToken(uid.String(), err)
	case user.HasCode(err, user.CodeIdentityConfiguration):
		return domainsync.ErrConfiguration(step, err)
	default:
		return domainsync.ErrInternal(step, err)
	}
}

// fetch reads the profile and one page of repositories concurrently
func (s *SyncService) fetch(ctx context.Context, token string) (*profile.GitHubProfile, json.RawMessage, []*repo.GitHubRepository, error) {
	ctx, span := tracer.Start(ctx, "sync.github_fetch")
	defer span.End()

	var (
		ghProfile *profile.GitHubProfile
		raw       json.RawMessage
		ghRepos   []*repo.GitHubRepository
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ghProfile, raw, err = s.deps.ProfileSource.FetchAuthenticatedUser(gctx, token)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ghRepos, err = s.deps.RepoSource.FetchUserRepositories(gctx, token, s.opts.PerPage)
		if err != nil {
			return fmt.Errorf("fetch repositories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, domainsync.ErrGitHubFetchFailed(err)
	}

	if len(ghRepos) > s.opts.PerPage {
		ghRepos = ghRepos[:s.opts.PerPage]
	}
	span.SetAttributes(attribute.Int("github.repos_fetched", len(ghRepos)))
	return ghProfile, raw, ghRepos, nil
}

// write stores profile then repositories, pruning when configured.
// Without AtomicWrites a failed repository write leaves the new profile committed.
func (s *SyncService) write(ctx context.Context, p *profile.Profile, repos []*repo.Repository, batch string) (int64, error) {
	ctx, span := tracer.Start(ctx, "sync.store_write")
	defer span.End()

	var pruned int64
	steps := func(ctx context.Context) error {
		if err := s.deps.Profiles.Upsert(ctx, p); err != nil {
			return domainsync.ErrProfileWriteFailed(err)
		}
		if err := s.deps.Repositories.UpsertAll(ctx, repos); err != nil {
			return domainsync.ErrRepositoryWriteFailed(err)
		}
		if s.opts.PrunePolicy == domainsync.PruneStale {
			n, err := s.deps.Repositories.DeleteStale(ctx, p.UserID(), batch)
			if err != nil {
				return domainsync.ErrRepositoryWriteFailed(err)
			}
			pruned = n
		}
		return nil
	}

	var err error
	if s.opts.AtomicWrites {
		err = s.deps.Tx.WithinTx(ctx, steps)
	} else {
		err = steps(ctx)
	}
	if err != nil {
		// begin/commit failures carry no step of their own
		if _, ok := domainsync.AsDomainError(err); !ok {
			return 0, domainsync.ErrStoreUnavailable(err)
		}
		return 0, err
	}

	span.SetAttributes(
		attribute.Bool("sync.atomic", s.opts.AtomicWrites),
		attribute.Int64("sync.pruned", pruned),
	)
	return pruned, nil
}

func (s *SyncService) dispatch(ctx context.Context, p *profile.Profile, batch string, count int, pruned int64) {
	if s.deps.Dispatcher == nil {
		return
	}
	uid := p.UserID().String()

	evs := []events.DomainEvent{
		repo.NewRepositoriesSyncedEvent(uid, batch, count, pruned),
		profile.NewProfileSyncedEvent(uid, p.Username(), count),
	}
	if err := s.deps.Dispatcher.DispatchAll(ctx, evs); err != nil {
		// the snapshot is already stored
		logger.FromContext(ctx, s.deps.Logger).Warn("Sync event handlers failed", zap.String("user_id", uid), zap.Error(err))
	}
}

func (s *SyncService) logFailure(log *zap.Logger, principal *user.Principal, de *domainsync.DomainError) {
	fields := []zap.Field{
		zap.String("code", de.Code),
		zap.String("step", de.Step),
	}
	if principal.IsAuthenticated() {
		fields = append(fields, zap.String("user_id", principal.ID().String()))
	}
	if de.Err != nil {
		fields = append(fields, zap.Error(de.Err))
	}
	if state := database.SQLState(de); state != "" {
		fields = append(fields, zap.String("sqlstate", state))
	}

	if de.IsRejection() {
		log.Warn("Sync rejected", fields...)
		return
	}
	log.Error("Sync failed", fields...)
}
