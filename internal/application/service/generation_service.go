package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/events"
	"gitfolio-core/internal/domain/generation"
	"gitfolio-core/internal/domain/portfolio"
	"gitfolio-core/internal/domain/profile"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/logger"
)

// GenerationDeps are the collaborators of a GenerationService.
// Generations, Profiles and Tx share the elevated store connection.
type GenerationDeps struct {
	Generations generation.Repository
	Profiles    profile.Repository
	Tx          domainsync.Transactor
	Dispatcher  *events.Dispatcher
	Logger      *zap.Logger

	// Clock and NewID default to time.Now and xid
	Clock func() time.Time
	NewID func() string
}

// GenerationService tracks portfolio builds started from a synced profile
type GenerationService struct {
	deps GenerationDeps
}

// NewGenerationService creates a new generation service
func NewGenerationService(deps GenerationDeps) *GenerationService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return xid.New().String() }
	}
	return &GenerationService{deps: deps}
}

// Start records a new generation for the caller. The caller must have synced a
// profile and must not have another generation in progress.
func (s *GenerationService) Start(ctx context.Context, principal *user.Principal, req *dto.StartGenerationRequest) (*dto.GenerationResponse, error) {
	ctx, span := tracer.Start(ctx, "generation.start")
	defer span.End()

	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}
	uid := principal.ID()

	var g *generation.Generation
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.deps.Profiles.FindByUserID(ctx, uid)
		if err != nil {
			var pe *profile.DomainError
			if errors.As(err, &pe) && pe.Code == profile.CodeProfileNotFound {
				return portfolio.ErrProfileNotSynced(uid.String())
			}
			return portfolio.ErrStoreUnavailable(fmt.Errorf("load profile: %w", err))
		}

		busy, err := s.deps.Generations.HasInProgress(ctx, uid)
		if err != nil {
			return portfolio.ErrStoreUnavailable(err)
		}
		if busy {
			return generation.ErrGenerationInProgress(uid.String())
		}

		g, err = generation.New(s.deps.NewID(), uid, p.Username(), req.TemplateID, req.CustomPrompt, s.deps.Clock())
		if err != nil {
			return err
		}
		return s.deps.Generations.Create(ctx, g)
	})
	if err != nil {
		return nil, s.storeError(ctx, uid, err)
	}

	span.SetAttributes(attribute.String("generation.id", g.ID()))
	logger.FromContext(ctx, s.deps.Logger).Info("Portfolio generation started",
		zap.String("user_id", uid.String()),
		zap.String("generation_id", g.ID()),
	)
	s.dispatch(ctx, generation.NewGenerationRequestedEvent(g))
	return toGenerationDTO(g), nil
}

// List returns the caller's generations, newest first
func (s *GenerationService) List(ctx context.Context, principal *user.Principal) (*dto.GenerationListResponse, error) {
	ctx, span := tracer.Start(ctx, "generation.list")
	defer span.End()

	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}

	gens, err := s.deps.Generations.ListByUserID(ctx, principal.ID())
	if err != nil {
		return nil, s.storeError(ctx, principal.ID(), err)
	}

	out := &dto.GenerationListResponse{Generations: make([]*dto.GenerationResponse, 0, len(gens))}
	for _, g := range gens {
		out.Generations = append(out.Generations, toGenerationDTO(g))
	}
	return out, nil
}

// Complete moves one of the caller's generations to ready or failed
func (s *GenerationService) Complete(ctx context.Context, principal *user.Principal, id string, req *dto.CompleteGenerationRequest) (*dto.GenerationResponse, error) {
	ctx, span := tracer.Start(ctx, "generation.complete")
	defer span.End()

	if !principal.IsAuthenticated() {
		return nil, domainsync.ErrUnauthorized()
	}
	uid := principal.ID()

	to, err := generation.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var g *generation.Generation
	err = s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err = s.deps.Generations.FindForOwner(ctx, uid, id)
		if err != nil {
			return err
		}
		if err := g.Transition(to, req.DeploymentURL, req.FailureReason, s.deps.Clock()); err != nil {
			return err
		}
		return s.deps.Generations.UpdateStatus(ctx, g)
	})
	if err != nil {
		return nil, s.storeError(ctx, uid, err)
	}

	logger.FromContext(ctx, s.deps.Logger).Info("Portfolio generation finished",
		zap.String("user_id", uid.String()),
		zap.String("generation_id", g.ID()),
		zap.String("status", string(g.Status())),
	)
	s.dispatch(ctx, generation.NewGenerationFinishedEvent(g))
	return toGenerationDTO(g), nil
}

// storeError passes domain errors through and wraps the rest as store failures
func (s *GenerationService) storeError(ctx context.Context, uid user.UserID, err error) error {
	var (
		ge *generation.DomainError
		pe *portfolio.DomainError
	)
	if errors.As(err, &ge) || errors.As(err, &pe) {
		return err
	}
	logger.FromContext(ctx, s.deps.Logger).Error("Generation store failed",
		zap.String("user_id", uid.String()),
		zap.Error(err),
	)
	return portfolio.ErrStoreUnavailable(err)
}

func (s *GenerationService) dispatch(ctx context.Context, ev events.DomainEvent) {
	if s.deps.Dispatcher == nil {
		return
	}
	if err := s.deps.Dispatcher.Dispatch(ctx, ev); err != nil {
		logger.FromContext(ctx, s.deps.Logger).Warn("Generation event handlers failed",
			zap.String("event_type", ev.EventType()),
			zap.Error(err),
		)
	}
}

func toGenerationDTO(g *generation.Generation) *dto.GenerationResponse {
	return &dto.GenerationResponse{
		ID:             g.ID(),
		UserID:         g.UserID().String(),
		GitHubUsername: g.GitHubUsername(),
		Status:         string(g.Status()),
		TemplateID:     g.TemplateID(),
		CustomPrompt:   g.CustomPrompt(),
		DeploymentURL:  g.DeploymentURL(),
		FailureReason:  g.FailureReason(),
		CreatedAt:      g.CreatedAt(),
		UpdatedAt:      g.UpdatedAt(),
	}
}
