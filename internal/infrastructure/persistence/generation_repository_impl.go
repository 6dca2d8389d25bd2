package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/generation"
	"gitfolio-core/internal/domain/user"
)

// GenerationRepoImpl implements generation.Repository on the elevated connection.
// Every lookup filters on the owner column.
type GenerationRepoImpl struct {
	db *database.DB
}

var _ generation.Repository = (*GenerationRepoImpl)(nil)

// NewGenerationRepository creates a new generation repository implementation
func NewGenerationRepository(db *database.DB) *GenerationRepoImpl {
	return &GenerationRepoImpl{db: db}
}

const generationColumns = `id, user_id, github_username, status, template_id, custom_prompt,
	deployment_url, failure_reason, created_at, updated_at`

// Create stores a new generation. A second in-progress generation for the same
// user is rejected by the partial unique index.
func (r *GenerationRepoImpl) Create(ctx context.Context, g *generation.Generation) error {
	_, err := r.db.Executor(ctx).ExecContext(ctx, r.db.Rebind(
		"INSERT INTO portfolio_generations ("+generationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		g.ID(),
		g.UserID().String(),
		g.GitHubUsername(),
		string(g.Status()),
		nullString(g.TemplateID()),
		nullString(g.CustomPrompt()),
		nullString(g.DeploymentURL()),
		nullString(g.FailureReason()),
		g.CreatedAt(),
		g.UpdatedAt(),
	)
	if database.IsUniqueViolation(err) {
		return generation.ErrGenerationInProgress(g.UserID().String())
	}
	if err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}
	return nil
}

// UpdateStatus stores the status fields of g
func (r *GenerationRepoImpl) UpdateStatus(ctx context.Context, g *generation.Generation) error {
	res, err := r.db.Executor(ctx).ExecContext(ctx, r.db.Rebind(`UPDATE portfolio_generations
SET status = ?, deployment_url = ?, failure_reason = ?, updated_at = ?
WHERE id = ? AND user_id = ?`),
		string(g.Status()),
		nullString(g.DeploymentURL()),
		nullString(g.FailureReason()),
		g.UpdatedAt(),
		g.ID(),
		g.UserID().String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update generation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update generation: %w", err)
	}
	if n == 0 {
		return generation.ErrGenerationNotFound(g.ID())
	}
	return nil
}

// FindForOwner retrieves a generation started by owner
func (r *GenerationRepoImpl) FindForOwner(ctx context.Context, owner user.UserID, id string) (*generation.Generation, error) {
	g, err := scanGeneration(r.db.Executor(ctx).QueryRowContext(ctx, r.db.Rebind(
		"SELECT "+generationColumns+" FROM portfolio_generations WHERE id = ? AND user_id = ?"),
		id, owner.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generation.ErrGenerationNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

// ListByUserID lists a user's generations, newest first
func (r *GenerationRepoImpl) ListByUserID(ctx context.Context, owner user.UserID) ([]*generation.Generation, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, r.db.Rebind(
		"SELECT "+generationColumns+" FROM portfolio_generations WHERE user_id = ? ORDER BY created_at DESC, id DESC"),
		owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var out []*generation.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// HasInProgress reports whether owner has a generation still generating
func (r *GenerationRepoImpl) HasInProgress(ctx context.Context, owner user.UserID) (bool, error) {
	var n int
	err := r.db.Executor(ctx).QueryRowContext(ctx, r.db.Rebind(
		"SELECT COUNT(*) FROM portfolio_generations WHERE user_id = ? AND status = ?"),
		owner.String(), string(generation.StatusGenerating)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check generations: %w", err)
	}
	return n > 0, nil
}

func scanGeneration(row rowScanner) (*generation.Generation, error) {
	var (
		id, userID, username, status                  string
		templateID, prompt, deploymentURL, failReason sql.NullString
		createdAt, updatedAt                          time.Time
	)
	if err := row.Scan(&id, &userID, &username, &status, &templateID, &prompt,
		&deploymentURL, &failReason, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return generation.Reconstitute(id, userID, username, status,
		stringPtr(templateID), stringPtr(prompt), stringPtr(deploymentURL), stringPtr(failReason),
		createdAt, updatedAt)
}
