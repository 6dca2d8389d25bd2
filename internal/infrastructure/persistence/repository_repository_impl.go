package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/domain/user"
)

// rows per INSERT statement; 10 params each keeps well under driver limits
const upsertChunkSize = 500

// RepositoryRepoImpl implements the domain repo.RepositoryRepo interface on the elevated connection
type RepositoryRepoImpl struct {
	db *database.DB
}

// NewRepositoryRepository creates a new repository repository implementation
func NewRepositoryRepository(db *database.DB) *RepositoryRepoImpl {
	return &RepositoryRepoImpl{db: db}
}

const upsertRepositoriesPrefix = `INSERT INTO repositories
	(id, user_id, name, description, stars_count, forks_count, language, html_url, sync_batch, updated_at)
VALUES `

// selected survives a re-sync by the same owner and resets when another account claims the ID
const upsertRepositoriesSuffix = `
ON CONFLICT (id) DO UPDATE SET
	selected    = CASE WHEN repositories.user_id = excluded.user_id THEN repositories.selected ELSE FALSE END,
	user_id     = excluded.user_id,
	name        = excluded.name,
	description = excluded.description,
	stars_count = excluded.stars_count,
	forks_count = excluded.forks_count,
	language    = excluded.language,
	html_url    = excluded.html_url,
	sync_batch  = excluded.sync_batch,
	updated_at  = excluded.updated_at`

// UpsertAll inserts or overwrites repositories keyed by GitHub ID
func (r *RepositoryRepoImpl) UpsertAll(ctx context.Context, repos []*repo.Repository) error {
	repos = dedupeByID(repos)

	for start := 0; start < len(repos); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(repos))
		if err := r.upsertChunk(ctx, repos[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *RepositoryRepoImpl) upsertChunk(ctx context.Context, chunk []*repo.Repository) error {
	var b strings.Builder
	b.WriteString(upsertRepositoriesPrefix)

	args := make([]any, 0, len(chunk)*10)
	for i, rp := range chunk {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			rp.GitHubID().Int64(),
			rp.UserID().String(),
			rp.Name().String(),
			nullString(rp.Description()),
			rp.StarsCount(),
			rp.ForksCount(),
			nullString(rp.Language()),
			rp.HTMLURL().String(),
			rp.SyncBatch(),
			rp.UpdatedAt(),
		)
	}
	b.WriteString(upsertRepositoriesSuffix)

	if _, err := r.db.Executor(ctx).ExecContext(ctx, r.db.Rebind(b.String()), args...); err != nil {
		return fmt.Errorf("failed to upsert %d repositories: %w", len(chunk), err)
	}
	return nil
}

// DeleteStale removes the owner's repositories not written by batch
func (r *RepositoryRepoImpl) DeleteStale(ctx context.Context, owner user.UserID, batch string) (int64, error) {
	res, err := r.db.Executor(ctx).ExecContext(ctx,
		r.db.Rebind("DELETE FROM repositories WHERE user_id = ? AND sync_batch <> ?"), owner.String(), batch)
	if err != nil {
		return 0, fmt.Errorf("failed to prune repositories: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned repositories: %w", err)
	}
	return n, nil
}

// FindByID retrieves a repository by its GitHub ID
func (r *RepositoryRepoImpl) FindByID(ctx context.Context, id repo.GitHubID) (*repo.Repository, error) {
	rp, err := scanRepository(r.db.Executor(ctx).QueryRowContext(ctx,
		r.db.Rebind("SELECT "+repositoryColumns+" FROM repositories WHERE id = ?"), id.Int64()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrRepositoryNotFound(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	return rp, nil
}

// FindByUserID retrieves a user's repositories, most starred first
func (r *RepositoryRepoImpl) FindByUserID(ctx context.Context, userID user.UserID) ([]*repo.Repository, error) {
	repos, err := queryRepositories(ctx, r.db, "WHERE user_id = ?", userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, nil
}

// CountByUserID returns the total number of repositories for a user
func (r *RepositoryRepoImpl) CountByUserID(ctx context.Context, userID user.UserID) (int64, error) {
	var n int64
	err := r.db.Executor(ctx).QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM repositories WHERE user_id = ?"), userID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count repositories: %w", err)
	}
	return n, nil
}

// dedupeByID keeps the last occurrence of each ID; one statement may not touch a row twice
func dedupeByID(repos []*repo.Repository) []*repo.Repository {
	seen := make(map[int64]int, len(repos))
	out := make([]*repo.Repository, 0, len(repos))
	for _, rp := range repos {
		id := rp.GitHubID().Int64()
		if i, ok := seen[id]; ok {
			out[i] = rp
			continue
		}
		seen[id] = len(out)
		out = append(out, rp)
	}
	return out
}
