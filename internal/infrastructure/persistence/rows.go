package persistence

import (
	"context"
	"database/sql"
	"time"

	"gitfolio-core/internal/database"
	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/repo"
)

const profileColumns = `id, username, full_name, avatar_url, bio, location,
	followers_count, following_count, github_id, updated_at`

const repositoryColumns = `id, user_id, name, description, stars_count, forks_count,
	language, html_url, selected, sync_batch, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func scanProfile(row rowScanner) (*profile.Profile, error) {
	var (
		id, username, githubID          string
		fullName, avatar, bio, location sql.NullString
		followers, following            int
		updatedAt                       time.Time
	)
	if err := row.Scan(&id, &username, &fullName, &avatar, &bio, &location,
		&followers, &following, &githubID, &updatedAt); err != nil {
		return nil, err
	}

	return profile.Reconstitute(id, username,
		stringPtr(fullName), stringPtr(avatar), stringPtr(bio), stringPtr(location),
		followers, following, githubID, updatedAt)
}

func scanRepository(row rowScanner) (*repo.Repository, error) {
	var (
		id                    int64
		userID, name, htmlURL string
		description, language sql.NullString
		stars, forks          int
		selected              bool
		syncBatch             string
		updatedAt             time.Time
	)
	if err := row.Scan(&id, &userID, &name, &description, &stars, &forks,
		&language, &htmlURL, &selected, &syncBatch, &updatedAt); err != nil {
		return nil, err
	}

	return repo.Reconstitute(id, userID, name, stringPtr(description), stars, forks,
		stringPtr(language), htmlURL, selected, syncBatch, updatedAt)
}

func queryRepositories(ctx context.Context, db *database.DB, where string, args ...any) ([]*repo.Repository, error) {
	rows, err := db.Executor(ctx).QueryContext(ctx,
		db.Rebind("SELECT "+repositoryColumns+" FROM repositories "+where+" ORDER BY stars_count DESC, id ASC"), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*repo.Repository
	for rows.Next() {
		r, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
