package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/application/service"
	"gitfolio-core/internal/domain/portfolio"
	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/infrastructure/persistence"
)

// blindReader models a read policy that hides every row
type blindReader struct {
	err error
}

func (b *blindReader) Read(ctx context.Context, principal *user.Principal) (*portfolio.Portfolio, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &portfolio.Portfolio{}, nil
}

func (b *blindReader) SetSelected(ctx context.Context, principal *user.Principal, id repo.GitHubID, selected bool) (bool, error) {
	return false, b.err
}

func requirePortfolioCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *portfolio.DomainError
	require.True(t, errors.As(err, &de), "expected *portfolio.DomainError, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestPortfolio_ReadAfterSync(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.github.repos = append(h.github.repos, &repo.GitHubRepository{
		ID: 43, Name: "popular", HTMLURL: "https://github.com/octocat/popular", StargazersCount: 900,
	})

	_, err := h.service(service.SyncOptions{AtomicWrites: true}, nil).Sync(ctx, caller())
	require.NoError(t, err)

	svc := service.NewPortfolioService(persistence.NewScopedReader(h.db, "authenticated"), h.profiles, nil)
	got, err := svc.GetPortfolio(ctx, caller())
	require.NoError(t, err)

	assert.Equal(t, "octocat", got.Profile.Username)
	assert.Equal(t, "1", got.Profile.GitHubID)
	require.Len(t, got.Repositories, 2)
	assert.Equal(t, "popular", got.Repositories[0].Name, "most starred first")
	assert.Equal(t, 0, got.SelectedCount)
}

func TestPortfolio_NotSynced(t *testing.T) {
	h := newHarness(t)
	svc := service.NewPortfolioService(persistence.NewScopedReader(h.db, "authenticated"), h.profiles, nil)

	_, err := svc.GetPortfolio(context.Background(), caller())
	requirePortfolioCode(t, err, portfolio.CodeProfileNotSynced)
}

func TestPortfolio_PolicyHidesStoredRows(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.service(service.SyncOptions{AtomicWrites: true}, nil).Sync(ctx, caller())
	require.NoError(t, err)

	svc := service.NewPortfolioService(&blindReader{}, h.profiles, nil)
	_, err = svc.GetPortfolio(ctx, caller())
	requirePortfolioCode(t, err, portfolio.CodeReadPolicyMisconfigured)
}

func TestPortfolio_ReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "permission denied", err: &pq.Error{Code: "42501"}, wantCode: portfolio.CodeReadPolicyMisconfigured},
		{name: "read role missing", err: &pq.Error{Code: "42704"}, wantCode: portfolio.CodeReadPolicyMisconfigured},
		{name: "connection lost", err: errors.New("driver: bad connection"), wantCode: portfolio.CodeStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			svc := service.NewPortfolioService(&blindReader{err: tt.err}, h.profiles, nil)

			_, err := svc.GetPortfolio(context.Background(), caller())
			requirePortfolioCode(t, err, tt.wantCode)
		})
	}
}

func TestPortfolio_SetSelection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.service(service.SyncOptions{AtomicWrites: true}, nil).Sync(ctx, caller())
	require.NoError(t, err)

	svc := service.NewPortfolioService(persistence.NewScopedReader(h.db, "authenticated"), h.profiles, nil)

	resp, err := svc.SetSelection(ctx, caller(), "42", true)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.True(t, resp.Selected)

	got, err := svc.GetPortfolio(ctx, caller())
	require.NoError(t, err)
	assert.Equal(t, 1, got.SelectedCount)

	// a re-sync does not clear the selection
	_, err = h.service(service.SyncOptions{AtomicWrites: true}, nil).Sync(ctx, caller())
	require.NoError(t, err)
	got, err = svc.GetPortfolio(ctx, caller())
	require.NoError(t, err)
	assert.True(t, got.Repositories[0].Selected)

	stranger := user.NewPrincipal(user.MustParseUserID("user_2"), nil)
	_, err = svc.SetSelection(ctx, stranger, "42", false)
	requirePortfolioCode(t, err, portfolio.CodeRepositoryNotFound)

	_, err = svc.SetSelection(ctx, caller(), "not-a-number", true)
	requirePortfolioCode(t, err, portfolio.CodeRepositoryNotFound)
}
