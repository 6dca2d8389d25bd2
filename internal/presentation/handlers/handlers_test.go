package handlers_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/generation"
	"gitfolio-core/internal/domain/portfolio"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
	"gitfolio-core/internal/presentation/handlers"
)

const issuer = "https://clerk.example.com"

type stubSyncer struct {
	resp   *dto.SyncResponse
	err    error
	caller *user.Principal
}

func (s *stubSyncer) Sync(ctx context.Context, p *user.Principal) (*dto.SyncResponse, error) {
	s.caller = p
	return s.resp, s.err
}

type stubPortfolio struct {
	err         error
	selectedID  string
	selectedVal bool
}

func (s *stubPortfolio) GetPortfolio(ctx context.Context, p *user.Principal) (*dto.PortfolioResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PortfolioResponse{Profile: dto.ProfileResponse{Username: "octocat"}}, nil
}

func (s *stubPortfolio) SetSelection(ctx context.Context, p *user.Principal, id string, selected bool) (*dto.SelectionResponse, error) {
	s.selectedID, s.selectedVal = id, selected
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SelectionResponse{ID: 42, Selected: selected}, nil
}

type stubUsers struct{ err error }

func (s *stubUsers) GetMe(ctx context.Context, p *user.Principal) (*dto.MeResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MeResponse{ID: p.ID().String(), Username: "octocat"}, nil
}

type stubGenerations struct {
	err      error
	started  *dto.StartGenerationRequest
	id       string
	complete *dto.CompleteGenerationRequest
}

func (s *stubGenerations) Start(ctx context.Context, p *user.Principal, req *dto.StartGenerationRequest) (*dto.GenerationResponse, error) {
	s.started = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GenerationResponse{ID: "gen-1", UserID: p.ID().String(), Status: "generating"}, nil
}

func (s *stubGenerations) List(ctx context.Context, p *user.Principal) (*dto.GenerationListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GenerationListResponse{Generations: []*dto.GenerationResponse{{ID: "gen-1", Status: "ready"}}}, nil
}

func (s *stubGenerations) Complete(ctx context.Context, p *user.Principal, id string, req *dto.CompleteGenerationRequest) (*dto.GenerationResponse, error) {
	s.id, s.complete = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GenerationResponse{ID: id, Status: req.Status}, nil
}

type fixture struct {
	router      *gin.Engine
	key         *rsa.PrivateKey
	syncer      *stubSyncer
	portfolio   *stubPortfolio
	users       *stubUsers
	generations *stubGenerations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &fixture{
		router:    gin.New(),
		key:       key,
		syncer:    &stubSyncer{},
		portfolio: &stubPortfolio{},
		users:     &stubUsers{},

		generations: &stubGenerations{},
	}
	auth := middleware.NewStaticAuthMiddleware(issuer, map[string]*rsa.PublicKey{"k1": &key.PublicKey})
	api := &handlers.API{
		Sync:      handlers.NewSyncHandler(f.syncer),
		Portfolio: handlers.NewPortfolioHandler(f.portfolio),
		User:      handlers.NewUserHandler(f.users),

		Generation: handlers.NewGenerationHandler(f.generations),
	}
	api.Register(f.router.Group("/api/v1"), auth.RequireAuth())
	return f
}

func (f *fixture) token(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user_1",
		"iss": issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = "k1"
	s, err := tok.SignedString(f.key)
	require.NoError(t, err)
	return s
}

func (f *fixture) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token(t))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSyncGitHub_Success(t *testing.T) {
	f := newFixture(t)
	f.syncer.resp = &dto.SyncResponse{
		Success:    true,
		Profile:    json.RawMessage(`{"login":"octocat","id":1}`),
		ReposCount: 1,
	}

	w := f.do(t, http.MethodPost, "/api/v1/sync-github", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"profile":{"login":"octocat","id":1},"reposCount":1}`, w.Body.String())
	assert.Equal(t, "user_1", f.syncer.caller.ID().String())
}

func TestSyncGitHub_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/sync-github", "", false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	assert.Nil(t, f.syncer.caller, "sync never invoked")
}

func TestSyncGitHub_ErrorBodies(t *testing.T) {
	upstream := errors.New(`{"message":"Bad credentials"} token=gho_secret`)

	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{domainsync.ErrUnauthorized(), http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{domainsync.ErrUserNotFound("user_1", nil), http.StatusNotFound, `{"error":"User not found"}`},
		{domainsync.ErrMissingProviderToken("user_1", nil), http.StatusBadRequest, `{"error":"GitHub access token not found"}`},
		{domainsync.ErrSyncInProgress("user_1"), http.StatusConflict, `{"error":"Sync already in progress"}`},
		{domainsync.ErrGitHubFetchFailed(upstream), http.StatusInternalServerError, `{"error":"Failed to fetch GitHub data"}`},
		{domainsync.ErrProfileWriteFailed(upstream), http.StatusInternalServerError, `{"error":"Failed to sync profile"}`},
		{domainsync.ErrRepositoryWriteFailed(upstream), http.StatusInternalServerError, `{"error":"Failed to sync repositories"}`},
		{domainsync.ErrConfiguration("resolve_user", upstream), http.StatusInternalServerError, `{"error":"Server configuration error"}`},
		{domainsync.ErrStoreUnavailable(upstream), http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{domainsync.ErrInternal("resolve_user", upstream), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		de, _ := domainsync.AsDomainError(tt.err)
		t.Run(de.Code, func(t *testing.T) {
			f := newFixture(t)
			f.syncer.err = tt.err

			w := f.do(t, http.MethodPost, "/api/v1/sync-github", "", true)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "gho_secret")
		})
	}
}

func TestGetPortfolio(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "not synced", err: portfolio.ErrProfileNotSynced("user_1"), wantStatus: http.StatusNotFound, wantBody: `{"error":"Profile not synced"}`},
		{name: "policy misconfigured", err: portfolio.ErrReadPolicyMisconfigured("user_1"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Server configuration error"}`},
		{name: "store down", err: portfolio.ErrStoreUnavailable(errors.New("eof")), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.portfolio.err = tt.err

			w := f.do(t, http.MethodGet, "/api/v1/portfolio", "", true)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}

	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodGet, "/api/v1/portfolio", "", true)
		require.Equal(t, http.StatusOK, w.Code)

		var body dto.PortfolioResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "octocat", body.Profile.Username)
	})
}

func TestUpdateSelection(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/api/v1/repositories/42/selection", `{"selected":true}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"selected":true}`, w.Body.String())
	assert.Equal(t, "42", f.portfolio.selectedID)
	assert.True(t, f.portfolio.selectedVal)

	w = f.do(t, http.MethodPut, "/api/v1/repositories/42/selection", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.portfolio.err = portfolio.ErrRepositoryNotFound("42")
	w = f.do(t, http.MethodPut, "/api/v1/repositories/42/selection", `{"selected":false}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Repository not found"}`, w.Body.String())
}

func TestGetCurrentUser(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/auth/me", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user_1"`)

	f.users.err = user.ErrUserNotFound("user_1")
	w = f.do(t, http.MethodGet, "/api/v1/auth/me", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthAndReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handlers.NewHealthHandler("test", stubPinger{})
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("/health"))
	assert.Equal(t, http.StatusOK, get("/ready"))

	h.StartDraining()
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready"))
	assert.Equal(t, http.StatusOK, get("/health"), "liveness unaffected by draining")

	down := handlers.NewHealthHandler("test", stubPinger{err: errors.New("refused")})
	r2 := gin.New()
	r2.GET("/ready", down.Ready)
	w := httptest.NewRecorder()
	r2.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerations_Start(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/portfolio/generations", `{"template_id":"minimal"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "minimal", *f.generations.started.TemplateID)

	var body dto.GenerationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user_1", body.UserID)
	assert.Equal(t, "generating", body.Status)

	w = f.do(t, http.MethodPost, "/api/v1/portfolio/generations", "", true)
	assert.Equal(t, http.StatusCreated, w.Code, "body is optional")

	w = f.do(t, http.MethodPost, "/api/v1/portfolio/generations", `{"template_id":`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/portfolio/generations", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerations_Complete(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/api/v1/portfolio/generations/gen-7/status",
		`{"status":"ready","deployment_url":"https://octocat.example.com"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gen-7", f.generations.id)
	assert.Equal(t, "https://octocat.example.com", *f.generations.complete.DeploymentURL)

	w = f.do(t, http.MethodPut, "/api/v1/portfolio/generations/gen-7/status", `{"status":"generating"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/portfolio/generations", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gen-1"`)
}

func TestGenerations_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", generation.ErrGenerationNotFound("gen-1"), http.StatusNotFound, "Generation not found"},
		{"in progress", generation.ErrGenerationInProgress("user_1"), http.StatusConflict, "Generation already in progress"},
		{"finished", generation.ErrInvalidStatusTransition(generation.StatusReady, generation.StatusFailed), http.StatusConflict, "Generation already finished"},
		{"invalid", generation.ErrInvalidGeneration("deployment_url", errors.New("bad")), http.StatusBadRequest, "Invalid request body"},
		{"not synced", portfolio.ErrProfileNotSynced("user_1"), http.StatusNotFound, "Profile not synced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.generations.err = tt.err

			w := f.do(t, http.MethodPut, "/api/v1/portfolio/generations/gen-1/status", `{"status":"failed"}`, true)
			assert.Equal(t, tt.status, w.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}
