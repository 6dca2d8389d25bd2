package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsync "gitfolio-core/internal/domain/sync"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://service_role@localhost:5432/gitfolio")
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")
	t.Setenv("CLERK_JWKS_URL", "https://clerk.example.com/.well-known/jwks.json")
	t.Setenv("CLERK_ISSUER", "https://clerk.example.com")
	t.Setenv("ENV", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "authenticated", cfg.Database.ReadRole)
	assert.Equal(t, 100, cfg.GitHub.PerPage)
	assert.Equal(t, domainsync.PruneKeep, cfg.Sync.PrunePolicy)
	assert.True(t, cfg.Sync.AtomicWrites)
	assert.Equal(t, "oauth_github", cfg.Clerk.OAuthProvider)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.True(t, cfg.IsDevelopment())
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{
		"development": true,
		"DEV":         true,
		"production":  false,
		"staging":     false,
	} {
		cfg := &Config{Server: ServerConfig{Env: env}}
		assert.Equal(t, want, cfg.IsDevelopment(), env)
	}
}

func TestLoad_MissingElevatedCredential(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN is required")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "abc"},
		Database: DatabaseConfig{Driver: "mysql", ReadRole: "authenticated"},
		Clerk:    ClerkConfig{OAuthProvider: "oauth_github"},
		GitHub:   GitHubConfig{PerPage: 500},
		Sync:     SyncConfig{PrunePolicy: "sometimes"},
		Logging:  LoggingConfig{Level: "trace", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	for _, want := range []string{
		"SERVER_PORT", "DB_DRIVER", "DB_DSN", "CLERK_SECRET_KEY", "CLERK_JWKS_URL",
		"CLERK_ISSUER", "GITHUB_REPOS_PER_PAGE", "SYNC_PRUNE_POLICY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_SyncPolicyOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_PRUNE_POLICY", "PRUNE")
	t.Setenv("SYNC_ATOMIC_WRITES", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domainsync.PruneStale, cfg.Sync.PrunePolicy)
	assert.False(t, cfg.Sync.AtomicWrites)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
