package clerk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.ClerkConfig{APIURL: srv.URL, SecretKey: "sk_test"})
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user_1", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": "user_1", "object": "user", "username": "octocat", "first_name": "Mona",
			"primary_email_address_id": "idn_2",
			"email_addresses": [
				{"id": "idn_1", "email_address": "old@example.com"},
				{"id": "idn_2", "email_address": "mona@example.com"}
			],
			"created_at": 1700000000000, "updated_at": 1700000000000
		}`))
	})

	u, err := c.GetUser(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "user_1", u.ID)
	assert.Equal(t, "octocat", u.Username)
	assert.Equal(t, "mona@example.com", u.Email)
	assert.Equal(t, "Mona", u.FirstName)
	assert.Equal(t, int64(1700000000), u.CreatedAt.Unix())
}

func TestGetUser_TypedErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUserNotFound)
		}},
		{"bad secret", http.StatusUnauthorized, func(t *testing.T, err error) {
			var ce *ConfigError
			assert.ErrorAs(t, err, &ce)
		}},
		{"upstream failure", http.StatusBadGateway, func(t *testing.T, err error) {
			var ae *APIError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, http.StatusBadGateway, ae.StatusCode)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"errors":[{"code":"x"}]}`))
			})
			_, err := c.GetUser(context.Background(), "user_1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGetUser_MissingSecretIsConfigError(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(&config.ClerkConfig{APIURL: srv.URL})
	_, err := c.GetUser(context.Background(), "user_1")

	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
	assert.False(t, called, "no request may be sent without a secret key")
}

func TestGetOAuthAccessToken(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/user_1/oauth_access_tokens/oauth_github", r.URL.Path)
			w.Write([]byte(`[{"provider":"oauth_github","token":"gho_abc","scopes":["repo"]}]`))
		})
		tok, err := c.GetOAuthAccessToken(context.Background(), "user_1", "oauth_github")
		require.NoError(t, err)
		assert.Equal(t, "gho_abc", tok.Token)
	})

	t.Run("paginated wrapper", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"provider":"oauth_github","token":"gho_def"}],"total_count":1}`))
		})
		tok, err := c.GetOAuthAccessToken(context.Background(), "user_1", "oauth_github")
		require.NoError(t, err)
		assert.Equal(t, "gho_def", tok.Token)
	})

	t.Run("no grant", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		_, err := c.GetOAuthAccessToken(context.Background(), "user_1", "oauth_github")
		assert.ErrorIs(t, err, ErrNoOAuthToken)
	})

	t.Run("empty token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"provider":"oauth_github","token":""}]`))
		})
		_, err := c.GetOAuthAccessToken(context.Background(), "user_1", "oauth_github")
		assert.ErrorIs(t, err, ErrNoOAuthToken)
	})
}
