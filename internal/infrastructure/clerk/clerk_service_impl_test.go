package clerk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/clerk"
	"gitfolio-core/internal/config"
	"gitfolio-core/internal/domain/user"
)

func newService(t *testing.T, status int, body string) *ClerkServiceImpl {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClerkService(clerk.NewClient(&config.ClerkConfig{APIURL: srv.URL, SecretKey: "sk_test"}))
}

func TestGetUser_Maps(t *testing.T) {
	svc := newService(t, http.StatusOK, `{"id":"user_1","username":"octocat","email_addresses":[{"id":"e","email_address":"not-an-email"}]}`)

	u, err := svc.GetUser(context.Background(), user.MustParseUserID("user_1"))
	require.NoError(t, err)
	assert.Equal(t, "user_1", u.ID().String())
	assert.Equal(t, "octocat", u.Username())
	assert.True(t, u.Email().IsZero(), "malformed email is dropped, not fatal")
}

func TestTranslate(t *testing.T) {
	id := user.MustParseUserID("user_1")

	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"unknown user", http.StatusNotFound, `{}`, user.CodeUserNotFound},
		{"no grant", http.StatusOK, `[]`, user.CodeNoLinkedGrant},
		{"rejected secret", http.StatusForbidden, `{}`, user.CodeIdentityConfiguration},
		{"outage", http.StatusServiceUnavailable, `{}`, user.CodeIdentityUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.status, tt.body)
			_, err := svc.GetOAuthAccessToken(context.Background(), id, "oauth_github")
			assert.True(t, user.HasCode(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}
