package clerk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitfolio-core/internal/config"
)

var (
	// ErrUserNotFound is returned when Clerk has no user with the requested ID
	ErrUserNotFound = errors.New("clerk: user not found")
	// ErrNoOAuthToken is returned when the user has no linked grant for the provider
	ErrNoOAuthToken = errors.New("clerk: no OAuth access token for provider")
)

// ConfigError means Clerk rejected this server's own credentials
type ConfigError struct {
	StatusCode int
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("clerk configuration error (status %d): %s", e.StatusCode, e.Reason)
}

// APIError is any other non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clerk API error: %d - %s", e.StatusCode, e.Body)
}

// Client represents a Clerk API client
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a new Clerk API client
func NewClient(cfg *config.ClerkConfig) *Client {
	return &Client{
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// User represents a user from Clerk API
type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailAddress represents an email address from Clerk API
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// userResponse is the user object returned by the Backend API
type userResponse struct {
	ID                    string         `json:"id"`
	Object                string         `json:"object"`
	Username              *string        `json:"username"`
	FirstName             *string        `json:"first_name"`
	LastName              *string        `json:"last_name"`
	PrimaryEmailAddressID *string        `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	CreatedAt             int64          `json:"created_at"`
	UpdatedAt             int64          `json:"updated_at"`
}

// OAuthAccessToken is one provider grant of a user
type OAuthAccessToken struct {
	ExternalAccountID string   `json:"external_account_id"`
	Provider          string   `json:"provider"`
	Token             string   `json:"token"`
	Scopes            []string `json:"scopes"`
}

// GetUser fetches a user by ID from Clerk API
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	body, err := c.get(ctx, "/users/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.ID == "" {
		return nil, ErrUserNotFound
	}

	return &User{
		ID:        resp.ID,
		Email:     primaryEmail(resp),
		Username:  deref(resp.Username),
		FirstName: deref(resp.FirstName),
		LastName:  deref(resp.LastName),
		CreatedAt: time.UnixMilli(resp.CreatedAt),
		UpdatedAt: time.UnixMilli(resp.UpdatedAt),
	}, nil
}

// GetOAuthAccessToken returns the first access token the user holds for provider
// (for example "oauth_github").
func (c *Client) GetOAuthAccessToken(ctx context.Context, userID, provider string) (*OAuthAccessToken, error) {
	body, err := c.get(ctx, fmt.Sprintf("/users/%s/oauth_access_tokens/%s", url.PathEscape(userID), url.PathEscape(provider)))
	if err != nil {
		return nil, err
	}

	// the endpoint answers with a bare array or, on newer API versions, a paginated wrapper
	var tokens []OAuthAccessToken
	if err := json.Unmarshal(body, &tokens); err != nil {
		var wrapped struct {
			Data []OAuthAccessToken `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		tokens = wrapped.Data
	}

	for i := range tokens {
		if tokens[i].Token != "" {
			return &tokens[i], nil
		}
	}
	return nil, ErrNoOAuthToken
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.secretKey == "" {
		return nil, &ConfigError{Reason: "CLERK_SECRET_KEY is not set"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ConfigError{StatusCode: resp.StatusCode, Reason: "secret key rejected"}
	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
}

func primaryEmail(u userResponse) string {
	for _, e := range u.EmailAddresses {
		if u.PrimaryEmailAddressID != nil && e.ID == *u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
