package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"gitfolio-core/internal/config"
)

const maxBodyBytes = 10 << 20

// APIError is a non-2xx response from GitHub
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API returned status %d for %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// Client handles GitHub API interactions
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub API client
func NewClient(cfg *config.GitHubConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// User is the authenticated user resource (GET /user)
type User struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Followers int     `json:"followers"`
	Following int     `json:"following"`
}

// Repository represents a GitHub repository from the API
type Repository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Private         bool    `json:"private"`
	Fork            bool    `json:"fork"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	Language        *string `json:"language"`
}

// GetAuthenticatedUser fetches the token owner's profile.
// raw is the response body exactly as GitHub sent it.
func (c *Client) GetAuthenticatedUser(ctx context.Context, accessToken string) (*User, json.RawMessage, error) {
	body, err := c.get(ctx, accessToken, "/user")
	if err != nil {
		return nil, nil, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &u, json.RawMessage(body), nil
}

// GetUserRepositories fetches one page of the token owner's repositories, most recently updated first
func (c *Client) GetUserRepositories(ctx context.Context, accessToken string, perPage int) ([]Repository, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", "updated")

	body, err := c.get(ctx, accessToken, "/user/repos?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var repos []Repository
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("failed to decode repositories: %w", err)
	}

	return repos, nil
}

func (c *Client) get(ctx context.Context, accessToken, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.authorized(ctx, accessToken).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256] + "..."
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: path, Body: snippet}
	}

	return body, nil
}

// authorized returns a client that sends accessToken as a bearer token
func (c *Client) authorized(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	hc.Timeout = c.httpClient.Timeout
	return hc
}
