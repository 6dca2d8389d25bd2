package repo

import (
	"fmt"
	"strconv"
	"strings"
)

// GitHubID is a value object representing a GitHub repository ID.
// It is the primary key of stored repositories and is unique across users.
type GitHubID struct {
	value int64
}

// NewGitHubID creates a new GitHubID with validation
func NewGitHubID(id int64) (GitHubID, error) {
	if id <= 0 {
		return GitHubID{}, fmt.Errorf("GitHub ID must be positive")
	}
	return GitHubID{value: id}, nil
}

// MustGitHubID is like NewGitHubID but panics on an invalid ID
func MustGitHubID(id int64) GitHubID {
	g, err := NewGitHubID(id)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGitHubID parses a decimal string, as found in URL paths, into a GitHubID
func ParseGitHubID(s string) (GitHubID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return GitHubID{}, fmt.Errorf("invalid GitHub ID format: %w", err)
	}
	return NewGitHubID(id)
}

func (g GitHubID) Int64() int64 {
	return g.value
}

func (g GitHubID) String() string {
	return strconv.FormatInt(g.value, 10)
}

func (g GitHubID) Equals(other GitHubID) bool {
	return g.value == other.value
}

// Name is a value object representing a repository name
type Name struct {
	value string
}

// NewName creates a new Name with validation
func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return Name{}, fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > 100 {
		return Name{}, fmt.Errorf("repository name too long (max 100 characters)")
	}

	return Name{value: name}, nil
}

func (n Name) String() string {
	return n.value
}

func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// URL is a value object representing a repository's canonical web URL
type URL struct {
	value string
}

// NewURL creates a new URL with validation
func NewURL(url string) (URL, error) {
	url = strings.TrimSpace(url)

	if url == "" {
		return URL{}, fmt.Errorf("repository URL cannot be empty")
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return URL{}, fmt.Errorf("repository URL must be a valid HTTP(S) URL")
	}

	return URL{value: url}, nil
}

func (u URL) String() string {
	return u.value
}

func (u URL) Equals(other URL) bool {
	return u.value == other.value
}
