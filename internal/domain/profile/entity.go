package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitfolio-core/internal/domain/user"
)

// Profile is the stored snapshot of a user's GitHub account.
// There is at most one per identity-provider user ID.
type Profile struct {
	userID         user.UserID
	username       string
	fullName       *string
	avatarURL      *string
	bio            *string
	location       *string
	followersCount int
	followingCount int
	githubID       string
	updatedAt      time.Time
}

// FromGitHub normalizes the upstream profile payload for the given user
func FromGitHub(userID user.UserID, gh *GitHubProfile, syncedAt time.Time) (*Profile, error) {
	if gh == nil {
		return nil, ErrInvalidProfileData("payload", fmt.Errorf("nil profile"))
	}
	if userID.IsZero() {
		return nil, ErrInvalidProfileData("user_id", fmt.Errorf("user ID cannot be empty"))
	}

	login := strings.TrimSpace(gh.Login)
	if login == "" {
		return nil, ErrInvalidProfileData("login", fmt.Errorf("login cannot be empty"))
	}
	if gh.ID <= 0 {
		return nil, ErrInvalidProfileData("id", fmt.Errorf("GitHub ID must be positive"))
	}

	return &Profile{
		userID:   userID,
		username: login,
		fullName: gh.Name,
		// decimal text, never a float
		githubID:       strconv.FormatInt(gh.ID, 10),
		avatarURL:      gh.AvatarURL,
		bio:            gh.Bio,
		location:       gh.Location,
		followersCount: nonNegative(gh.Followers),
		followingCount: nonNegative(gh.Following),
		updatedAt:      syncedAt.UTC(),
	}, nil
}

// Reconstitute recreates a Profile entity from persistence
func Reconstitute(
	userID, username string,
	fullName, avatarURL, bio, location *string,
	followers, following int,
	githubID string,
	updatedAt time.Time,
) (*Profile, error) {
	id, err := user.ParseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	return &Profile{
		userID:         id,
		username:       username,
		fullName:       fullName,
		avatarURL:      avatarURL,
		bio:            bio,
		location:       location,
		followersCount: followers,
		followingCount: following,
		githubID:       githubID,
		updatedAt:      updatedAt,
	}, nil
}

// Getters

func (p *Profile) UserID() user.UserID {
	return p.userID
}

func (p *Profile) Username() string {
	return p.username
}

func (p *Profile) FullName() *string {
	return p.fullName
}

func (p *Profile) AvatarURL() *string {
	return p.avatarURL
}

func (p *Profile) Bio() *string {
	return p.bio
}

func (p *Profile) Location() *string {
	return p.location
}

func (p *Profile) FollowersCount() int {
	return p.followersCount
}

func (p *Profile) FollowingCount() int {
	return p.followingCount
}

func (p *Profile) GitHubID() string {
	return p.githubID
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Profile) String() string {
	return fmt.Sprintf("Profile{userID: %s, username: %s, githubID: %s}",
		p.userID.String(), p.username, p.githubID)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
