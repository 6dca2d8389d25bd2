package profile_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitfolio-core/internal/domain/profile"
	"gitfolio-core/internal/domain/user"
)

func strPtr(s string) *string { return &s }

func TestFromGitHub_Octocat(t *testing.T) {
	syncedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p, err := profile.FromGitHub(user.MustParseUserID("u1"), &profile.GitHubProfile{
		ID: 1, Login: "octocat", Name: strPtr("The Octocat"), Followers: 10, Following: 2,
		Location: strPtr("San Francisco"),
	}, syncedAt)
	require.NoError(t, err)

	assert.Equal(t, "u1", p.UserID().String())
	assert.Equal(t, "octocat", p.Username())
	assert.Equal(t, "1", p.GitHubID())
	assert.Equal(t, 10, p.FollowersCount())
	assert.Equal(t, 2, p.FollowingCount())
	assert.Equal(t, "The Octocat", *p.FullName())
	assert.Nil(t, p.Bio())
	assert.Nil(t, p.AvatarURL())
	assert.True(t, p.UpdatedAt().Equal(syncedAt))
}

func TestFromGitHub_Invalid(t *testing.T) {
	id := user.MustParseUserID("u1")

	tests := []struct {
		name string
		gh   *profile.GitHubProfile
	}{
		{"nil payload", nil},
		{"missing login", &profile.GitHubProfile{ID: 1}},
		{"missing id", &profile.GitHubProfile{Login: "octocat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profile.FromGitHub(id, tt.gh, time.Now())
			var de *profile.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "INVALID_PROFILE_DATA", de.Code)
		})
	}

	_, err := profile.FromGitHub(user.UserID{}, &profile.GitHubProfile{ID: 1, Login: "octocat"}, time.Now())
	require.Error(t, err)
}

func TestFromGitHub_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	id := user.MustParseUserID("u1")

	properties.Property("github id is stored as its exact decimal text", prop.ForAll(
		func(ghID int64) bool {
			p, err := profile.FromGitHub(id, &profile.GitHubProfile{ID: ghID, Login: "octocat"}, time.Now())
			if err != nil {
				return false
			}
			parsed, err := strconv.ParseInt(p.GitHubID(), 10, 64)
			return err == nil && parsed == ghID
		},
		gen.Int64Range(1, 1<<62),
	))

	properties.Property("follower counts are never negative", prop.ForAll(
		func(followers, following int) bool {
			p, err := profile.FromGitHub(id, &profile.GitHubProfile{
				ID: 1, Login: "octocat", Followers: followers, Following: following,
			}, time.Now())
			return err == nil && p.FollowersCount() >= 0 && p.FollowingCount() >= 0
		},
		gen.IntRange(-100, 100000),
		gen.IntRange(-100, 100000),
	))

	properties.TestingRun(t)
}
