package repo_test

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gitfolio-core/internal/domain/repo"
	"gitfolio-core/internal/domain/user"
)

func TestFromGitHubProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	owner := user.MustParseUserID("user_prop")

	properties.Property("counts are never negative", prop.ForAll(
		func(stars, forks int) bool {
			r, err := repo.FromGitHub(owner, &repo.GitHubRepository{
				ID: 1, Name: "demo", HTMLURL: "https://github.com/o/demo",
				StargazersCount: stars, ForksCount: forks,
			}, "b", time.Now())
			if err != nil {
				return false
			}
			return r.StarsCount() >= 0 && r.ForksCount() >= 0 &&
				(stars < 0 || r.StarsCount() == stars) &&
				(forks < 0 || r.ForksCount() == forks)
		},
		gen.IntRange(-1000, 1_000_000),
		gen.IntRange(-1000, 1_000_000),
	))

	properties.Property("positive ids survive normalization and round-trip as text", prop.ForAll(
		func(id int64) bool {
			r, err := repo.FromGitHub(owner, &repo.GitHubRepository{
				ID: id, Name: "demo", HTMLURL: "https://github.com/o/demo",
			}, "b", time.Now())
			if err != nil {
				return false
			}
			parsed, err := repo.ParseGitHubID(r.GitHubID().String())
			return err == nil && parsed.Equals(r.GitHubID()) && r.BelongsToUser(owner)
		},
		gen.Int64Range(1, 1<<62),
	))

	properties.TestingRun(t)
}
