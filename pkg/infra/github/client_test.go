package github_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	githubinfra "github.com/modcheck/modcheck/pkg/infra/github"
)

func TestNewClient(t *testing.T) {
	gt.V(t, githubinfra.NewClient("")).NotNil()
	gt.V(t, githubinfra.NewClient("some-token")).NotNil()
}

func TestClient_ListReleases_WithRealAPI(t *testing.T) {
	// Integration test against the real GitHub API, gated on environment
	// variables so it does not run in CI by default.
	owner := os.Getenv("TEST_GITHUB_OWNER")
	repo := os.Getenv("TEST_GITHUB_REPO")
	if owner == "" || repo == "" {
		t.Skip("TEST_GITHUB_OWNER / TEST_GITHUB_REPO not provided")
	}

	client := githubinfra.NewClient(os.Getenv("TEST_GITHUB_TOKEN"))

	records, err := client.ListReleases(context.Background(), owner, repo)
	gt.NoError(t, err)

	for _, raw := range records {
		gt.V(t, raw).NotNil()
		gt.V(t, raw.Tag).NotNil()
	}
}
