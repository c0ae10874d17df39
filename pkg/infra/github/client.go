package github

import (
	"context"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/interfaces"
	"github.com/modcheck/modcheck/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a release source backed by the GitHub releases API.
// token may be empty for anonymous access to public repositories.
func NewClient(token string) interfaces.ReleaseSource {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &client{githubClient: gh}
}

// ListReleases returns all releases of the repository, newest first.
func (c *client) ListReleases(ctx context.Context, owner, repo string) ([]*model.RawRelease, error) {
	var records []*model.RawRelease

	opts := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := c.githubClient.Repositories.ListReleases(ctx, owner, repo, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list releases",
				goerr.V("owner", owner), goerr.V("repo", repo))
		}

		for _, rel := range releases {
			records = append(records, toRawRelease(rel))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}

// GetReleaseByTag returns the release published under tag.
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.RawRelease, error) {
	rel, _, err := c.githubClient.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("tag", tag))
	}
	return toRawRelease(rel), nil
}

// toRawRelease maps the API release onto the raw record the decoder
// consumes. Absent API fields stay nil: the decoder, not the transport,
// decides what missing means.
func toRawRelease(rel *github.RepositoryRelease) *model.RawRelease {
	raw := &model.RawRelease{
		URL:        rel.HTMLURL,
		Tag:        rel.TagName,
		Title:      rel.Name,
		Prerelease: rel.Prerelease,
		Body:       rel.Body,
	}
	if rel.PublishedAt != nil {
		published := rel.PublishedAt.UTC().Format(time.RFC3339)
		raw.PublishedAt = &published
	}
	return raw
}
