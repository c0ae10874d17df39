package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/interfaces"
	"github.com/modcheck/modcheck/pkg/domain/model"
)

type updateChecker struct {
	source    interfaces.ReleaseSource
	decoder   interfaces.ReleaseDecoder
	verifier  interfaces.IntegrityVerifier
	resources interfaces.ResourceReader
}

// NewUpdateChecker creates a new instance of UpdateChecker
func NewUpdateChecker(
	source interfaces.ReleaseSource,
	decoder interfaces.ReleaseDecoder,
	verifier interfaces.IntegrityVerifier,
	resources interfaces.ResourceReader,
) interfaces.UpdateChecker {
	return &updateChecker{
		source:    source,
		decoder:   decoder,
		verifier:  verifier,
		resources: resources,
	}
}

// Check fetches the candidate releases, decodes them, selects the release
// that targets the environment and verifies the installed files against it.
func (uc *updateChecker) Check(ctx context.Context, req *model.CheckRequest) (*model.CheckResult, error) {
	logger := ctxlog.From(ctx)

	raws, err := uc.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("fetched release records",
		"owner", req.Owner,
		"repo", req.Repo,
		"count", len(raws),
	)

	rels, decodeErr := uc.decoder.DecodeAll(ctx, raws)
	if decodeErr != nil {
		if len(rels) == 0 {
			return nil, goerr.Wrap(decodeErr, "no release record could be decoded")
		}
		logger.Warn("some release records could not be decoded", "error", decodeErr)
	}

	rel := pickRelease(rels, req)
	if rel == nil {
		return nil, goerr.New("no release matches the environment",
			goerr.V("version", req.Env.Version),
			goerr.V("loader", req.Env.Loader),
		)
	}

	logger.Info("selected release",
		"tag", rel.Tag,
		"title", rel.Title,
		"prerelease", rel.Prerelease,
	)

	result := &model.CheckResult{
		Release:         rel,
		UpdateAvailable: req.InstalledTag != "" && req.InstalledTag != rel.Tag,
	}

	if rel.Compat == nil {
		// Nothing to verify against. Compatibility is unknown, not failed.
		logger.Warn("release carries no compatibility metadata", "tag", rel.Tag)
		return result, nil
	}

	verification, err := uc.verifier.Verify(ctx, rel.Compat, req.Env, uc.resources)
	if err != nil {
		return nil, goerr.Wrap(err, "verification failed", goerr.V("tag", rel.Tag))
	}
	result.Verification = verification

	return result, nil
}

func (uc *updateChecker) fetch(ctx context.Context, req *model.CheckRequest) ([]*model.RawRelease, error) {
	if req.Tag != "" {
		raw, err := uc.source.GetReleaseByTag(ctx, req.Owner, req.Repo, req.Tag)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch release",
				goerr.V("owner", req.Owner), goerr.V("repo", req.Repo), goerr.V("tag", req.Tag))
		}
		return []*model.RawRelease{raw}, nil
	}

	raws, err := uc.source.ListReleases(ctx, req.Owner, req.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases",
			goerr.V("owner", req.Owner), goerr.V("repo", req.Repo))
	}
	return raws, nil
}

// pickRelease returns the release to check. With a pinned tag the single
// fetched record wins regardless of its metadata. Otherwise releases arrive
// newest first, so the first one whose descriptor targets the environment is
// the newest candidate.
func pickRelease(rels []*model.Release, req *model.CheckRequest) *model.Release {
	if req.Tag != "" {
		if len(rels) == 0 {
			return nil
		}
		return rels[0]
	}

	for _, rel := range rels {
		if rel.Prerelease && !req.Prereleases {
			continue
		}
		if rel.Compat == nil {
			continue
		}
		if rel.Compat.SupportsVersion(req.Env.Version) && rel.Compat.Loader == req.Env.Loader {
			return rel
		}
	}
	return nil
}
