package usecase

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/interfaces"
	"github.com/modcheck/modcheck/pkg/domain/model"
)

// HashAlgorithm selects the digest used for file checks. It must match
// whatever produced the acceptable hash values on the publisher side.
type HashAlgorithm string

const (
	HashMD5    HashAlgorithm = "md5"
	HashSHA1   HashAlgorithm = "sha1"
	HashSHA256 HashAlgorithm = "sha256"
)

func (a HashAlgorithm) newHash() (hash.Hash, error) {
	switch a {
	case HashMD5:
		return md5.New(), nil
	case HashSHA1:
		return sha1.New(), nil
	case HashSHA256:
		return sha256.New(), nil
	default:
		return nil, goerr.New("unknown hash algorithm", goerr.V("algorithm", string(a)))
	}
}

// Digest returns the uppercase hexadecimal digest of data. Uppercase is the
// producer convention the acceptable values follow.
func (a HashAlgorithm) Digest(data []byte) (string, error) {
	h, err := a.newHash()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

type integrityVerifier struct {
	algo HashAlgorithm
}

// VerifierOption configures the integrity verifier.
type VerifierOption func(*integrityVerifier)

// WithHashAlgorithm selects the digest algorithm. Default is MD5, which the
// existing producer side uses.
func WithHashAlgorithm(a HashAlgorithm) VerifierOption {
	return func(uc *integrityVerifier) {
		uc.algo = a
	}
}

// NewIntegrityVerifier creates a new instance of IntegrityVerifier
func NewIntegrityVerifier(opts ...VerifierOption) (interfaces.IntegrityVerifier, error) {
	uc := &integrityVerifier{
		algo: HashMD5,
	}
	for _, opt := range opts {
		opt(uc)
	}

	if _, err := uc.algo.newHash(); err != nil {
		return nil, err
	}

	return uc, nil
}

// Verify checks the descriptor against the environment and the installed
// files. Version and loader are evaluated independently so the caller can
// tell which dimension failed, and every declared file is checked even when
// an earlier one fails, so one pass yields the complete picture.
func (uc *integrityVerifier) Verify(ctx context.Context, desc *model.CompatibilityDescriptor, env model.Environment, resources interfaces.ResourceReader) (*model.VerificationResult, error) {
	if desc == nil {
		return nil, goerr.New("compatibility descriptor is required")
	}
	logger := ctxlog.From(ctx)

	result := &model.VerificationResult{
		VersionOK: desc.SupportsVersion(env.Version),
		LoaderOK:  env.Loader == desc.Loader,
	}
	result.Compatible = result.VersionOK && result.LoaderOK

	if !result.VersionOK {
		logger.Warn("environment version not supported by release",
			"version", env.Version,
			"primary", desc.PrimaryVersion,
			"compatible", desc.CompatibleVersions,
		)
	}
	if !result.LoaderOK {
		logger.Warn("loader mismatch",
			"loader", env.Loader,
			"expected", desc.Loader,
		)
	}

	result.Files = make([]model.FileResult, 0, len(desc.FileChecks))
	for _, check := range desc.FileChecks {
		result.Files = append(result.Files, model.FileResult{
			Anchor:  check.Anchor,
			Path:    check.Path,
			Outcome: uc.checkFile(ctx, check, resources),
		})
	}

	return result, nil
}

func (uc *integrityVerifier) checkFile(ctx context.Context, check model.FileCheck, resources interfaces.ResourceReader) model.FileOutcome {
	logger := ctxlog.From(ctx)

	data, err := resources.Read(ctx, check.Anchor, check.Path)
	if err != nil {
		logger.Warn("resource could not be read",
			"anchor", check.Anchor,
			"path", check.Path,
			"error", err,
		)
		return model.OutcomeUnreadable
	}

	digest, err := uc.algo.Digest(data)
	if err != nil {
		logger.Error("failed to compute digest",
			"anchor", check.Anchor,
			"path", check.Path,
			"error", err,
		)
		return model.OutcomeUnreadable
	}

	if !check.HashAccepted(digest) {
		logger.Warn("file hash not in acceptable set",
			"anchor", check.Anchor,
			"path", check.Path,
			"digest", digest,
			"acceptable", check.AcceptableHashes,
		)
		return model.OutcomeMismatched
	}

	return model.OutcomeMatched
}
