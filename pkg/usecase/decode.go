package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/modcheck/modcheck/pkg/domain/interfaces"
	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/modcheck/modcheck/pkg/utils/async"
)

const defaultDecodeConcurrency = 8

type releaseDecoder struct {
	concurrency int
}

// DecoderOption configures the release decoder.
type DecoderOption func(*releaseDecoder)

// WithDecodeConcurrency bounds how many records DecodeAll works on at once.
func WithDecodeConcurrency(n int) DecoderOption {
	return func(uc *releaseDecoder) {
		uc.concurrency = n
	}
}

// NewReleaseDecoder creates a new instance of ReleaseDecoder
func NewReleaseDecoder(opts ...DecoderOption) interfaces.ReleaseDecoder {
	uc := &releaseDecoder{
		concurrency: defaultDecodeConcurrency,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Decode decodes one raw release record
func (uc *releaseDecoder) Decode(ctx context.Context, raw *model.RawRelease) (*model.Release, error) {
	rel, warn, err := model.DecodeRelease(raw)
	if err != nil {
		return nil, err
	}

	if warn != nil {
		// Broken metadata must not hide the changelog itself: report the
		// failure and carry on with no descriptor attached.
		ctxlog.From(ctx).Warn("embedded payload could not be decoded",
			"release", rel.Tag,
			"error", warn,
		)
	}

	return rel, nil
}

// DecodeAll decodes a batch of records concurrently, preserving order
func (uc *releaseDecoder) DecodeAll(ctx context.Context, raws []*model.RawRelease) ([]*model.Release, error) {
	rels := make([]*model.Release, len(raws))
	errs := make([]error, len(raws))

	async.ForEach(ctx, uc.concurrency, len(raws), func(ctx context.Context, i int) {
		rels[i], errs[i] = uc.Decode(ctx, raws[i])
	})

	decoded := make([]*model.Release, 0, len(rels))
	for _, rel := range rels {
		if rel != nil {
			decoded = append(decoded, rel)
		}
	}

	return decoded, errors.Join(errs...)
}
