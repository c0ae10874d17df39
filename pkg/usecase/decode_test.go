package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/modcheck/modcheck/pkg/usecase"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func rawRecord(tag, body string) *model.RawRelease {
	return &model.RawRelease{
		URL:         strPtr("https://example.com/releases/" + tag),
		Tag:         strPtr(tag),
		Title:       strPtr("Release " + tag),
		PublishedAt: strPtr("2016-01-01T00:00:00Z"),
		Prerelease:  boolPtr(false),
		Body:        strPtr(body),
	}
}

func TestDecode_PayloadWarningDoesNotFail(t *testing.T) {
	ctx := context.Background()
	decoder := usecase.NewReleaseDecoder()

	rel, err := decoder.Decode(ctx, rawRecord("v1.0", "[](# 'broken')Changelog."))
	gt.NoError(t, err)
	gt.V(t, rel).NotNil()
	gt.Equal(t, rel.Body, "Changelog.")
	gt.V(t, rel.Compat).Nil()
}

func TestDecode_RecordMalformed(t *testing.T) {
	ctx := context.Background()
	decoder := usecase.NewReleaseDecoder()

	raw := rawRecord("v1.0", "body")
	raw.Body = nil

	rel, err := decoder.Decode(ctx, raw)
	gt.Error(t, err)
	gt.V(t, rel).Nil()
}

func TestDecodeAll_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	decoder := usecase.NewReleaseDecoder(usecase.WithDecodeConcurrency(4))

	var raws []*model.RawRelease
	for i := 0; i < 50; i++ {
		raws = append(raws, rawRecord(fmt.Sprintf("v%d", i), fmt.Sprintf("body %d", i)))
	}

	rels, err := decoder.DecodeAll(ctx, raws)
	gt.NoError(t, err)
	gt.Equal(t, len(rels), 50)
	for i, rel := range rels {
		gt.Equal(t, rel.Tag, fmt.Sprintf("v%d", i))
		gt.Equal(t, rel.Body, fmt.Sprintf("body %d", i))
	}
}

func TestDecodeAll_SkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	decoder := usecase.NewReleaseDecoder()

	bad := rawRecord("v2", "body")
	bad.URL = nil

	rels, err := decoder.DecodeAll(ctx, []*model.RawRelease{
		rawRecord("v1", "body"),
		bad,
		rawRecord("v3", "body"),
	})

	// The malformed record is reported but the rest still decode.
	gt.Error(t, err)
	gt.Equal(t, len(rels), 2)
	gt.Equal(t, rels[0].Tag, "v1")
	gt.Equal(t, rels[1].Tag, "v3")
}
