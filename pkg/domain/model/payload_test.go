package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/modcheck/modcheck/pkg/domain/model"
	"github.com/modcheck/modcheck/pkg/domain/types"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func rawRecord(body string) *model.RawRelease {
	return &model.RawRelease{
		URL:         strPtr("https://example.com/releases/v4.0"),
		Tag:         strPtr("v4.0"),
		Title:       strPtr("Version 4.0"),
		PublishedAt: strPtr("2016-01-01T00:00:00Z"),
		Prerelease:  boolPtr(false),
		Body:        strPtr(body),
	}
}

func TestDecodeRelease_NoMarker(t *testing.T) {
	bodies := []string{
		"",
		"Just a changelog.",
		"Multi\nline\nchangelog.",
		"text before [](# '{\"Minecraft\":\"1.12\"}') marker not at start",
		"[](# '')empty quoted span",
		"[](# 'no terminator",
		"[](# '{\"broken\nacross\":\"lines\"}')text",
	}

	for _, body := range bodies {
		rel, warn, err := model.DecodeRelease(rawRecord(body))
		gt.NoError(t, err)
		gt.NoError(t, warn)
		gt.Equal(t, rel.Body, body)
		gt.V(t, rel.Compat).Nil()
	}
}

func TestDecodeRelease_HiddenPayload(t *testing.T) {
	body := `[](# '{"Minecraft":"1.12","MinecraftCompatible":["1.12","1.12.1"],"Loader":"Forge","Post":null,"Hashes":[]}')Changelog text.`

	rel, warn, err := model.DecodeRelease(rawRecord(body))
	gt.NoError(t, err)
	gt.NoError(t, warn)

	gt.Equal(t, rel.Body, "Changelog text.")
	gt.V(t, rel.Compat).NotNil()
	gt.Equal(t, rel.Compat.PrimaryVersion, "1.12")
	gt.Equal(t, rel.Compat.CompatibleVersions, []string{"1.12", "1.12.1"})
	gt.Equal(t, rel.Compat.Loader, "Forge")
	gt.V(t, rel.Compat.AnnouncementPost).Nil()
	gt.Equal(t, len(rel.Compat.FileChecks), 0)

	// Visible fields pass through verbatim.
	gt.Equal(t, rel.Tag, "v4.0")
	gt.Equal(t, rel.Title, "Version 4.0")
	gt.Equal(t, rel.Prerelease, false)
}

func TestDecodeRelease_FileChecks(t *testing.T) {
	body := `[](# '{"Minecraft":"1.8","MinecraftCompatible":["1.8"],"Loader":"liteloader","Post":"https://example.com/announce","Hashes":[{"RelativeTo":"wdl.WDL","File":"WDL.class","Hash":["AABB","CCDD"]}]}')Notes.`

	rel, warn, err := model.DecodeRelease(rawRecord(body))
	gt.NoError(t, err)
	gt.NoError(t, warn)

	gt.V(t, rel.Compat).NotNil()
	gt.V(t, rel.Compat.AnnouncementPost).NotNil()
	gt.Equal(t, *rel.Compat.AnnouncementPost, "https://example.com/announce")
	gt.Equal(t, len(rel.Compat.FileChecks), 1)
	gt.Equal(t, rel.Compat.FileChecks[0], model.FileCheck{
		Anchor:           "wdl.WDL",
		Path:             "WDL.class",
		AcceptableHashes: []string{"AABB", "CCDD"},
	})
}

func TestDecodeRelease_MarkerSpanRemovedExactly(t *testing.T) {
	marker := `[](# '{"Minecraft":"1.12","MinecraftCompatible":[],"Loader":"Forge","Post":null,"Hashes":[]}')`
	suffix := "First line.\n\nSecond [](# 'tooltip') paragraph.\n"

	rel, warn, err := model.DecodeRelease(rawRecord(marker + suffix))
	gt.NoError(t, err)
	gt.NoError(t, warn)

	// Exactly the marker span is gone: nothing more, nothing less. A
	// zero-width link later in the body is left alone.
	gt.Equal(t, rel.Body, suffix)
}

func TestDecodeRelease_PayloadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", `not json at all`},
		{"JSON array", `["Minecraft"]`},
		{"missing Minecraft", `{"MinecraftCompatible":[],"Loader":"Forge","Post":null,"Hashes":[]}`},
		{"missing MinecraftCompatible", `{"Minecraft":"1.12","Loader":"Forge","Post":null,"Hashes":[]}`},
		{"missing Loader", `{"Minecraft":"1.12","MinecraftCompatible":[],"Post":null,"Hashes":[]}`},
		{"missing Post", `{"Minecraft":"1.12","MinecraftCompatible":[],"Loader":"Forge","Hashes":[]}`},
		{"missing Hashes", `{"Minecraft":"1.12","MinecraftCompatible":[],"Loader":"Forge","Post":null}`},
		{"Minecraft wrong type", `{"Minecraft":12,"MinecraftCompatible":[],"Loader":"Forge","Post":null,"Hashes":[]}`},
		{"Post wrong type", `{"Minecraft":"1.12","MinecraftCompatible":[],"Loader":"Forge","Post":7,"Hashes":[]}`},
		{"hash entry missing File", `{"Minecraft":"1.12","MinecraftCompatible":[],"Loader":"Forge","Post":null,"Hashes":[{"RelativeTo":"x","Hash":["AB"]}]}`},
		{"empty hash set", `{"Minecraft":"1.12","MinecraftCompatible":["1.12"],"Loader":"Forge","Post":null,"Hashes":[{"RelativeTo":"x","File":"y.class","Hash":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "[](# '" + tt.payload + "')Changelog text."

			rel, warn, err := model.DecodeRelease(rawRecord(body))
			gt.NoError(t, err)

			// The release survives with the marker stripped; only the
			// metadata is reported broken.
			gt.V(t, rel).NotNil()
			gt.Equal(t, rel.Body, "Changelog text.")
			gt.V(t, rel.Compat).Nil()
			gt.V(t, warn).NotNil()
			gt.True(t, goerr.HasTag(warn, types.TagPayloadMalformed))
		})
	}
}

func TestDecodeRelease_DuplicateCompatibleVersions(t *testing.T) {
	body := `[](# '{"Minecraft":"1.12","MinecraftCompatible":["1.12","1.12","1.12.1"],"Loader":"Forge","Post":null,"Hashes":[]}')x`

	rel, warn, err := model.DecodeRelease(rawRecord(body))
	gt.NoError(t, err)
	gt.NoError(t, warn)
	gt.Equal(t, rel.Compat.CompatibleVersions, []string{"1.12", "1.12", "1.12.1"})
}

func TestDecodeRelease_RecordMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.RawRelease)
	}{
		{"missing url", func(r *model.RawRelease) { r.URL = nil }},
		{"missing tag", func(r *model.RawRelease) { r.Tag = nil }},
		{"missing title", func(r *model.RawRelease) { r.Title = nil }},
		{"missing publishedAt", func(r *model.RawRelease) { r.PublishedAt = nil }},
		{"missing prerelease", func(r *model.RawRelease) { r.Prerelease = nil }},
		{"missing body", func(r *model.RawRelease) { r.Body = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawRecord("some body")
			tt.mutate(raw)

			rel, warn, err := model.DecodeRelease(raw)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.TagRecordMalformed))
			gt.V(t, rel).Nil()
			gt.NoError(t, warn)
		})
	}

	t.Run("nil record", func(t *testing.T) {
		rel, _, err := model.DecodeRelease(nil)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.TagRecordMalformed))
		gt.V(t, rel).Nil()
	})
}

func TestEncodePayload_RoundTrip(t *testing.T) {
	post := "https://example.com/post"
	descs := []*model.CompatibilityDescriptor{
		{
			PrimaryVersion:     "1.12",
			CompatibleVersions: []string{"1.12", "1.12.1"},
			Loader:             "Forge",
			AnnouncementPost:   &post,
			FileChecks: []model.FileCheck{
				{Anchor: "wdl.WDL", Path: "WDL.class", AcceptableHashes: []string{"AABB", "CCDD"}},
				{Anchor: "wdl.update.Release", Path: "/wdl/Release.class", AcceptableHashes: []string{"0011"}},
			},
		},
		{
			PrimaryVersion:     "1.8",
			CompatibleVersions: []string{},
			Loader:             "liteloader",
			FileChecks:         []model.FileCheck{},
		},
	}

	for _, desc := range descs {
		marker, err := model.EncodePayload(desc)
		gt.NoError(t, err)

		rel, warn, err := model.DecodeRelease(rawRecord(marker + "Body."))
		gt.NoError(t, err)
		gt.NoError(t, warn)
		gt.Equal(t, rel.Body, "Body.")
		gt.Equal(t, rel.Compat, desc)
	}
}

func TestEncodePayload_Rejects(t *testing.T) {
	t.Run("empty hash set", func(t *testing.T) {
		_, err := model.EncodePayload(&model.CompatibilityDescriptor{
			PrimaryVersion: "1.12",
			Loader:         "Forge",
			FileChecks:     []model.FileCheck{{Anchor: "x", Path: "y.class"}},
		})
		gt.Error(t, err)
	})

	t.Run("terminator inside a value", func(t *testing.T) {
		_, err := model.EncodePayload(&model.CompatibilityDescriptor{
			PrimaryVersion: "1.12')",
			Loader:         "Forge",
		})
		gt.Error(t, err)
	})
}
