package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modcheck/modcheck/pkg/domain/types"
)

// The publisher hides a JSON object inside the changelog markdown as
// [](# '{...}') at the very start of the body. The link renders as zero
// characters, so readers only ever see the text after it (the quoted part
// is normally a tooltip). The marker counts only at offset 0; the same
// construct later in the body is ordinary markdown and stays untouched.
const (
	markerPrefix = "[](# '"
	markerClose  = "')"
)

// payloadSpan locates the embedded payload. It returns the quoted payload
// text and the end offset of the whole marker span, or ok=false when the
// body carries no marker. Matching mirrors the producer's regexp
// `^\[\]\(# '(.+?)'\)`: the first terminator wins, the quoted text must be
// non-empty and cannot span lines.
func payloadSpan(body string) (payload string, end int, ok bool) {
	if !strings.HasPrefix(body, markerPrefix) {
		return "", 0, false
	}
	rest := body[len(markerPrefix):]
	idx := strings.Index(rest, markerClose)
	if idx <= 0 {
		return "", 0, false
	}
	payload = rest[:idx]
	if strings.ContainsAny(payload, "\r\n") {
		return "", 0, false
	}
	return payload, len(markerPrefix) + idx + len(markerClose), true
}

// Wire shape of the hidden JSON. The key names are fixed by the existing
// producer side and must not change. Pointer fields distinguish a missing
// key from an empty value; Post stays raw because an explicit null is valid
// while a missing key is not.
type payloadWire struct {
	Minecraft           *string         `json:"Minecraft"`
	MinecraftCompatible *[]string       `json:"MinecraftCompatible"`
	Loader              *string         `json:"Loader"`
	Post                json.RawMessage `json:"Post"`
	Hashes              *[]hashWire     `json:"Hashes"`
}

type hashWire struct {
	RelativeTo *string   `json:"RelativeTo"`
	File       *string   `json:"File"`
	Hash       *[]string `json:"Hash"`
}

func parsePayload(text string) (*CompatibilityDescriptor, error) {
	var wire payloadWire
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, goerr.Wrap(err, "payload is not a valid JSON object",
			goerr.T(types.TagPayloadMalformed))
	}

	switch {
	case wire.Minecraft == nil:
		return nil, missingFieldErr("Minecraft")
	case wire.MinecraftCompatible == nil:
		return nil, missingFieldErr("MinecraftCompatible")
	case wire.Loader == nil:
		return nil, missingFieldErr("Loader")
	case len(wire.Post) == 0:
		return nil, missingFieldErr("Post")
	case wire.Hashes == nil:
		return nil, missingFieldErr("Hashes")
	}

	desc := &CompatibilityDescriptor{
		PrimaryVersion:     *wire.Minecraft,
		CompatibleVersions: *wire.MinecraftCompatible,
		Loader:             *wire.Loader,
	}

	if string(wire.Post) != "null" {
		var post string
		if err := json.Unmarshal(wire.Post, &post); err != nil {
			return nil, goerr.Wrap(err, "payload field Post must be a string or null",
				goerr.T(types.TagPayloadMalformed))
		}
		desc.AnnouncementPost = &post
	}

	desc.FileChecks = make([]FileCheck, 0, len(*wire.Hashes))
	for _, h := range *wire.Hashes {
		switch {
		case h.RelativeTo == nil:
			return nil, missingFieldErr("Hashes[].RelativeTo")
		case h.File == nil:
			return nil, missingFieldErr("Hashes[].File")
		case h.Hash == nil:
			return nil, missingFieldErr("Hashes[].Hash")
		}
		if len(*h.Hash) == 0 {
			return nil, goerr.New("file check has no acceptable hashes",
				goerr.T(types.TagPayloadMalformed),
				goerr.V("anchor", *h.RelativeTo),
				goerr.V("path", *h.File))
		}
		desc.FileChecks = append(desc.FileChecks, FileCheck{
			Anchor:           *h.RelativeTo,
			Path:             *h.File,
			AcceptableHashes: *h.Hash,
		})
	}

	return desc, nil
}

func missingFieldErr(key string) error {
	return goerr.New("payload field missing or wrong type",
		goerr.T(types.TagPayloadMalformed), goerr.V("field", key))
}

// DecodeRelease builds a Release from one raw record.
//
// warn is non-nil when an embedded payload was located but could not be
// decoded; the Release is still fully usable then, with Compat nil and the
// marker already stripped from Body. rel is nil iff err is non-nil, which
// happens only when a required visible field is missing from the record.
func DecodeRelease(raw *RawRelease) (rel *Release, warn, err error) {
	if raw == nil {
		return nil, nil, goerr.New("raw release record is nil",
			goerr.T(types.TagRecordMalformed))
	}

	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"url", raw.URL != nil},
		{"tag", raw.Tag != nil},
		{"title", raw.Title != nil},
		{"publishedAt", raw.PublishedAt != nil},
		{"prerelease", raw.Prerelease != nil},
		{"body", raw.Body != nil},
	} {
		if !f.ok {
			return nil, nil, goerr.New("release record field missing",
				goerr.T(types.TagRecordMalformed), goerr.V("field", f.name))
		}
	}

	rel = &Release{
		URL:         *raw.URL,
		Tag:         *raw.Tag,
		Title:       *raw.Title,
		PublishedAt: *raw.PublishedAt,
		Prerelease:  *raw.Prerelease,
		Body:        *raw.Body,
	}

	payload, end, ok := payloadSpan(rel.Body)
	if !ok {
		return rel, nil, nil
	}

	// The marker span is removed even when its contents turn out to be
	// broken, so the visible text is always clean.
	rel.Body = rel.Body[end:]

	desc, perr := parsePayload(payload)
	if perr != nil {
		return rel, goerr.Wrap(perr, "embedded payload could not be decoded",
			goerr.T(types.TagPayloadMalformed), goerr.V("release", rel.Tag)), nil
	}

	rel.Compat = desc
	return rel, nil, nil
}

// EncodePayload renders desc as the hidden-marker construct the decoder
// understands, ready to be prepended to a changelog body. Decoding the
// result yields an equal descriptor.
func EncodePayload(desc *CompatibilityDescriptor) (string, error) {
	if desc == nil {
		return "", goerr.New("descriptor is nil")
	}

	compatible := desc.CompatibleVersions
	if compatible == nil {
		compatible = []string{}
	}

	hashes := make([]hashWire, 0, len(desc.FileChecks))
	for i := range desc.FileChecks {
		c := &desc.FileChecks[i]
		if len(c.AcceptableHashes) == 0 {
			return "", goerr.New("file check has no acceptable hashes",
				goerr.V("anchor", c.Anchor), goerr.V("path", c.Path))
		}
		hashes = append(hashes, hashWire{
			RelativeTo: &c.Anchor,
			File:       &c.Path,
			Hash:       &c.AcceptableHashes,
		})
	}

	wire := payloadWire{
		Minecraft:           &desc.PrimaryVersion,
		MinecraftCompatible: &compatible,
		Loader:              &desc.Loader,
		Post:                json.RawMessage("null"),
		Hashes:              &hashes,
	}
	if desc.AnnouncementPost != nil {
		post, err := json.Marshal(*desc.AnnouncementPost)
		if err != nil {
			return "", goerr.Wrap(err, "failed to marshal announcement post")
		}
		wire.Post = post
	}

	data, err := json.Marshal(&wire)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal payload")
	}
	if strings.Contains(string(data), markerClose) {
		// A raw ') inside the JSON would terminate the marker early and
		// corrupt the visible body.
		return "", goerr.New("payload JSON would contain the marker terminator")
	}

	return markerPrefix + string(data) + markerClose, nil
}
