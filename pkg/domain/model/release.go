package model

// RawRelease is one release record as supplied by the release-hosting API.
// Fields are pointers so a missing key can be told apart from an empty
// value; DecodeRelease rejects records with any field absent.
type RawRelease struct {
	URL         *string `json:"url"`
	Tag         *string `json:"tag"`
	Title       *string `json:"title"`
	PublishedAt *string `json:"publishedAt"`
	Prerelease  *bool   `json:"prerelease"`
	Body        *string `json:"body"`
}

// Release is one decoded release: the visible fields passed through
// verbatim, the changelog body with the embedded payload stripped, and the
// compatibility descriptor decoded from that payload. A Release is never
// mutated after construction.
type Release struct {
	URL         string `json:"url"`
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Prerelease  bool   `json:"prerelease"`

	// Body is the visible changelog text. When a payload marker was found,
	// its whole span is removed, whether or not the payload itself decoded.
	Body string `json:"body"`

	// Compat is nil when the body carries no embedded payload, or when the
	// payload failed to decode. It is never partially populated.
	Compat *CompatibilityDescriptor `json:"compatibility,omitempty"`
}
