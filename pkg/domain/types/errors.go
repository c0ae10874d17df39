package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify decode failures so callers can branch on the failure
// class instead of matching message strings.
var (
	// TagRecordMalformed marks a raw release record missing a required
	// visible field. Fatal for that record: no Release is produced.
	TagRecordMalformed = goerr.NewTag("record_malformed")

	// TagPayloadMalformed marks an embedded payload that was located but
	// could not be decoded. The Release itself is still produced, with the
	// marker stripped and no compatibility descriptor attached.
	TagPayloadMalformed = goerr.NewTag("payload_malformed")
)

// ErrResourceNotFound is returned by ResourceReader implementations when the
// named resource does not exist. The verifier reports it as an unreadable
// file rather than a hash mismatch.
var ErrResourceNotFound = goerr.New("resource not found")
