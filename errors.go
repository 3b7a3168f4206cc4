package releases

import "github.com/driftnet-io/drift-releases/internal/model"

// Error kinds returned by the release pipeline. Match with errors.Is;
// wrapped messages carry the kind, version, platform, URL, or archive entry
// involved.
var (
	ErrMalformedVersion         = model.ErrMalformedVersion
	ErrVersionLookupFailed      = model.ErrVersionLookupFailed
	ErrUnsupportedPlatform      = model.ErrUnsupportedPlatform
	ErrArtifactNotFound         = model.ErrArtifactNotFound
	ErrDownloadIncomplete       = model.ErrDownloadIncomplete
	ErrDestinationNotFound      = model.ErrDestinationNotFound
	ErrUnsupportedArchiveFormat = model.ErrUnsupportedArchiveFormat
	ErrUnsafeArchiveEntry       = model.ErrUnsafeArchiveEntry
)
