package model

import "errors"

// Sentinel errors for the release pipeline. Callers match with errors.Is;
// every return site wraps these with enough context (kind, version, URL, or
// archive entry) to diagnose without re-running.
var (
	// ErrMalformedVersion reports an input or resolved string that fails
	// the semantic version grammar.
	ErrMalformedVersion = errors.New("malformed semantic version")

	// ErrVersionLookupFailed reports that the external latest-version
	// collaborator could not answer.
	ErrVersionLookupFailed = errors.New("latest version lookup failed")

	// ErrUnsupportedPlatform reports that no artifact is published for the
	// requested (kind, platform) pair.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrArtifactNotFound reports a client-error status for a constructed
	// URL, which indicates a locator or version mismatch rather than a
	// transient failure.
	ErrArtifactNotFound = errors.New("release artifact not found")

	// ErrDownloadIncomplete reports a transient failure that exhausted
	// retries, or a stream that ended before the declared length.
	ErrDownloadIncomplete = errors.New("download incomplete")

	// ErrDestinationNotFound reports a download or extraction destination
	// directory that does not exist.
	ErrDestinationNotFound = errors.New("destination directory not found")

	// ErrUnsupportedArchiveFormat reports an archive extension that does
	// not match a known format.
	ErrUnsupportedArchiveFormat = errors.New("unsupported archive format")

	// ErrUnsafeArchiveEntry reports an archive entry whose path would
	// escape the destination directory.
	ErrUnsafeArchiveEntry = errors.New("unsafe archive entry")
)
