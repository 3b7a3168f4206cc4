// Package releases locates, downloads, and extracts versioned release
// artifacts for the Drift network binaries, which are published across S3
// buckets and GitHub release pages.
//
// Each operation is a single logical call with no shared mutable state: a
// ReleaseRepo is safe to use from multiple goroutines as long as concurrent
// calls do not target the same destination directory. Destination
// directories and the files created under them belong to the caller; the
// library only ever creates new files, never deletes caller paths.
package releases

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/driftnet-io/drift-releases/internal/archive"
	"github.com/driftnet-io/drift-releases/internal/host/github"
	"github.com/driftnet-io/drift-releases/internal/host/registry"
	"github.com/driftnet-io/drift-releases/internal/locator"
	"github.com/driftnet-io/drift-releases/internal/model"
	"github.com/driftnet-io/drift-releases/internal/transfer"
)

// LatestVersionSpec is the version spec sentinel that resolves to the most
// recently published version via the VersionLookup collaborator.
const LatestVersionSpec = "latest"

// VersionLookup answers "what is the latest published version" for a
// release kind. The returned string is validated by the caller.
type VersionLookup interface {
	LatestVersion(ctx context.Context, kind ReleaseKind) (string, error)
}

// GitHubVersionLookup returns the default lookup, which queries the GitHub
// releases API of the repo hosting each kind. New uses it unless
// WithVersionLookup overrides it.
func GitHubVersionLookup() VersionLookup { return github.New() }

// RegistryVersionLookup returns a lookup backed by the package registry the
// binaries are published to. Useful when GitHub API rate limits bite.
func RegistryVersionLookup() VersionLookup { return registry.New() }

// ReleaseRepo is the single seam for consumers: installers, CI pipelines,
// and test harnesses either use the production implementation from New or
// substitute a hand-written stub. The operations compose into a pipeline
// (resolve, locate, download, extract) but each is independently usable.
type ReleaseRepo interface {
	// ResolveVersion turns a version spec into a validated Version. The
	// spec is either a concrete semantic version string, parsed locally
	// with no network call, or LatestVersionSpec, which consults the
	// VersionLookup collaborator exactly once.
	ResolveVersion(ctx context.Context, kind ReleaseKind, spec string) (Version, error)

	// Locate resolves (kind, version, platform, archive) into the backend
	// URL and suggested file name. Pure: no I/O.
	Locate(kind ReleaseKind, version Version, platform Platform, archive ArchiveType) (DownloadTarget, error)

	// DownloadArchive locates the artifact and downloads it into destDir,
	// returning the archive's path.
	DownloadArchive(ctx context.Context, kind ReleaseKind, version Version, platform Platform, archive ArchiveType, destDir string, progress ProgressFunc) (string, error)

	// Download streams url into destDir, naming the file after the URL's
	// final path segment, and returns the file's path. The progress
	// callback runs synchronously on the download path and receives a
	// total of 0 when the server declares no content length.
	Download(ctx context.Context, url, destDir string, progress ProgressFunc) (string, error)

	// Extract unpacks the archive into destDir and returns destDir, which
	// holds the flat binaries the archive expands to.
	Extract(archivePath, destDir string) (string, error)
}

type repo struct {
	lookup     VersionLookup
	locator    *locator.Locator
	downloader *transfer.Downloader
}

// Option adjusts the production ReleaseRepo built by New.
type Option func(*repo)

// WithVersionLookup substitutes the latest-version collaborator.
func WithVersionLookup(l VersionLookup) Option {
	return func(r *repo) { r.lookup = l }
}

// WithHTTPClient substitutes the client used for artifact downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(r *repo) { r.downloader.HTTP = c }
}

// WithBucketBase overrides the object-storage base URL for a bucket-hosted
// kind.
func WithBucketBase(kind ReleaseKind, base string) Option {
	return func(r *repo) { r.locator.SetBucketBase(kind, base) }
}

// WithReleasePageBase overrides the release-page base URL for a repo-hosted
// kind.
func WithReleasePageBase(kind ReleaseKind, base string) Option {
	return func(r *repo) { r.locator.SetRepoBase(kind, base) }
}

// WithMaxRetries bounds download retries of transient failures.
func WithMaxRetries(n uint64) Option {
	return func(r *repo) { r.downloader.MaxRetries = n }
}

// WithRetryInterval seeds the backoff delay between download retries.
func WithRetryInterval(d time.Duration) Option {
	return func(r *repo) { r.downloader.InitialInterval = d }
}

// New returns a ReleaseRepo wired to the production backends. Options
// override individual collaborators, mostly for tests.
func New(opts ...Option) ReleaseRepo {
	r := &repo{
		lookup:     github.New(),
		locator:    locator.New(),
		downloader: transfer.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repo) ResolveVersion(ctx context.Context, kind ReleaseKind, spec string) (Version, error) {
	if spec != LatestVersionSpec {
		v, err := model.ParseVersion(spec)
		if err != nil {
			return Version{}, fmt.Errorf("version spec for %s: %w", kind.Name(), err)
		}
		return v, nil
	}

	latest, err := r.lookup.LatestVersion(ctx, kind)
	if err != nil {
		return Version{}, fmt.Errorf("resolving latest %s: %w", kind.Name(), err)
	}
	v, err := model.ParseVersion(latest)
	if err != nil {
		// The collaborator answered, but with something unusable; this is
		// a MalformedVersion, not a lookup failure.
		return Version{}, fmt.Errorf("latest version reported for %s: %w", kind.Name(), err)
	}
	return v, nil
}

func (r *repo) Locate(kind ReleaseKind, version Version, platform Platform, archiveType ArchiveType) (DownloadTarget, error) {
	return r.locator.Locate(kind, version, platform, archiveType)
}

func (r *repo) DownloadArchive(ctx context.Context, kind ReleaseKind, version Version, platform Platform, archiveType ArchiveType, destDir string, progress ProgressFunc) (string, error) {
	target, err := r.locator.Locate(kind, version, platform, archiveType)
	if err != nil {
		return "", err
	}
	return r.downloader.Download(ctx, target.URL, destDir, progress)
}

func (r *repo) Download(ctx context.Context, url, destDir string, progress ProgressFunc) (string, error) {
	return r.downloader.Download(ctx, url, destDir, progress)
}

func (r *repo) Extract(archivePath, destDir string) (string, error) {
	return archive.Extract(archivePath, destDir)
}
