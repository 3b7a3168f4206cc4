// Package locator resolves a logical release identity into the concrete
// backend URL that hosts the artifact. It is pure: no I/O, no probing.
package locator

import (
	"fmt"

	"github.com/driftnet-io/drift-releases/internal/model"
)

// Default backend bases. Most kinds are flat objects in a per-binary S3
// bucket; the auditor and launchpad are attached as assets on tagged GitHub
// release pages.
const (
	DriftCLIBucketURL      = "https://drift-cli.s3.eu-west-2.amazonaws.com"
	DriftNodeBucketURL     = "https://drift-node.s3.eu-west-2.amazonaws.com"
	DriftCtlBucketURL      = "https://drift-ctl.s3.eu-west-2.amazonaws.com"
	DriftCtlDaemonBucket   = "https://drift-ctld.s3.eu-west-2.amazonaws.com"
	NodeRPCClientBucketURL = "https://drift-node-rpc-client.s3.eu-west-2.amazonaws.com"
	AuditorRepoURL         = "https://github.com/driftnet-io/drift-auditor"
	NodeLaunchpadRepoURL   = "https://github.com/driftnet-io/node-launchpad"
)

// restrictedPlatforms gates kinds that are not published for every target.
// The auditor and launchpad terminal UIs only ship for the mainstream
// desktop triples. This is a compile-time table, never discovered by
// probing the network.
var restrictedPlatforms = map[model.ReleaseKind]map[model.Platform]bool{
	model.KindAuditor: {
		model.PlatformLinuxMusl:        true,
		model.PlatformLinuxMuslAarch64: true,
		model.PlatformMacOS:            true,
		model.PlatformMacOSAarch64:     true,
		model.PlatformWindows:          true,
	},
	model.KindNodeLaunchpad: {
		model.PlatformLinuxMusl:        true,
		model.PlatformLinuxMuslAarch64: true,
		model.PlatformMacOS:            true,
		model.PlatformMacOSAarch64:     true,
		model.PlatformWindows:          true,
	},
}

// Locator builds download targets from the static kind-to-backend tables.
// Base URLs are overridable so tests can point at local fixtures.
type Locator struct {
	bucketBases map[model.ReleaseKind]string
	repoBases   map[model.ReleaseKind]string
}

// New returns a Locator configured for the production backends.
func New() *Locator {
	return &Locator{
		bucketBases: map[model.ReleaseKind]string{
			model.KindDrift:          DriftCLIBucketURL,
			model.KindDriftNode:      DriftNodeBucketURL,
			model.KindDriftCtl:       DriftCtlBucketURL,
			model.KindDriftCtlDaemon: DriftCtlDaemonBucket,
			model.KindNodeRPCClient:  NodeRPCClientBucketURL,
		},
		repoBases: map[model.ReleaseKind]string{
			model.KindAuditor:       AuditorRepoURL,
			model.KindNodeLaunchpad: NodeLaunchpadRepoURL,
		},
	}
}

// SetBucketBase overrides the object-storage base URL for a bucket-hosted
// kind. Unknown kinds are ignored.
func (l *Locator) SetBucketBase(kind model.ReleaseKind, base string) {
	if _, ok := l.bucketBases[kind]; ok {
		l.bucketBases[kind] = base
	}
}

// SetRepoBase overrides the release-page base URL for a repo-hosted kind.
// Unknown kinds are ignored.
func (l *Locator) SetRepoBase(kind model.ReleaseKind, base string) {
	if _, ok := l.repoBases[kind]; ok {
		l.repoBases[kind] = base
	}
}

// SupportsPlatform reports whether an artifact is published for the
// (kind, platform) pair.
func SupportsPlatform(kind model.ReleaseKind, platform model.Platform) bool {
	if allowed, ok := restrictedPlatforms[kind]; ok {
		return allowed[platform]
	}
	return true
}

// Locate resolves (kind, version, platform, archive) into the backend URL
// and suggested local file name, following each backend's naming
// convention: {name}-{version}-{triple}.{ext}.
func (l *Locator) Locate(kind model.ReleaseKind, version model.Version, platform model.Platform, archive model.ArchiveType) (model.DownloadTarget, error) {
	if !SupportsPlatform(kind, platform) {
		return model.DownloadTarget{}, fmt.Errorf("%w: no %s artifact is published for %s", model.ErrUnsupportedPlatform, kind.Name(), platform)
	}

	filename := fmt.Sprintf("%s-%s-%s%s", kind.Name(), version, platform, archive.Ext())

	if base, ok := l.bucketBases[kind]; ok {
		return model.DownloadTarget{
			URL:      fmt.Sprintf("%s/%s", base, filename),
			Filename: filename,
		}, nil
	}
	if base, ok := l.repoBases[kind]; ok {
		return model.DownloadTarget{
			URL:      fmt.Sprintf("%s/releases/download/v%s/%s", base, version, filename),
			Filename: filename,
		}, nil
	}
	return model.DownloadTarget{}, fmt.Errorf("no backend is registered for release kind %q", kind)
}
