package model

import (
	"fmt"
	"runtime"
)

// ReleaseKind identifies one of the released Drift binaries. The string
// value is the canonical name used in archive and object naming.
type ReleaseKind string

const (
	KindDrift          ReleaseKind = "drift"
	KindDriftNode      ReleaseKind = "driftnode"
	KindDriftCtl       ReleaseKind = "driftctl"
	KindDriftCtlDaemon ReleaseKind = "driftctld"
	KindNodeRPCClient  ReleaseKind = "driftnode_rpc_client"
	KindAuditor        ReleaseKind = "drift-auditor"
	KindNodeLaunchpad  ReleaseKind = "node-launchpad"
)

// Kinds lists every release kind, in a stable order.
func Kinds() []ReleaseKind {
	return []ReleaseKind{
		KindDrift,
		KindDriftNode,
		KindDriftCtl,
		KindDriftCtlDaemon,
		KindNodeRPCClient,
		KindAuditor,
		KindNodeLaunchpad,
	}
}

// Name is the canonical artifact name for the kind.
func (k ReleaseKind) Name() string { return string(k) }

// BinaryName is the file name of the binary inside an extracted archive,
// which carries an .exe suffix on Windows targets.
func (k ReleaseKind) BinaryName(p Platform) string {
	if p == PlatformWindows {
		return string(k) + ".exe"
	}
	return string(k)
}

// Platform is one of the (OS, architecture, libc) target triples the
// project publishes binaries for. The string value is the path fragment
// every backend uses in artifact names.
type Platform string

const (
	PlatformLinuxGnu         Platform = "x86_64-unknown-linux-gnu"
	PlatformLinuxMusl        Platform = "x86_64-unknown-linux-musl"
	PlatformLinuxMuslAarch64 Platform = "aarch64-unknown-linux-musl"
	PlatformLinuxMuslArm     Platform = "arm-unknown-linux-musleabi"
	PlatformLinuxMuslArmV7   Platform = "armv7-unknown-linux-musleabihf"
	PlatformMacOS            Platform = "x86_64-apple-darwin"
	PlatformMacOSAarch64     Platform = "aarch64-apple-darwin"
	PlatformWindows          Platform = "x86_64-pc-windows-msvc"
)

// Platforms lists every supported target triple, in a stable order.
func Platforms() []Platform {
	return []Platform{
		PlatformLinuxGnu,
		PlatformLinuxMusl,
		PlatformLinuxMuslAarch64,
		PlatformLinuxMuslArm,
		PlatformLinuxMuslArmV7,
		PlatformMacOS,
		PlatformMacOSAarch64,
		PlatformWindows,
	}
}

func (p Platform) String() string { return string(p) }

// ArchiveType selects both the artifact file suffix and the extraction
// strategy.
type ArchiveType string

const (
	ArchiveTarGz ArchiveType = "tar.gz"
	ArchiveZip   ArchiveType = "zip"
)

func (a ArchiveType) String() string { return string(a) }

// Ext is the file suffix for the archive type, including the leading dot.
func (a ArchiveType) Ext() string { return "." + string(a) }

// DownloadTarget is the resolved backend identity for one artifact: the URL
// to fetch and the file name the artifact should be stored under. It is
// computed per call and never persisted.
type DownloadTarget struct {
	URL      string
	Filename string
}

// ProgressFunc receives download progress after each chunk is written.
// total is the declared content length, or 0 when the server did not
// declare one. Callbacks run synchronously on the download path; a slow
// callback slows the download.
type ProgressFunc func(downloaded, total uint64)

// CurrentPlatform maps the running OS and architecture to the target triple
// the project publishes for it. Linux resolves to the musl triples, since
// those are the statically linked binaries that run everywhere.
func CurrentPlatform() (Platform, error) {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) (Platform, error) {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return PlatformLinuxMusl, nil
		case "arm64":
			return PlatformLinuxMuslAarch64, nil
		case "arm":
			return PlatformLinuxMuslArm, nil
		}
	case "darwin":
		switch goarch {
		case "amd64":
			return PlatformMacOS, nil
		case "arm64":
			return PlatformMacOSAarch64, nil
		}
	case "windows":
		if goarch == "amd64" {
			return PlatformWindows, nil
		}
	}
	return "", fmt.Errorf("%w: no binaries are published for %s/%s", ErrUnsupportedPlatform, goos, goarch)
}
