package releases

import "github.com/driftnet-io/drift-releases/internal/model"

type ReleaseKind = model.ReleaseKind

const (
	KindDrift          = model.KindDrift
	KindDriftNode      = model.KindDriftNode
	KindDriftCtl       = model.KindDriftCtl
	KindDriftCtlDaemon = model.KindDriftCtlDaemon
	KindNodeRPCClient  = model.KindNodeRPCClient
	KindAuditor        = model.KindAuditor
	KindNodeLaunchpad  = model.KindNodeLaunchpad
)

type Platform = model.Platform

const (
	PlatformLinuxGnu         = model.PlatformLinuxGnu
	PlatformLinuxMusl        = model.PlatformLinuxMusl
	PlatformLinuxMuslAarch64 = model.PlatformLinuxMuslAarch64
	PlatformLinuxMuslArm     = model.PlatformLinuxMuslArm
	PlatformLinuxMuslArmV7   = model.PlatformLinuxMuslArmV7
	PlatformMacOS            = model.PlatformMacOS
	PlatformMacOSAarch64     = model.PlatformMacOSAarch64
	PlatformWindows          = model.PlatformWindows
)

type ArchiveType = model.ArchiveType

const (
	ArchiveTarGz = model.ArchiveTarGz
	ArchiveZip   = model.ArchiveZip
)

type Version = model.Version

type DownloadTarget = model.DownloadTarget

type ProgressFunc = model.ProgressFunc

// Kinds lists every release kind, in a stable order.
func Kinds() []ReleaseKind { return model.Kinds() }

// Platforms lists every supported target triple, in a stable order.
func Platforms() []Platform { return model.Platforms() }

// ParseVersion validates s as a full major.minor.patch semantic version
// with optional pre-release/build metadata.
func ParseVersion(s string) (Version, error) { return model.ParseVersion(s) }

// CurrentPlatform maps the running OS and architecture to the target triple
// the project publishes for it.
func CurrentPlatform() (Platform, error) { return model.CurrentPlatform() }
