package locator

import (
	"errors"
	"testing"

	"github.com/driftnet-io/drift-releases/internal/model"
)

func mustVersion(t *testing.T, s string) model.Version {
	t.Helper()
	v, err := model.ParseVersion(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLocateGoldenURLs(t *testing.T) {
	t.Parallel()

	l := New()
	tests := []struct {
		name     string
		kind     model.ReleaseKind
		version  string
		platform model.Platform
		archive  model.ArchiveType
		wantURL  string
	}{
		{
			name:     "cli on bucket",
			kind:     model.KindDrift,
			version:  "0.1.6",
			platform: model.PlatformLinuxMusl,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://drift-cli.s3.eu-west-2.amazonaws.com/drift-0.1.6-x86_64-unknown-linux-musl.tar.gz",
		},
		{
			name:     "node on bucket",
			kind:     model.KindDriftNode,
			version:  "0.112.7",
			platform: model.PlatformLinuxMuslAarch64,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://drift-node.s3.eu-west-2.amazonaws.com/driftnode-0.112.7-aarch64-unknown-linux-musl.tar.gz",
		},
		{
			name:     "node glibc build",
			kind:     model.KindDriftNode,
			version:  "0.112.7",
			platform: model.PlatformLinuxGnu,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://drift-node.s3.eu-west-2.amazonaws.com/driftnode-0.112.7-x86_64-unknown-linux-gnu.tar.gz",
		},
		{
			name:     "ctl on bucket as zip",
			kind:     model.KindDriftCtl,
			version:  "0.11.4",
			platform: model.PlatformWindows,
			archive:  model.ArchiveZip,
			wantURL:  "https://drift-ctl.s3.eu-west-2.amazonaws.com/driftctl-0.11.4-x86_64-pc-windows-msvc.zip",
		},
		{
			name:     "ctl daemon pre-release",
			kind:     model.KindDriftCtlDaemon,
			version:  "0.11.4-rc.1",
			platform: model.PlatformMacOS,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://drift-ctld.s3.eu-west-2.amazonaws.com/driftctld-0.11.4-rc.1-x86_64-apple-darwin.tar.gz",
		},
		{
			name:     "rpc client arm",
			kind:     model.KindNodeRPCClient,
			version:  "0.6.37",
			platform: model.PlatformLinuxMuslArmV7,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://drift-node-rpc-client.s3.eu-west-2.amazonaws.com/driftnode_rpc_client-0.6.37-armv7-unknown-linux-musleabihf.tar.gz",
		},
		{
			name:     "auditor on release page",
			kind:     model.KindAuditor,
			version:  "0.3.5",
			platform: model.PlatformMacOSAarch64,
			archive:  model.ArchiveTarGz,
			wantURL:  "https://github.com/driftnet-io/drift-auditor/releases/download/v0.3.5/drift-auditor-0.3.5-aarch64-apple-darwin.tar.gz",
		},
		{
			name:     "launchpad on release page as zip",
			kind:     model.KindNodeLaunchpad,
			version:  "0.4.6",
			platform: model.PlatformWindows,
			archive:  model.ArchiveZip,
			wantURL:  "https://github.com/driftnet-io/node-launchpad/releases/download/v0.4.6/node-launchpad-0.4.6-x86_64-pc-windows-msvc.zip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := l.Locate(tt.kind, mustVersion(t, tt.version), tt.platform, tt.archive)
			if err != nil {
				t.Fatalf("Locate: %v", err)
			}
			if target.URL != tt.wantURL {
				t.Errorf("URL\n got %s\nwant %s", target.URL, tt.wantURL)
			}
			wantName := tt.kind.Name() + "-" + tt.version + "-" + string(tt.platform) + tt.archive.Ext()
			if target.Filename != wantName {
				t.Errorf("Filename = %q, want %q", target.Filename, wantName)
			}
		})
	}
}

func TestLocateAllSupportedPairs(t *testing.T) {
	t.Parallel()

	l := New()
	v := mustVersion(t, "1.0.0")
	for _, kind := range model.Kinds() {
		for _, platform := range model.Platforms() {
			for _, at := range []model.ArchiveType{model.ArchiveTarGz, model.ArchiveZip} {
				target, err := l.Locate(kind, v, platform, at)
				if SupportsPlatform(kind, platform) {
					if err != nil {
						t.Errorf("Locate(%s, %s, %s): %v", kind, platform, at, err)
						continue
					}
					if target.URL == "" || target.Filename == "" {
						t.Errorf("Locate(%s, %s, %s) returned empty target", kind, platform, at)
					}
				} else if !errors.Is(err, model.ErrUnsupportedPlatform) {
					t.Errorf("Locate(%s, %s, %s) err = %v, want ErrUnsupportedPlatform", kind, platform, at, err)
				}
			}
		}
	}
}

func TestLocateUnsupportedPlatforms(t *testing.T) {
	t.Parallel()

	l := New()
	v := mustVersion(t, "1.0.0")
	tests := []struct {
		kind     model.ReleaseKind
		platform model.Platform
	}{
		{model.KindAuditor, model.PlatformLinuxGnu},
		{model.KindAuditor, model.PlatformLinuxMuslArm},
		{model.KindAuditor, model.PlatformLinuxMuslArmV7},
		{model.KindNodeLaunchpad, model.PlatformLinuxGnu},
		{model.KindNodeLaunchpad, model.PlatformLinuxMuslArm},
		{model.KindNodeLaunchpad, model.PlatformLinuxMuslArmV7},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.platform), func(t *testing.T) {
			_, err := l.Locate(tt.kind, v, tt.platform, model.ArchiveTarGz)
			if !errors.Is(err, model.ErrUnsupportedPlatform) {
				t.Fatalf("err = %v, want ErrUnsupportedPlatform", err)
			}
		})
	}
}

func TestLocateBaseOverride(t *testing.T) {
	t.Parallel()

	l := New()
	l.SetBucketBase(model.KindDriftNode, "http://127.0.0.1:9999")
	l.SetRepoBase(model.KindAuditor, "http://127.0.0.1:9999/auditor")
	v := mustVersion(t, "1.0.0")

	target, err := l.Locate(model.KindDriftNode, v, model.PlatformLinuxMusl, model.ArchiveTarGz)
	if err != nil {
		t.Fatal(err)
	}
	want := "http://127.0.0.1:9999/driftnode-1.0.0-x86_64-unknown-linux-musl.tar.gz"
	if target.URL != want {
		t.Errorf("URL = %s, want %s", target.URL, want)
	}

	target, err = l.Locate(model.KindAuditor, v, model.PlatformLinuxMusl, model.ArchiveTarGz)
	if err != nil {
		t.Fatal(err)
	}
	want = "http://127.0.0.1:9999/auditor/releases/download/v1.0.0/drift-auditor-1.0.0-x86_64-unknown-linux-musl.tar.gz"
	if target.URL != want {
		t.Errorf("URL = %s, want %s", target.URL, want)
	}
}
