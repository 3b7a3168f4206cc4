package releases_test

import (
	"context"
	"fmt"
	"log"

	"github.com/driftnet-io/drift-releases"
)

func Example() {
	repo := releases.New()
	ctx := context.Background()

	version, err := repo.ResolveVersion(ctx, releases.KindDriftNode, releases.LatestVersionSpec)
	if err != nil {
		log.Fatal(err)
	}

	platform, err := releases.CurrentPlatform()
	if err != nil {
		log.Fatal(err)
	}

	archivePath, err := repo.DownloadArchive(ctx, releases.KindDriftNode, version,
		platform, releases.ArchiveTarGz, "/tmp/downloads",
		func(downloaded, total uint64) {
			fmt.Printf("\r%d of %d bytes", downloaded, total)
		})
	if err != nil {
		log.Fatal(err)
	}

	binDir, err := repo.Extract(archivePath, "/tmp/bin")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("installed under", binDir)
}

func ExampleReleaseRepo_locate() {
	repo := releases.New()

	version, err := releases.ParseVersion("0.112.7")
	if err != nil {
		log.Fatal(err)
	}

	target, err := repo.Locate(releases.KindDriftNode, version,
		releases.PlatformLinuxMusl, releases.ArchiveTarGz)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(target.URL)
	// Output: https://drift-node.s3.eu-west-2.amazonaws.com/driftnode-0.112.7-x86_64-unknown-linux-musl.tar.gz
}
