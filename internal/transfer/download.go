// Package transfer streams release artifacts from a resolved URL to disk,
// reporting progress and retrying transient failures.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/driftnet-io/drift-releases/internal/model"
)

// chunkSize is the read granularity: artifacts are written to disk chunk by
// chunk, never buffered whole in memory, and the progress callback fires
// after each chunk.
const chunkSize = 32 * 1024

// Downloader streams URLs into caller-owned directories. Each Download call
// is independent; the Downloader holds no per-call state, so one instance
// is safe to share across goroutines.
type Downloader struct {
	HTTP *http.Client

	// MaxRetries bounds retries of connection-level failures; the first
	// attempt does not count.
	MaxRetries uint64

	// InitialInterval seeds the exponential backoff between retries.
	InitialInterval time.Duration
}

// New returns a Downloader with production retry settings. No overall
// request timeout is set: large artifacts take as long as they take, and
// the caller's context bounds the download.
func New() *Downloader {
	return &Downloader{
		HTTP:            &http.Client{},
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
	}
}

// Download streams the body at rawURL into destDir, naming the file after
// the URL's final path segment, and returns the file's path. destDir must
// already exist. Cancellation is cooperative: ctx is checked between
// chunks, and a canceled download leaves no partial file behind. Connection
// failures and 5xx responses are retried with backoff up to MaxRetries;
// 4xx responses fail immediately with ErrArtifactNotFound.
func (d *Downloader) Download(ctx context.Context, rawURL, destDir string, progress model.ProgressFunc) (string, error) {
	info, err := os.Stat(destDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", model.ErrDestinationNotFound, destDir)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %s: %w", rawURL, err)
	}
	filename := path.Base(u.Path)
	if filename == "" || filename == "." || filename == "/" {
		return "", fmt.Errorf("cannot derive a file name from url %s", rawURL)
	}
	destPath := filepath.Join(destDir, filename)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.InitialInterval

	err = backoff.Retry(func() error {
		return d.fetch(ctx, rawURL, destPath, progress)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, d.MaxRetries), ctx))
	if err != nil {
		if errors.Is(err, model.ErrArtifactNotFound) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %v", model.ErrDownloadIncomplete, rawURL, err)
	}
	return destPath, nil
}

// fetch performs one download attempt. Any partially written file is
// removed before an error is returned, so a retry always starts clean and
// callers never observe a truncated artifact.
func (d *Downloader) fetch(ctx context.Context, rawURL, destPath string, progress model.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building request for %s: %w", rawURL, err))
	}

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// A client error means the locator or version is wrong, not that
		// the backend hiccupped. Retrying would produce the same answer.
		return backoff.Permanent(fmt.Errorf("%w: status %d from %s", model.ErrArtifactNotFound, resp.StatusCode, rawURL))
	default:
		return fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
	}

	var total uint64
	if resp.ContentLength > 0 {
		total = uint64(resp.ContentLength)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating %s: %w", destPath, err))
	}

	discard := func() {
		out.Close()
		os.Remove(destPath)
	}

	var written uint64
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			discard()
			return backoff.Permanent(err)
		}
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				discard()
				return backoff.Permanent(fmt.Errorf("writing %s: %w", destPath, werr))
			}
			written += uint64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			discard()
			return fmt.Errorf("reading %s: %w", rawURL, rerr)
		}
	}

	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return backoff.Permanent(fmt.Errorf("closing %s: %w", destPath, err))
	}
	if total > 0 && written < total {
		os.Remove(destPath)
		return fmt.Errorf("stream from %s ended after %d of %d bytes", rawURL, written, total)
	}
	return nil
}
