// Package github answers "what is the latest published version" for a
// release kind by querying the GitHub releases API of the repo that hosts
// it.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/driftnet-io/drift-releases/internal/model"
)

const DefaultAPIBase = "https://api.github.com"

const defaultOrg = "driftnet-io"

// repoFor maps each kind to the repository whose releases carry its tags.
// Bucket-hosted binaries are released out of the drift monorepo with
// per-binary tag prefixes; the auditor and launchpad have repos of their
// own.
var repoFor = map[model.ReleaseKind]string{
	model.KindDrift:          "drift",
	model.KindDriftNode:      "drift",
	model.KindDriftCtl:       "drift",
	model.KindDriftCtlDaemon: "drift",
	model.KindNodeRPCClient:  "drift",
	model.KindAuditor:        "drift-auditor",
	model.KindNodeLaunchpad:  "node-launchpad",
}

// TokenFromEnv returns an API token for authenticated requests, if one is
// set. Unauthenticated requests work but are rate limited harder.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("DRIFT_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// UserAgent identifies this library to the API, which rejects anonymous
// user agents.
func UserAgent() string { return "drift-releases" }

// Client queries the GitHub releases API. The zero value is not usable;
// call New.
type Client struct {
	APIBase string
	Org     string
	HTTP    *http.Client
}

// New returns a Client for the production API.
func New() *Client {
	return &Client{
		APIBase: DefaultAPIBase,
		Org:     defaultOrg,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type releasePayload struct {
	TagName string `json:"tag_name"`
}

// LatestVersion returns the version string of the most recent release for
// the kind. The tag's kind prefix and "v" are stripped; the caller is
// responsible for semantic version validation.
func (c *Client) LatestVersion(ctx context.Context, kind model.ReleaseKind) (string, error) {
	repo, ok := repoFor[kind]
	if !ok {
		return "", fmt.Errorf("%w: no repository is registered for kind %q", model.ErrVersionLookupFailed, kind)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.APIBase, c.Org, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrVersionLookupFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent())
	if tok := TokenFromEnv(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrVersionLookupFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d from %s: %s", model.ErrVersionLookupFailed, resp.StatusCode, url, strings.TrimSpace(string(body)))
	}

	var rel releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", fmt.Errorf("%w: decoding release for %s: %v", model.ErrVersionLookupFailed, kind, err)
	}
	if rel.TagName == "" {
		return "", fmt.Errorf("%w: release for %s has no tag name", model.ErrVersionLookupFailed, kind)
	}

	return versionFromTag(kind, rel.TagName), nil
}

// versionFromTag strips the monorepo tag prefix ({name}-v1.2.3) or the
// plain v prefix (v1.2.3) from a release tag.
func versionFromTag(kind model.ReleaseKind, tag string) string {
	tag = strings.TrimPrefix(tag, kind.Name()+"-")
	return strings.TrimPrefix(tag, "v")
}
