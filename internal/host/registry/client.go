// Package registry answers "what is the latest published version" for a
// release kind by querying the package registry the binaries are published
// to.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/driftnet-io/drift-releases/internal/model"
)

const DefaultBaseURL = "https://crates.io"

// packageFor maps each kind to its registry package name.
var packageFor = map[model.ReleaseKind]string{
	model.KindDrift:          "drift_cli",
	model.KindDriftNode:      "drift_node",
	model.KindDriftCtl:       "driftctl",
	model.KindDriftCtlDaemon: "driftctld",
	model.KindNodeRPCClient:  "drift_node_rpc_client",
	model.KindAuditor:        "drift_auditor",
	model.KindNodeLaunchpad:  "node-launchpad",
}

// Client queries the package registry API. The zero value is not usable;
// call New.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for the production registry.
func New() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type cratePayload struct {
	Crate struct {
		MaxStableVersion string `json:"max_stable_version"`
		NewestVersion    string `json:"newest_version"`
	} `json:"crate"`
}

// LatestVersion returns the newest stable version string published for the
// kind, falling back to the newest version when no stable release exists.
// The caller is responsible for semantic version validation.
func (c *Client) LatestVersion(ctx context.Context, kind model.ReleaseKind) (string, error) {
	pkg, ok := packageFor[kind]
	if !ok {
		return "", fmt.Errorf("%w: no registry package is registered for kind %q", model.ErrVersionLookupFailed, kind)
	}

	url := fmt.Sprintf("%s/api/v1/crates/%s", c.BaseURL, pkg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrVersionLookupFailed, err)
	}
	// The registry rejects requests without an identifying user agent.
	req.Header.Set("User-Agent", "drift-releases")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrVersionLookupFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d from %s: %s", model.ErrVersionLookupFailed, resp.StatusCode, url, strings.TrimSpace(string(body)))
	}

	var payload cratePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding registry response for %s: %v", model.ErrVersionLookupFailed, pkg, err)
	}

	version := payload.Crate.MaxStableVersion
	if version == "" {
		version = payload.Crate.NewestVersion
	}
	if version == "" {
		return "", fmt.Errorf("%w: registry lists no versions for %s", model.ErrVersionLookupFailed, pkg)
	}
	return version, nil
}
