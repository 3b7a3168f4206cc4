package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driftnet-io/drift-releases/internal/model"
)

func newTestClient(ts *httptest.Server) *Client {
	c := New()
	c.APIBase = ts.URL
	c.HTTP = ts.Client()
	return c
}

func TestLatestVersion(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.ReleaseKind
		path     string
		tag      string
		want     string
	}{
		{
			name: "monorepo kind with prefixed tag",
			kind: model.KindDriftNode,
			path: "/repos/driftnet-io/drift/releases/latest",
			tag:  "driftnode-v0.112.7",
			want: "0.112.7",
		},
		{
			name: "own repo with plain tag",
			kind: model.KindAuditor,
			path: "/repos/driftnet-io/drift-auditor/releases/latest",
			tag:  "v0.3.5",
			want: "0.3.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				if r.Header.Get("User-Agent") != UserAgent() {
					t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"tag_name":"` + tt.tag + `"}`))
			}))
			defer ts.Close()

			got, err := newTestClient(ts).LatestVersion(context.Background(), tt.kind)
			if err != nil {
				t.Fatalf("LatestVersion: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestVersion = %q, want %q", got, tt.want)
			}
			if gotPath != tt.path {
				t.Errorf("request path = %q, want %q", gotPath, tt.path)
			}
		})
	}
}

func TestLatestVersionFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Not Found"}`},
		{name: "empty tag", status: http.StatusOK, body: `{"tag_name":""}`},
		{name: "invalid json", status: http.StatusOK, body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newTestClient(ts).LatestVersion(context.Background(), model.KindDrift)
			if !errors.Is(err, model.ErrVersionLookupFailed) {
				t.Fatalf("err = %v, want ErrVersionLookupFailed", err)
			}
		})
	}
}

func TestVersionFromTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind model.ReleaseKind
		tag  string
		want string
	}{
		{model.KindDriftNode, "driftnode-v0.112.7", "0.112.7"},
		{model.KindDriftNode, "v0.112.7", "0.112.7"},
		{model.KindDrift, "0.1.6", "0.1.6"},
	}
	for _, tt := range tests {
		if got := versionFromTag(tt.kind, tt.tag); got != tt.want {
			t.Errorf("versionFromTag(%s, %q) = %q, want %q", tt.kind, tt.tag, got, tt.want)
		}
	}
}
