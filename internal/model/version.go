package model

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a validated semantic version. The zero value is invalid;
// construct one through ParseVersion, which fails on anything that does not
// satisfy the full major.minor.patch grammar instead of producing a partial
// value.
type Version struct {
	raw string
}

// ParseVersion validates s as a semantic version with a full
// major.minor.patch core and optional pre-release/build metadata. Empty
// strings, strings with surrounding whitespace, and shortened forms such as
// "1.2" are rejected with ErrMalformedVersion. A leading "v" is accepted
// and stripped from the canonical form.
func ParseVersion(s string) (Version, error) {
	if s == "" || s != strings.TrimSpace(s) {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	norm := s
	if !strings.HasPrefix(norm, "v") {
		norm = "v" + norm
	}
	if !semver.IsValid(norm) {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	// The semver package accepts shortened forms like v1 and v1.2; the
	// backend naming convention requires all three core components.
	core := norm
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	if strings.Count(core, ".") != 2 {
		return Version{}, fmt.Errorf("%w: %q lacks a full major.minor.patch core", ErrMalformedVersion, s)
	}
	return Version{raw: strings.TrimPrefix(norm, "v")}, nil
}

// String returns the canonical version without a leading "v".
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the invalid zero value.
func (v Version) IsZero() bool { return v.raw == "" }

// Compare orders two versions per semantic version precedence. Build
// metadata is ignored, as the grammar requires.
func (v Version) Compare(o Version) int {
	return semver.Compare("v"+v.raw, "v"+o.raw)
}
