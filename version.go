// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"fmt"
	"regexp"
)

// versionStampSize is the fixed width of the ASCII banner at offset0,
// NUL-padded, matching "Inno Setup Setup Data (X.Y.Z)[(u)]".
const versionStampSize = 64

// versionStampPattern matches the banner per spec.md §6 item 3.
var versionStampPattern = regexp.MustCompile(`^Inno Setup Setup Data \((\d+)\.(\d+)\.(\d+)\)(\(u\))?`)

// Version is the normalized (major, minor, patch, unicode) tuple identified
// from the version stamp. It carries a derived legacy Codepage for
// non-Unicode string decoding and, once identified, is immutable for the
// life of a decode.
type Version struct {
	Major   uint8 `json:"major"`
	Minor   uint8 `json:"minor"`
	Patch   uint8 `json:"patch"`
	Unicode bool  `json:"unicode"`
}

// Codepage returns the legacy codepage implied by this version, used when
// Unicode is false and no more specific (language-level) codepage applies.
func (v Version) Codepage() Codepage {
	return defaultCodepage(v)
}

// String renders the version the way the original banner does, e.g.
// "5.3.10(u)".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Unicode {
		s += "(u)"
	}
	return s
}

// triple returns the ordering key ignoring the Unicode marker.
func (v Version) triple() [3]uint8 {
	return [3]uint8{v.Major, v.Minor, v.Patch}
}

// Less reports whether v sorts strictly before other by (major, minor,
// patch), the total order spec.md §3 requires of Version.
func (v Version) Less(other Version) bool {
	a, b := v.triple(), other.triple()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// AtLeast reports whether v >= other by (major, minor, patch).
func (v Version) AtLeast(other Version) bool {
	return !v.Less(other)
}

// Equal reports whether v and other have the same (major, minor, patch);
// the Unicode marker does not affect equality for version-gated field
// presence, only for string decoding.
func (v Version) Equal(other Version) bool {
	return v.triple() == other.triple()
}

// identifyVersion parses the fixed-width version stamp at the current
// reader position (§4.D). It fails with ErrTruncated on short read and
// ErrUnknownVersion if the parsed triple has no compatibility-matrix entry.
func identifyVersion(r *reader) (Version, error) {
	raw, err := r.ReadFixed(versionStampSize)
	if err != nil {
		return Version{}, fmt.Errorf("version stamp: %w", err)
	}

	banner := raw
	if i := bytes.IndexByte(banner, 0); i >= 0 {
		banner = banner[:i]
	}

	m := versionStampPattern.FindSubmatch(banner)
	if m == nil {
		return Version{}, fmt.Errorf("version stamp %q: %w", banner, ErrUnknownVersion)
	}

	v := Version{
		Major:   parseDecimalByte(m[1]),
		Minor:   parseDecimalByte(m[2]),
		Patch:   parseDecimalByte(m[3]),
		Unicode: len(m[4]) > 0,
	}

	if !isSupportedVersion(v) {
		return Version{}, fmt.Errorf("version %s: %w", v, ErrUnknownVersion)
	}

	return v, nil
}

// parseDecimalByte parses a short ASCII decimal run already validated by
// versionStampPattern, so no error return is needed.
func parseDecimalByte(digits []byte) uint8 {
	var n int
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return uint8(n)
}

// minSupportedVersion / maxSupportedVersion bound the documented matrix
// (spec.md Non-goals: "supporting installer versions outside the documented
// range").
var (
	minSupportedVersion = Version{1, 2, 0, false}
	maxSupportedVersion = Version{6, 99, 99, true}
)

func isSupportedVersion(v Version) bool {
	return v.AtLeast(minSupportedVersion) && !maxSupportedVersion.Less(v)
}
