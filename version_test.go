// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"errors"
	"testing"
)

func stampBytes(banner string) []byte {
	buf := make([]byte, versionStampSize)
	copy(buf, banner)
	return buf
}

func TestIdentifyVersion(t *testing.T) {
	tests := []struct {
		name    string
		banner  string
		want    Version
		wantErr error
	}{
		{
			name:   "legacy ansi",
			banner: "Inno Setup Setup Data (1.2.0)",
			want:   Version{1, 2, 0, false},
		},
		{
			name:   "modern unicode",
			banner: "Inno Setup Setup Data (5.3.10)(u)",
			want:   Version{5, 3, 10, true},
		},
		{
			name:   "latest supported",
			banner: "Inno Setup Setup Data (6.3.0)(u)",
			want:   Version{6, 3, 0, true},
		},
		{
			name:    "malformed banner",
			banner:  "Not An Inno Setup Banner At All",
			wantErr: ErrUnknownVersion,
		},
		{
			name:    "version below matrix floor",
			banner:  "Inno Setup Setup Data (1.1.9)",
			wantErr: ErrUnknownVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(bytes.NewReader(stampBytes(tt.banner)), 0, 0)
			got, err := identifyVersion(r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("identifyVersion() err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("identifyVersion() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("identifyVersion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIdentifyVersionTruncated(t *testing.T) {
	r := newReader(bytes.NewReader([]byte("short")), 0, 0)
	_, err := identifyVersion(r)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("identifyVersion() err = %v, want %v", err, ErrTruncated)
	}
}

func TestVersionOrdering(t *testing.T) {
	v1 := Version{5, 1, 0, false}
	v2 := Version{5, 2, 0, false}
	v3 := Version{5, 2, 0, true}

	if !v1.Less(v2) {
		t.Errorf("expected %v < %v", v1, v2)
	}
	if v2.Less(v1) {
		t.Errorf("did not expect %v < %v", v2, v1)
	}
	if !v2.Equal(v3) {
		t.Errorf("expected %v == %v ignoring unicode marker", v2, v3)
	}
	if !v2.AtLeast(v1) {
		t.Errorf("expected %v >= %v", v2, v1)
	}
}

func TestVersionString(t *testing.T) {
	v := Version{5, 3, 10, true}
	if got, want := v.String(), "5.3.10(u)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	v2 := Version{1, 2, 0, false}
	if got, want := v2.String(), "1.2.0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
