// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// PermissionEntry is an opaque Windows ACL blob referenced by
// DirectoryEntry.PermissionIndex / FileEntry.PermissionIndex (§3). The decoder never
// interprets its contents, matching spec.md's "opaque byte string" note.
type PermissionEntry struct {
	Permissions []byte `json:"-"`
}

// parsePermissionEntry reads one PermissionEntry: a plain length-prefixed
// byte string with no further structure.
func parsePermissionEntry(r *reader) (PermissionEntry, error) {
	raw, err := r.ReadBinaryString()
	if err != nil {
		return PermissionEntry{}, fmt.Errorf("permission entry: %w", err)
	}
	return PermissionEntry{Permissions: raw}, nil
}
