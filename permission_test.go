// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestParsePermissionEntry(t *testing.T) {
	var buf bytes.Buffer
	acl := []byte{0x01, 0x02, 0x03, 0x04}
	binary.Write(&buf, binary.LittleEndian, uint32(len(acl)))
	buf.Write(acl)

	r := newReader(&buf, 0, 0)
	e, err := parsePermissionEntry(r)
	if err != nil {
		t.Fatalf("parsePermissionEntry() unexpected error: %v", err)
	}
	if !bytes.Equal(e.Permissions, acl) {
		t.Errorf("Permissions = %v, want %v", e.Permissions, acl)
	}
}
