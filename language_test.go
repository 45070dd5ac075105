// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func strField(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

func TestParseLanguageEntry(t *testing.T) {
	var buf bytes.Buffer
	strField(&buf, "english")    // Name
	strField(&buf, "")           // LanguageName (unicode string, empty is fine)
	strField(&buf, "Segoe UI")   // DialogFontName
	strField(&buf, "Segoe UI")   // TitleFontName
	strField(&buf, "Segoe UI")   // WelcomeFontName
	strField(&buf, "Segoe UI")   // CopyrightFontName
	strField(&buf, "")           // Data
	strField(&buf, "")           // LicenseText
	strField(&buf, "")           // InfoBeforeText
	strField(&buf, "")           // InfoAfterText
	binary.Write(&buf, binary.LittleEndian, uint32(0x0409)) // LanguageID
	binary.Write(&buf, binary.LittleEndian, uint32(0))      // Codepage (0 -> default)
	binary.Write(&buf, binary.LittleEndian, uint32(8))      // DialogFontSize
	binary.Write(&buf, binary.LittleEndian, uint32(23))     // DialogFontStdHeight
	binary.Write(&buf, binary.LittleEndian, uint32(9))      // TitleFontSize
	binary.Write(&buf, binary.LittleEndian, uint32(12))     // WelcomeFontSize
	binary.Write(&buf, binary.LittleEndian, uint32(8))      // CopyrightFontSize
	buf.WriteByte(0)                                        // RightToLeft

	v := Version{5, 3, 10, true}
	r := newReader(&buf, 0, 0)
	e, err := parseLanguageEntry(r, v)
	if err != nil {
		t.Fatalf("parseLanguageEntry() unexpected error: %v", err)
	}
	if e.Name != "english" {
		t.Errorf("Name = %q, want %q", e.Name, "english")
	}
	if e.LanguageID != 0x0409 {
		t.Errorf("LanguageID = %#x, want %#x", e.LanguageID, 0x0409)
	}
	if e.Codepage != v.Codepage() {
		t.Errorf("Codepage = %v, want default %v", e.Codepage, v.Codepage())
	}
	if e.RightToLeft {
		t.Errorf("RightToLeft = true, want false")
	}
}
