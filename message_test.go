// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestParseCustomMessageEntry(t *testing.T) {
	var buf bytes.Buffer
	strField(&buf, "SetupAppTitle")
	strField(&buf, "Setup")
	binary.Write(&buf, binary.LittleEndian, int32(-1))

	v := Version{5, 3, 10, false}
	r := newReader(&buf, 0, 0)
	name, rawValue, language, err := parseCustomMessageEntry(r, v)
	if err != nil {
		t.Fatalf("parseCustomMessageEntry() unexpected error: %v", err)
	}
	if name != "SetupAppTitle" {
		t.Errorf("name = %q, want %q", name, "SetupAppTitle")
	}
	if string(rawValue) != "Setup" {
		t.Errorf("rawValue = %q, want %q", rawValue, "Setup")
	}
	if language != -1 {
		t.Errorf("language = %d, want -1", language)
	}
}

func TestResolveCustomMessageCodepage(t *testing.T) {
	v := Version{5, 3, 10, false}
	languages := []LanguageEntry{{Codepage: CodepageWindows1250}}

	if cp := resolveCustomMessageCodepage(v, languages, -1, func(string) {}); cp != v.Codepage() {
		t.Errorf("language -1: codepage = %v, want version default %v", cp, v.Codepage())
	}
	if cp := resolveCustomMessageCodepage(v, languages, 0, func(string) {}); cp != CodepageWindows1250 {
		t.Errorf("language 0: codepage = %v, want %v", cp, CodepageWindows1250)
	}

	var warned string
	cp := resolveCustomMessageCodepage(v, languages, 5, func(msg string) { warned = msg })
	if cp != v.Codepage() {
		t.Errorf("out-of-range language: codepage = %v, want version default %v", cp, v.Codepage())
	}
	if warned == "" {
		t.Errorf("expected a warning for an out-of-range language index")
	}
}
