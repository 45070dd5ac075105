// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// CustomMessageEntry is a single named/valued message override (§3).
// Language == -1 means "applies to every language, decoded using the
// version default codepage"; otherwise it indexes into Installer.Languages.
type CustomMessageEntry struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Language int32  `json:"language"`
}

// parseCustomMessageEntry reads one CustomMessageEntry. Name is read like
// any other versioned string (UTF-16LE on Unicode versions, the version
// codepage otherwise; message names are ASCII identifiers); Value is
// returned raw and its codepage is resolved by the caller once the
// languages slice is available (resolveCustomMessageCodepage below), since a
// value's encoding depends on which language it belongs to, not on the
// version that is decoding the surrounding record.
func parseCustomMessageEntry(r *reader, v Version) (name string, rawValue []byte, language int32, err error) {
	if name, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return "", nil, 0, fmt.Errorf("custom message entry name: %w", err)
	}
	if rawValue, err = r.ReadBinaryString(); err != nil {
		return "", nil, 0, fmt.Errorf("custom message entry value: %w", err)
	}
	if language, err = r.ReadI32(); err != nil {
		return "", nil, 0, fmt.Errorf("custom message entry language: %w", err)
	}
	return name, rawValue, language, nil
}

// resolveCustomMessageCodepage implements the codepage-resolution rule from
// spec.md §4.G: language == -1 uses the version default; an in-range
// language index uses that language's own codepage; an out-of-range index
// is a recoverable warning, not a fatal error, and falls back to the
// version default.
func resolveCustomMessageCodepage(v Version, languages []LanguageEntry, language int32, warn func(string)) Codepage {
	if language == -1 {
		return v.Codepage()
	}
	if language < 0 || int(language) >= len(languages) {
		warn(fmt.Sprintf("custom message entry references out-of-range language index %d (have %d languages)", language, len(languages)))
		return v.Codepage()
	}
	return languages[language].Codepage
}
