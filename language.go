// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// LanguageEntry describes one UI language compiled into the installer
// (§3). Entries are identified by position and referenced elsewhere by
// index (CustomMessageEntry.Language, the *-expr fields on later records).
type LanguageEntry struct {
	Name               string   `json:"name"`
	LanguageName       string   `json:"language_name"`
	DialogFontName     string   `json:"dialog_font_name"`
	TitleFontName      string   `json:"title_font_name"`
	WelcomeFontName    string   `json:"welcome_font_name"`
	CopyrightFontName  string   `json:"copyright_font_name"`
	Data               string   `json:"-"`
	LicenseText        string   `json:"-"`
	InfoBeforeText     string   `json:"-"`
	InfoAfterText      string   `json:"-"`
	LanguageID         uint32   `json:"language_id"`
	Codepage           Codepage `json:"codepage"`
	DialogFontSize     uint32   `json:"dialog_font_size"`
	DialogFontStdHeight uint32  `json:"dialog_font_standard_height"`
	TitleFontSize      uint32   `json:"title_font_size"`
	WelcomeFontSize    uint32   `json:"welcome_font_size"`
	CopyrightFontSize  uint32   `json:"copyright_font_size"`
	RightToLeft        bool     `json:"right_to_left"`
}

// parseLanguageEntry reads one LanguageEntry. Its string fields come first
// and are decoded with the version default codepage (LanguageName is always
// UTF-16LE); the entry's own Codepage field follows them, is replaced by the
// version default when zero, and is the per-language codepage later
// consulted for CustomMessageEntry decoding.
func parseLanguageEntry(r *reader, v Version) (LanguageEntry, error) {
	var e LanguageEntry
	var err error

	if e.Name, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry name: %w", err)
	}
	if e.LanguageName, err = r.ReadUnicodeString(); err != nil {
		return e, fmt.Errorf("language entry language name: %w", err)
	}

	if e.DialogFontName, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry dialog font: %w", err)
	}
	if e.TitleFontName, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry title font: %w", err)
	}
	if e.WelcomeFontName, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry welcome font: %w", err)
	}
	if e.CopyrightFontName, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry copyright font: %w", err)
	}

	if e.Data, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry data: %w", err)
	}
	if e.LicenseText, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry license text: %w", err)
	}
	if e.InfoBeforeText, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry info before text: %w", err)
	}
	if e.InfoAfterText, err = r.ReadVersionedString(v, v.Codepage()); err != nil {
		return e, fmt.Errorf("language entry info after text: %w", err)
	}

	if e.LanguageID, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("language entry language id: %w", err)
	}
	cp, err := r.ReadU32()
	if err != nil {
		return e, fmt.Errorf("language entry codepage: %w", err)
	}
	if cp == 0 {
		cp = uint32(v.Codepage())
	}
	e.Codepage = Codepage(cp)

	for _, dst := range []*uint32{
		&e.DialogFontSize, &e.DialogFontStdHeight, &e.TitleFontSize,
		&e.WelcomeFontSize, &e.CopyrightFontSize,
	} {
		if *dst, err = r.ReadU32(); err != nil {
			return e, fmt.Errorf("language entry font size: %w", err)
		}
	}

	if e.RightToLeft, err = r.ReadBool(); err != nil {
		return e, fmt.Errorf("language entry right-to-left: %w", err)
	}

	return e, nil
}
