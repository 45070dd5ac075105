// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Codepage identifies a legacy single- or multi-byte character encoding
// used for non-Unicode string fields. It is the Windows codepage number
// (e.g. 1252 for Windows-1252), mirroring what LanguageEntry.Codepage and
// the version-derived default both store.
type Codepage uint32

// Well-known codepages that appear in the (version -> codepage) table.
// Windows1252 is the historical default for the tool's own default
// language (English) across the whole documented version range.
const (
	CodepageWindows1252        Codepage = 1252
	CodepageWindows1250        Codepage = 1250
	CodepageWindows1251        Codepage = 1251
	CodepageWindows1253        Codepage = 1253
	CodepageWindows1254        Codepage = 1254
	CodepageWindows1255        Codepage = 1255
	CodepageWindows1256        Codepage = 1256
	CodepageWindows1257        Codepage = 1257
	CodepageWindows1258        Codepage = 1258
	CodepageShiftJIS           Codepage = 932
	CodepageGBK                Codepage = 936
	CodepageEUCKR              Codepage = 949
	CodepageBig5               Codepage = 950
	CodepageUnicodeUTF16LE     Codepage = 1200 // Unicode-variant installers; not a legacy transcode target
)

// codepageDecoders maps a codepage number to the x/text decoder that turns
// its legacy bytes into UTF-8. Each entry documents the locale it was
// historically paired with by Inno Setup's own default-language list.
var codepageDecoders = map[Codepage]*encoding.Decoder{
	CodepageWindows1252: charmap.Windows1252.NewDecoder(), // en, and the tool's hard-coded fallback
	CodepageWindows1250: charmap.Windows1250.NewDecoder(), // cs, pl, hu, ro, hr, sk, sl
	CodepageWindows1251: charmap.Windows1251.NewDecoder(), // ru, bg, uk, sr (Cyrillic)
	CodepageWindows1253: charmap.Windows1253.NewDecoder(), // el
	CodepageWindows1254: charmap.Windows1254.NewDecoder(), // tr
	CodepageWindows1255: charmap.Windows1255.NewDecoder(), // he
	CodepageWindows1256: charmap.Windows1256.NewDecoder(), // ar, fa
	CodepageWindows1257: charmap.Windows1257.NewDecoder(), // lt, lv, et
	CodepageWindows1258: charmap.Windows1258.NewDecoder(), // vi
	CodepageShiftJIS:    japanese.ShiftJIS.NewDecoder(),    // ja
	CodepageGBK:         simplifiedchinese.GBK.NewDecoder(),         // zh-Hans
	CodepageEUCKR:       korean.EUCKR.NewDecoder(),                  // ko
	CodepageBig5:        traditionalchinese.Big5.NewDecoder(),       // zh-Hant
}

// decodeLegacyString transcodes b (bytes in the given codepage) to UTF-8.
func decodeLegacyString(b []byte, cp Codepage) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	dec, ok := codepageDecoders[cp]
	if !ok {
		return "", fmt.Errorf("codepage %d: %w", cp, ErrInvalidEncoding)
	}
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("codepage %d: %w", cp, ErrInvalidEncoding)
	}
	return string(out), nil
}

// versionCodepageEntry is one row of the authoritative (version -> codepage)
// table referenced by Design Notes: "treat the (version -> codepage) table
// as the authoritative source and document each entry."
type versionCodepageEntry struct {
	min, max Version
	codepage Codepage
}

// codepageTable is consulted in order; the first matching, highest-priority
// row wins. Every documented installer version defaults to Windows-1252
// unless the embedded default language (read later, from LanguageEntry)
// overrides it -- the version-derived default only matters for records read
// before any LanguageEntry is available (the header strings themselves) and
// for the CustomMessageEntry "language == -1" case.
var codepageTable = []versionCodepageEntry{
	{Version{1, 2, 0, false}, Version{6, 99, 99, false}, CodepageWindows1252},
}

// defaultCodepage returns the legacy codepage to use for a given decoded
// version before any language-specific codepage is known.
func defaultCodepage(v Version) Codepage {
	for _, row := range codepageTable {
		if !v.Less(row.min) && !row.max.Less(v) {
			return row.codepage
		}
	}
	return CodepageWindows1252
}
