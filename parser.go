// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"fmt"
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

// decodeState names the forward-only state machine from spec.md §4.G.
// Failed is terminal; every other state only ever advances.
type decodeState int

const (
	stateInit decodeState = iota
	stateOffsetsLoaded
	stateVersionRead
	stateBlockOpen
	stateDecompressing
	stateParsing
	stateDone
	stateFailed
)

func (s decodeState) String() string {
	switch s {
	case stateInit:
		return "Init"
	case stateOffsetsLoaded:
		return "OffsetsLoaded"
	case stateVersionRead:
		return "VersionRead"
	case stateBlockOpen:
		return "BlockOpen"
	case stateDecompressing:
		return "Decompressing"
	case stateParsing:
		return "Parsing"
	case stateDone:
		return "Done"
	case stateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("decodeState(%d)", int(s))
	}
}

// parseRecords runs the version-dispatched record parser (§4.G) against
// the decompressed metadata stream, in the fixed field order the header's
// counts impose. It mutates ins in place and returns the first fatal
// error; recoverable conditions are appended to ins.Warnings instead.
func parseRecords(stream io.Reader, v Version, ins *Installer, helper *log.Helper, maxStringLength, maxEntryCount uint32) error {
	r := newReader(stream, maxStringLength, maxEntryCount)

	warn := func(msg string) {
		ins.Warnings = append(ins.Warnings, msg)
		helper.Warnf("innosetup: %s", msg)
	}

	header, err := parseSetupHeader(r, v)
	if err != nil {
		return fmt.Errorf("setup header: %w", err)
	}
	ins.Header = header

	for i := uint32(0); i < header.NumLanguageEntries; i++ {
		lang, err := parseLanguageEntry(r, v)
		if err != nil {
			return fmt.Errorf("language entry #%d: %w", i, err)
		}
		ins.Languages = append(ins.Languages, lang)
	}

	if v.Less(Version{4, 0, 0, false}) {
		if _, err := r.ReadBinaryString(); err != nil { // wizard_image, body discarded
			return fmt.Errorf("wizard image: %w", err)
		}
		if v.AtLeast(Version{1, 3, 27, false}) {
			// original_source/InnoExtract.cpp: "> 1.3.26" (strictly greater);
			// the TODO there flags wizardSmallImageBackColor as reportedly
			// missing after 5.0.4 -- see SPEC_FULL.md's Open Question.
			if _, err := r.ReadBinaryString(); err != nil { // wizard_small_image
				return fmt.Errorf("wizard small image: %w", err)
			}
		}

		needsDecompressorDLL := header.CompressMethod == CompressBZip2 ||
			(header.CompressMethod == CompressLZMA1 && v.Equal(Version{4, 1, 5, false})) ||
			(header.CompressMethod == CompressZlib && v.AtLeast(Version{4, 2, 6, false}))
		if needsDecompressorDLL {
			if _, err := r.ReadBinaryString(); err != nil { // decompressor_dll
				return fmt.Errorf("decompressor dll: %w", err)
			}
		}
	}

	for i := uint32(0); i < header.NumCustomMessageEntries; i++ {
		name, rawValue, language, err := parseCustomMessageEntry(r, v)
		if err != nil {
			return fmt.Errorf("custom message entry #%d: %w", i, err)
		}

		var value string
		if v.Unicode {
			if len(rawValue)%2 != 0 {
				return fmt.Errorf("custom message entry #%d value: %w", i, ErrInvalidEncoding)
			}
			value, err = decodeUTF16Bytes(rawValue)
		} else {
			cp := resolveCustomMessageCodepage(v, ins.Languages, language, warn)
			value, err = decodeLegacyString(rawValue, cp)
		}
		if err != nil {
			return fmt.Errorf("custom message entry #%d value: %w", i, err)
		}

		ins.Messages = append(ins.Messages, CustomMessageEntry{Name: name, Value: value, Language: language})
	}

	for i := uint32(0); i < header.NumPermissionEntries; i++ {
		perm, err := parsePermissionEntry(r)
		if err != nil {
			return fmt.Errorf("permission entry #%d: %w", i, err)
		}
		ins.Permissions = append(ins.Permissions, perm)
	}

	for i := uint32(0); i < header.NumTypeEntries; i++ {
		t, err := parseSetupTypeEntry(r, v)
		if err != nil {
			return fmt.Errorf("type entry #%d: %w", i, err)
		}
		if t.MinVersion.IsZero() {
			t.MinVersion = header.MinVersion
		}
		if t.OnlyBelowVersion.IsZero() {
			t.OnlyBelowVersion = header.OnlyBelowVersion
		}
		ins.Types = append(ins.Types, t)
	}

	for i := uint32(0); i < header.NumComponentEntries; i++ {
		c, err := parseSetupComponentEntry(r, v)
		if err != nil {
			return fmt.Errorf("component entry #%d: %w", i, err)
		}
		if c.MinVersion.IsZero() {
			c.MinVersion = header.MinVersion
		}
		if c.OnlyBelowVersion.IsZero() {
			c.OnlyBelowVersion = header.OnlyBelowVersion
		}
		ins.Components = append(ins.Components, c)
	}

	for i := uint32(0); i < header.NumTaskEntries; i++ {
		t, err := parseSetupTaskEntry(r, v)
		if err != nil {
			return fmt.Errorf("task entry #%d: %w", i, err)
		}
		if t.MinVersion.IsZero() {
			t.MinVersion = header.MinVersion
		}
		if t.OnlyBelowVersion.IsZero() {
			t.OnlyBelowVersion = header.OnlyBelowVersion
		}
		ins.Tasks = append(ins.Tasks, t)
	}

	for i := uint32(0); i < header.NumDirectoryEntries; i++ {
		d, err := parseDirectoryEntry(r, v)
		if err != nil {
			return fmt.Errorf("directory entry #%d: %w", i, err)
		}
		if d.MinVersion.IsZero() {
			d.MinVersion = header.MinVersion
		}
		if d.OnlyBelowVersion.IsZero() {
			d.OnlyBelowVersion = header.OnlyBelowVersion
		}
		if d.PermissionIndex != -1 && (d.PermissionIndex < 0 || int(d.PermissionIndex) >= len(ins.Permissions)) {
			warn(fmt.Sprintf("directory entry #%d references out-of-range permission index %d", i, d.PermissionIndex))
		}
		ins.Directories = append(ins.Directories, d)
	}

	for i := uint32(0); i < header.NumFileEntries; i++ {
		f, err := parseFileEntry(r, v)
		if err != nil {
			return fmt.Errorf("file entry #%d: %w", i, err)
		}
		if f.MinVersion.IsZero() {
			f.MinVersion = header.MinVersion
		}
		if f.OnlyBelowVersion.IsZero() {
			f.OnlyBelowVersion = header.OnlyBelowVersion
		}
		if f.PermissionIndex != -1 && (f.PermissionIndex < 0 || int(f.PermissionIndex) >= len(ins.Permissions)) {
			warn(fmt.Sprintf("file entry #%d references out-of-range permission index %d", i, f.PermissionIndex))
		}
		ins.Files = append(ins.Files, f)
	}

	return nil
}

// decodeUTF16Bytes transcodes a raw UTF-16LE byte string to UTF-8; used for
// CustomMessageEntry values on Unicode-variant installers, where the value
// is never legacy-codepage encoded regardless of which language it belongs
// to.
func decodeUTF16Bytes(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	dec := utf16LEDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w", ErrInvalidEncoding)
	}
	return string(out), nil
}
