// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// SetupTypeEntry describes one selectable install type ("Full", "Compact",
// a custom combination, …), §3.
type SetupTypeEntry struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Languages        string              `json:"languages"`
	Check            string              `json:"check"`
	MinVersion       WindowsVersion      `json:"min_version"`
	OnlyBelowVersion WindowsVersion      `json:"only_below_version"`
	Options          uint32              `json:"options"`
	Kind             SetupTypeKind       `json:"type"`
	Size             uint64              `json:"size"`
}

// parseSetupTypeEntry reads one SetupTypeEntry. MinVersion/OnlyBelowVersion
// default to the header's own range when the entry's stored value is the
// zero WindowsVersion{}, per original_source/InnoExtract.cpp's
// IfNot("Min version", entry.minVersion, header.minVersion) convention --
// applied by the caller (parser.go), not here, since only the caller has
// the header in scope.
func parseSetupTypeEntry(r *reader, v Version) (SetupTypeEntry, error) {
	var e SetupTypeEntry
	var err error

	cp := v.Codepage()
	if e.Name, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("type entry name: %w", err)
	}
	if e.Description, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("type entry description: %w", err)
	}
	if e.Languages, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("type entry languages: %w", err)
	}
	if e.Check, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("type entry check: %w", err)
	}

	if e.MinVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("type entry min version: %w", err)
	}
	if e.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("type entry only-below version: %w", err)
	}

	if e.Options, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("type entry options: %w", err)
	}

	kind, err := r.ReadU8()
	if err != nil {
		return e, fmt.Errorf("type entry type: %w", err)
	}
	if kind > uint8(SetupTypeDefaultCustom) {
		return e, fmt.Errorf("type entry kind %d: %w", kind, ErrInvalidEnumValue)
	}
	e.Kind = SetupTypeKind(kind)

	if e.Size, err = r.ReadU64(); err != nil {
		return e, fmt.Errorf("type entry size: %w", err)
	}

	return e, nil
}
