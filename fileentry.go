// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// FileEntry describes one payload file to be installed, or one of the two
// installer-internal records that reuse this layout (uninstaller
// executable, self-registering server DLL), §3. LocationIndex is -1 when
// the entry carries no data of its own (e.g. a registry-only or
// run-only placeholder entry). Decoding never reads the bytes a
// non-negative LocationIndex refers to -- payload file bodies are
// explicitly out of scope (spec.md §1).
type FileEntry struct {
	Source             string         `json:"source"`
	Destination        string         `json:"destination"`
	InstallFontName    string         `json:"install_font_name"`
	StrongAssemblyName string         `json:"strong_assembly_name"`
	Components         string         `json:"components"`
	Tasks              string         `json:"tasks"`
	Languages          string         `json:"languages"`
	Check              string         `json:"check"`
	AfterInstall       string         `json:"after_install"`
	BeforeInstall      string         `json:"before_install"`
	MinVersion         WindowsVersion `json:"min_version"`
	OnlyBelowVersion   WindowsVersion `json:"only_below_version"`
	LocationIndex      int32          `json:"location_index"`
	Attributes         uint32         `json:"attributes"`
	ExternalSize       uint64         `json:"external_size"`
	PermissionIndex    int32          `json:"permission_index"`
	Options            uint32         `json:"options"`
	Kind               FileEntryKind  `json:"type"`
}

// parseFileEntry reads one FileEntry.
func parseFileEntry(r *reader, v Version) (FileEntry, error) {
	var e FileEntry
	var err error

	cp := v.Codepage()
	if e.Source, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry source: %w", err)
	}
	if e.Destination, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry destination: %w", err)
	}
	if e.InstallFontName, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry install font name: %w", err)
	}
	if e.StrongAssemblyName, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry strong assembly name: %w", err)
	}
	if e.Components, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry components: %w", err)
	}
	if e.Tasks, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry tasks: %w", err)
	}
	if e.Languages, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry languages: %w", err)
	}
	if e.Check, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry check: %w", err)
	}
	if e.AfterInstall, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry after install: %w", err)
	}
	if e.BeforeInstall, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("file entry before install: %w", err)
	}

	if e.MinVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("file entry min version: %w", err)
	}
	if e.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("file entry only-below version: %w", err)
	}

	if e.LocationIndex, err = r.ReadI32(); err != nil {
		return e, fmt.Errorf("file entry location index: %w", err)
	}
	if e.Attributes, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("file entry attributes: %w", err)
	}
	if e.ExternalSize, err = r.ReadU64(); err != nil {
		return e, fmt.Errorf("file entry size: %w", err)
	}
	if e.PermissionIndex, err = r.ReadI32(); err != nil {
		return e, fmt.Errorf("file entry permission index: %w", err)
	}
	if e.Options, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("file entry options: %w", err)
	}

	kind, err := r.ReadU8()
	if err != nil {
		return e, fmt.Errorf("file entry type: %w", err)
	}
	if kind > uint8(FileEntryRegSvrExe) {
		return e, fmt.Errorf("file entry type %d: %w", kind, ErrInvalidEnumValue)
	}
	e.Kind = FileEntryKind(kind)

	return e, nil
}
