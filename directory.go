// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// DirectoryEntry describes one directory the installer creates (§3).
// PermissionIndex is -1 when no PermissionEntry applies (the -1 sentinel
// pattern spec.md §8 requires be in-range otherwise).
type DirectoryEntry struct {
	Name             string         `json:"name"`
	Components       string         `json:"components"`
	Tasks            string         `json:"tasks"`
	Languages        string         `json:"languages"`
	Check            string         `json:"check"`
	Permissions      []byte         `json:"-"`
	AfterInstall     string         `json:"after_install"`
	BeforeInstall    string         `json:"before_install"`
	Attributes       uint32         `json:"attributes"`
	MinVersion       WindowsVersion `json:"min_version"`
	OnlyBelowVersion WindowsVersion `json:"only_below_version"`
	PermissionIndex  int32          `json:"permission_index"`
	Options          uint32         `json:"options"`
}

// parseDirectoryEntry reads one DirectoryEntry.
func parseDirectoryEntry(r *reader, v Version) (DirectoryEntry, error) {
	var e DirectoryEntry
	var err error

	cp := v.Codepage()
	if e.Name, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry name: %w", err)
	}
	if e.Components, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry components: %w", err)
	}
	if e.Tasks, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry tasks: %w", err)
	}
	if e.Languages, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry languages: %w", err)
	}
	if e.Check, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry check: %w", err)
	}
	if e.Permissions, err = r.ReadBinaryString(); err != nil {
		return e, fmt.Errorf("directory entry permissions: %w", err)
	}
	if e.AfterInstall, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry after install: %w", err)
	}
	if e.BeforeInstall, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("directory entry before install: %w", err)
	}

	if e.Attributes, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("directory entry attributes: %w", err)
	}

	if e.MinVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("directory entry min version: %w", err)
	}
	if e.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("directory entry only-below version: %w", err)
	}

	if e.PermissionIndex, err = r.ReadI32(); err != nil {
		return e, fmt.Errorf("directory entry permission index: %w", err)
	}
	if e.Options, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("directory entry options: %w", err)
	}

	return e, nil
}
