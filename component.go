// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// SetupComponentEntry describes one selectable install component (§3).
type SetupComponentEntry struct {
	Name                   string         `json:"name"`
	Types                  string         `json:"types"`
	Description            string         `json:"description"`
	Languages              string         `json:"languages"`
	Check                  string         `json:"check"`
	ExtraDiskSpaceRequired uint64         `json:"extra_disk_space_required"`
	Level                  int32          `json:"level"`
	Used                   bool           `json:"used"`
	MinVersion             WindowsVersion `json:"min_version"`
	OnlyBelowVersion       WindowsVersion `json:"only_below_version"`
	Options                uint32         `json:"options"`
	Size                   uint64         `json:"size"`
}

// parseSetupComponentEntry reads one SetupComponentEntry.
func parseSetupComponentEntry(r *reader, v Version) (SetupComponentEntry, error) {
	var e SetupComponentEntry
	var err error

	cp := v.Codepage()
	if e.Name, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("component entry name: %w", err)
	}
	if e.Types, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("component entry types: %w", err)
	}
	if e.Description, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("component entry description: %w", err)
	}
	if e.Languages, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("component entry languages: %w", err)
	}
	if e.Check, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("component entry check: %w", err)
	}

	if e.ExtraDiskSpaceRequired, err = r.ReadU64(); err != nil {
		return e, fmt.Errorf("component entry extra disk space: %w", err)
	}
	if e.Level, err = r.ReadI32(); err != nil {
		return e, fmt.Errorf("component entry level: %w", err)
	}
	if e.Used, err = r.ReadBool(); err != nil {
		return e, fmt.Errorf("component entry used: %w", err)
	}

	if e.MinVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("component entry min version: %w", err)
	}
	if e.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("component entry only-below version: %w", err)
	}

	if e.Options, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("component entry options: %w", err)
	}
	if e.Size, err = r.ReadU64(); err != nil {
		return e, fmt.Errorf("component entry size: %w", err)
	}

	return e, nil
}
