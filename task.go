// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// SetupTaskEntry describes one optional post-install task (a checkbox in
// the wizard, e.g. "create a desktop icon"), §3.
type SetupTaskEntry struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	GroupDescription  string         `json:"group_description"`
	Components        string         `json:"components"`
	Languages         string         `json:"languages"`
	Check             string         `json:"check"`
	Level             int32          `json:"level"`
	Used              bool           `json:"used"`
	MinVersion        WindowsVersion `json:"min_version"`
	OnlyBelowVersion  WindowsVersion `json:"only_below_version"`
	Options           uint32         `json:"options"`
}

// parseSetupTaskEntry reads one SetupTaskEntry.
func parseSetupTaskEntry(r *reader, v Version) (SetupTaskEntry, error) {
	var e SetupTaskEntry
	var err error

	cp := v.Codepage()
	if e.Name, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry name: %w", err)
	}
	if e.Description, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry description: %w", err)
	}
	if e.GroupDescription, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry group description: %w", err)
	}
	if e.Components, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry components: %w", err)
	}
	if e.Languages, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry languages: %w", err)
	}
	if e.Check, err = r.ReadVersionedString(v, cp); err != nil {
		return e, fmt.Errorf("task entry check: %w", err)
	}

	if e.Level, err = r.ReadI32(); err != nil {
		return e, fmt.Errorf("task entry level: %w", err)
	}
	if e.Used, err = r.ReadBool(); err != nil {
		return e, fmt.Errorf("task entry used: %w", err)
	}

	if e.MinVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("task entry min version: %w", err)
	}
	if e.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return e, fmt.Errorf("task entry only-below version: %w", err)
	}

	if e.Options, err = r.ReadU32(); err != nil {
		return e, fmt.Errorf("task entry options: %w", err)
	}

	return e, nil
}
