// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// SetupHeaderOptions are the option bitmask flags referenced by several
// SetupHeader fields (password/encryption gating, signed uninstaller
// gating), named after the `sh*` constants in original_source/InnoExtract.cpp.
type SetupHeaderOptions uint64

const (
	ShPassword          SetupHeaderOptions = 1 << 0
	ShEncryptionUsed    SetupHeaderOptions = 1 << 1
	ShSignedUninstaller SetupHeaderOptions = 1 << 2
)

// SetupHeader is the first record read from the decompressed metadata
// stream (§3). It carries the installer's application metadata, every
// num_*_entries count that drives the record-parser loops in §4.G, the
// compression method selector consumed by §4.F, and the UI/privilege
// policy the original spec lists only in summary.
type SetupHeader struct {
	AppName                string `json:"app_name"`
	AppVerName             string `json:"app_ver_name"`
	AppID                  string `json:"app_id"`
	AppCopyright           string `json:"app_copyright"`
	AppPublisher           string `json:"app_publisher"`
	AppPublisherURL        string `json:"app_publisher_url"`
	AppSupportPhone        string `json:"app_support_phone"`
	AppSupportURL          string `json:"app_support_url"`
	AppUpdatesURL          string `json:"app_updates_url"`
	AppVersion             string `json:"app_version"`
	DefaultDirName         string `json:"default_dir_name"`
	DefaultGroupName       string `json:"default_group_name"`
	UninstallIconName      string `json:"uninstall_icon_name"`
	BaseFilename           string `json:"base_filename"`
	UninstallFilesDir      string `json:"uninstall_files_dir"`
	UninstallDisplayName   string `json:"uninstall_display_name"`
	UninstallDisplayIcon   string `json:"uninstall_display_icon"`
	AppMutex               string `json:"app_mutex"`
	DefaultUserInfoName    string `json:"default_user_info_name"`
	DefaultUserInfoOrg     string `json:"default_user_info_org"`
	DefaultUserInfoSerial  string `json:"default_user_info_serial"`
	AppReadmeFile          string `json:"app_readme_file"`
	AppContact             string `json:"app_contact"`
	AppComments            string `json:"app_comments"`
	AppModifyPath          string `json:"app_modify_path"`
	CreateUninstallRegKey  string `json:"create_uninstall_reg_key"`
	Uninstallable          string `json:"uninstallable"`
	LicenseText            string `json:"-"`
	InfoBeforeText         string `json:"-"`
	InfoAfterText          string `json:"-"`
	SignedUninstallerSig   string `json:"-"`
	CompiledCodeText       string `json:"-"`

	LeadBytes [256 / 8]byte `json:"lead_bytes,omitempty"` // DBCS lead-byte bitmap, pre-Unicode only

	NumLanguageEntries        uint32 `json:"num_language_entries"`
	NumCustomMessageEntries   uint32 `json:"num_custom_message_entries"`
	NumPermissionEntries      uint32 `json:"num_permission_entries"`
	NumTypeEntries            uint32 `json:"num_type_entries"`
	NumComponentEntries       uint32 `json:"num_component_entries"`
	NumTaskEntries            uint32 `json:"num_task_entries"`
	NumDirectoryEntries       uint32 `json:"num_directory_entries"`
	NumFileEntries            uint32 `json:"num_file_entries"`
	NumFileLocationEntries    uint32 `json:"num_file_location_entries"`
	NumIconEntries            uint32 `json:"num_icon_entries"`
	NumIniEntries             uint32 `json:"num_ini_entries"`
	NumRegistryEntries        uint32 `json:"num_registry_entries"`
	NumInstallDeleteEntries   uint32 `json:"num_install_delete_entries"`
	NumUninstallDeleteEntries uint32 `json:"num_uninstall_delete_entries"`
	NumRunEntries             uint32 `json:"num_run_entries"`
	NumUninstallRunEntries    uint32 `json:"num_uninstall_run_entries"`

	LicenseSize    uint32 `json:"license_size"`
	InfoBeforeSize uint32 `json:"info_before_size"`
	InfoAfterSize  uint32 `json:"info_after_size"`

	MinVersion       WindowsVersion `json:"min_version"`
	OnlyBelowVersion WindowsVersion `json:"only_below_version"`

	BackColor                  uint32 `json:"back_color"`
	BackColor2                 uint32 `json:"back_color2"`
	WizardImageBackColor       uint32 `json:"wizard_image_back_color"`
	WizardSmallImageBackColor  uint32 `json:"wizard_small_image_back_color"`

	PasswordType uint32 `json:"password_type,omitempty"`

	ExtraDiskSpaceRequired uint64 `json:"extra_disk_space_required"`
	SlicesPerDisk          uint32 `json:"slices_per_disk"`

	InstallMode             InstallMode             `json:"install_mode"`
	UninstallLogMode        uint8                   `json:"uninstall_log_mode"`
	UninstallStyle          uint8                   `json:"uninstall_style"`
	DirExistsWarning        uint8                   `json:"dir_exists_warning"`
	PrivilegesRequired      PrivilegesRequired      `json:"privileges_required"`
	ShowLanguageDialog      uint8                   `json:"show_language_dialog"`
	LanguageDetectionMethod LanguageDetectionMethod `json:"language_detection_method"`
	CompressMethod          CompressMethod          `json:"compress_method"`
	ArchitecturesAllowed    uint16                  `json:"architectures_allowed"`
	ArchitecturesInstallIn64BitMode uint16          `json:"architectures_install_in_64bit_mode"`

	SignedUninstallerOrigSize     uint32 `json:"signed_uninstaller_orig_size,omitempty"`
	SignedUninstallerHdrChecksum  uint32 `json:"signed_uninstaller_hdr_checksum,omitempty"`

	DisableDirPage           AutoBoolean `json:"disable_dir_page"`
	DisableProgramGroupPage  AutoBoolean `json:"disable_program_group_page"`

	UninstallDisplaySize uint64 `json:"uninstall_display_size"`

	Options SetupHeaderOptions `json:"options"`
}

// headerStringField reads one version-gated legacy/unicode string field.
// Declared as a helper instead of repeating the ReadVersionedString call for
// each of the 32 string fields, the way the compatibility matrix in Design Notes calls for: field
// presence and encoding are uniform, only the destination differs.
func headerStringField(r *reader, v Version, cp Codepage, dst *string) error {
	s, err := r.ReadVersionedString(v, cp)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// parseSetupHeader reads the SetupHeader record. Field presence, widths,
// and the fixed Options-bit gating of PasswordType and the signed-
// uninstaller size/checksum pair follow original_source/InnoExtract.cpp's
// dump order exactly (lines 134-230), since that dump walks the record in
// on-disk field order.
func parseSetupHeader(r *reader, v Version) (SetupHeader, error) {
	var h SetupHeader
	cp := v.Codepage()

	fields := []*string{
		&h.AppName, &h.AppVerName, &h.AppID, &h.AppCopyright, &h.AppPublisher,
		&h.AppPublisherURL, &h.AppSupportPhone, &h.AppSupportURL, &h.AppUpdatesURL,
		&h.AppVersion, &h.DefaultDirName, &h.DefaultGroupName, &h.UninstallIconName,
		&h.BaseFilename, &h.UninstallFilesDir, &h.UninstallDisplayName,
		&h.UninstallDisplayIcon, &h.AppMutex, &h.DefaultUserInfoName,
		&h.DefaultUserInfoOrg, &h.DefaultUserInfoSerial, &h.AppReadmeFile,
		&h.AppContact, &h.AppComments, &h.AppModifyPath, &h.CreateUninstallRegKey,
		&h.Uninstallable, &h.LicenseText, &h.InfoBeforeText, &h.InfoAfterText,
		&h.SignedUninstallerSig, &h.CompiledCodeText,
	}
	for _, dst := range fields {
		if err := headerStringField(r, v, cp, dst); err != nil {
			return h, fmt.Errorf("setup header: %w", err)
		}
	}

	if !v.Unicode {
		lead, err := r.ReadFixed(len(h.LeadBytes))
		if err != nil {
			return h, fmt.Errorf("setup header lead bytes: %w", err)
		}
		copy(h.LeadBytes[:], lead)
	}

	counts := []*uint32{
		&h.NumLanguageEntries, &h.NumCustomMessageEntries, &h.NumPermissionEntries,
		&h.NumTypeEntries, &h.NumComponentEntries, &h.NumTaskEntries,
		&h.NumDirectoryEntries, &h.NumFileEntries, &h.NumFileLocationEntries,
		&h.NumIconEntries, &h.NumIniEntries, &h.NumRegistryEntries,
		&h.NumInstallDeleteEntries, &h.NumUninstallDeleteEntries,
		&h.NumRunEntries, &h.NumUninstallRunEntries,
	}
	for _, dst := range counts {
		n, err := r.ReadCount()
		if err != nil {
			return h, fmt.Errorf("setup header entry count: %w", err)
		}
		*dst = n
	}

	for _, dst := range []*uint32{&h.LicenseSize, &h.InfoBeforeSize, &h.InfoAfterSize} {
		n, err := r.ReadU32()
		if err != nil {
			return h, fmt.Errorf("setup header size: %w", err)
		}
		*dst = n
	}

	var err error
	if h.MinVersion, err = readWindowsVersion(r); err != nil {
		return h, fmt.Errorf("setup header min version: %w", err)
	}
	if h.OnlyBelowVersion, err = readWindowsVersion(r); err != nil {
		return h, fmt.Errorf("setup header only-below version: %w", err)
	}

	for _, dst := range []*uint32{&h.BackColor, &h.BackColor2, &h.WizardImageBackColor, &h.WizardSmallImageBackColor} {
		n, err := r.ReadU32()
		if err != nil {
			return h, fmt.Errorf("setup header color: %w", err)
		}
		*dst = n
	}

	opts, err := r.ReadU64()
	if err != nil {
		return h, fmt.Errorf("setup header options: %w", err)
	}
	h.Options = SetupHeaderOptions(opts)

	if h.Options&(ShPassword|ShEncryptionUsed) != 0 {
		if h.PasswordType, err = r.ReadU32(); err != nil {
			return h, fmt.Errorf("setup header password type: %w", err)
		}
	}

	if h.ExtraDiskSpaceRequired, err = r.ReadU64(); err != nil {
		return h, fmt.Errorf("setup header extra disk space: %w", err)
	}
	if h.SlicesPerDisk, err = r.ReadU32(); err != nil {
		return h, fmt.Errorf("setup header slices per disk: %w", err)
	}

	installMode, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header install mode: %w", err)
	}
	if installMode > uint8(VerySilentInstallMode) {
		return h, fmt.Errorf("install mode %d: %w", installMode, ErrInvalidEnumValue)
	}
	h.InstallMode = InstallMode(installMode)

	if h.UninstallLogMode, err = r.ReadU8(); err != nil {
		return h, fmt.Errorf("setup header uninstall log mode: %w", err)
	}
	if h.UninstallStyle, err = r.ReadU8(); err != nil {
		return h, fmt.Errorf("setup header uninstall style: %w", err)
	}
	if h.DirExistsWarning, err = r.ReadU8(); err != nil {
		return h, fmt.Errorf("setup header dir exists warning: %w", err)
	}

	priv, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header privileges required: %w", err)
	}
	if priv > uint8(LowestPrivileges) {
		return h, fmt.Errorf("privileges required %d: %w", priv, ErrInvalidEnumValue)
	}
	h.PrivilegesRequired = PrivilegesRequired(priv)

	if h.ShowLanguageDialog, err = r.ReadU8(); err != nil {
		return h, fmt.Errorf("setup header show language dialog: %w", err)
	}

	langDetect, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header language detection: %w", err)
	}
	if langDetect > uint8(LocaleLanguageDetection) {
		return h, fmt.Errorf("language detection method %d: %w", langDetect, ErrInvalidEnumValue)
	}
	h.LanguageDetectionMethod = LanguageDetectionMethod(langDetect)

	compress, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header compress method: %w", err)
	}
	if compress > uint8(CompressLZMA2) {
		return h, fmt.Errorf("compress method %d: %w", compress, ErrInvalidEnumValue)
	}
	h.CompressMethod = CompressMethod(compress)

	if h.ArchitecturesAllowed, err = r.ReadU16(); err != nil {
		return h, fmt.Errorf("setup header architectures allowed: %w", err)
	}
	if h.ArchitecturesInstallIn64BitMode, err = r.ReadU16(); err != nil {
		return h, fmt.Errorf("setup header architectures install in 64-bit mode: %w", err)
	}

	if h.Options&ShSignedUninstaller != 0 {
		if h.SignedUninstallerOrigSize, err = r.ReadU32(); err != nil {
			return h, fmt.Errorf("setup header signed uninstaller size: %w", err)
		}
		if h.SignedUninstallerHdrChecksum, err = r.ReadU32(); err != nil {
			return h, fmt.Errorf("setup header signed uninstaller checksum: %w", err)
		}
	}

	disableDir, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header disable dir page: %w", err)
	}
	h.DisableDirPage = AutoBoolean(disableDir)

	disableGroup, err := r.ReadU8()
	if err != nil {
		return h, fmt.Errorf("setup header disable program group page: %w", err)
	}
	h.DisableProgramGroupPage = AutoBoolean(disableGroup)

	if h.UninstallDisplaySize, err = r.ReadU64(); err != nil {
		return h, fmt.Errorf("setup header uninstall display size: %w", err)
	}

	return h, nil
}

// readWindowsVersion reads a packed Windows/NT/service-pack version triple.
func readWindowsVersion(r *reader) (WindowsVersion, error) {
	var w WindowsVersion
	var err error
	if w.Win, err = r.ReadU32(); err != nil {
		return w, err
	}
	if w.NTWin, err = r.ReadU32(); err != nil {
		return w, err
	}
	if w.NTSP, err = r.ReadU16(); err != nil {
		return w, err
	}
	return w, nil
}
