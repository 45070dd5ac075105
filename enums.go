// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "fmt"

// ChecksumMode identifies the checksum algorithm covering the embedded
// exe stub referenced by Offsets.
type ChecksumMode uint8

const (
	ChecksumAdler32 ChecksumMode = iota
	ChecksumCRC32
)

func (m ChecksumMode) String() string {
	if m == ChecksumAdler32 {
		return "Adler32"
	}
	return "CRC32"
}

// CompressMethod identifies the inner-stream decompression algorithm
// selected by SetupHeader.CompressMethod / the block header's compressed
// flag (§4.F).
type CompressMethod uint8

const (
	CompressStore CompressMethod = iota
	CompressZlib
	CompressBZip2
	CompressLZMA1
	CompressLZMA2
)

func (m CompressMethod) String() string {
	switch m {
	case CompressStore:
		return "Store"
	case CompressZlib:
		return "Zlib"
	case CompressBZip2:
		return "BZip2"
	case CompressLZMA1:
		return "LZMA1"
	case CompressLZMA2:
		return "LZMA2"
	default:
		return fmt.Sprintf("CompressMethod(%d)", uint8(m))
	}
}

// PrivilegesRequired models the installer's required install-time
// privilege level.
type PrivilegesRequired uint8

const (
	NoPrivileges PrivilegesRequired = iota
	PowerUserPrivileges
	AdminPrivileges
	LowestPrivileges
)

// InstallMode selects normal, silent, or very-silent install behavior.
type InstallMode uint8

const (
	NormalInstallMode InstallMode = iota
	SilentInstallMode
	VerySilentInstallMode
)

// LanguageDetectionMethod selects how the default UI language is chosen.
type LanguageDetectionMethod uint8

const (
	NoLanguageDetection LanguageDetectionMethod = iota
	UILanguageDetection
	LocaleLanguageDetection
)

// AutoBoolean is Inno Setup's tri-state yes/no/auto option type, used by
// several SetupHeader fields (e.g. DisableDirPage, DisableProgramGroupPage).
type AutoBoolean uint8

const (
	AutoBooleanAuto AutoBoolean = iota
	AutoBooleanYes
	AutoBooleanNo
)

// SetupTypeKind distinguishes a user-defined install type from the
// built-in full/compact/custom kinds.
type SetupTypeKind uint8

const (
	SetupTypeUser SetupTypeKind = iota
	SetupTypeDefaultFull
	SetupTypeDefaultCompact
	SetupTypeDefaultCustom
)

// FileEntryKind distinguishes an ordinary payload file from the two
// installer-internal kinds that reuse the same record layout.
type FileEntryKind uint8

const (
	FileEntryUserFile FileEntryKind = iota
	FileEntryUninstExe
	FileEntryRegSvrExe
)
