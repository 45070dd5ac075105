// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import "errors"

// Sentinel errors for the top-level error taxonomy. Wrap these with
// fmt.Errorf("...: %w", Err...) at call sites that have extra context
// (record index, field name, offset) to preserve errors.Is matching.
var (
	// ErrIo is returned when the underlying read failed or the host file
	// is empty.
	ErrIo = errors.New("innosetup: i/o error")

	// ErrNoLoader is returned when a located offset table (or the offset0
	// it yields) points beyond the end of the host file. A file in which no
	// generation matches is not an error: it is decoded as a non-installer
	// data file with offset0 = 0.
	ErrNoLoader = errors.New("innosetup: no setup loader offset table found")

	// ErrLoaderCRCMismatch is returned when an offset table generation was
	// found but its own trailing CRC-32 does not verify.
	ErrLoaderCRCMismatch = errors.New("innosetup: setup loader offset table CRC mismatch")

	// ErrUnknownVersion is returned when the version stamp parses but maps
	// to no entry in the compatibility matrix.
	ErrUnknownVersion = errors.New("innosetup: unrecognized setup data version")

	// ErrBlockCRCMismatch is returned when a block container chunk's
	// leading CRC-32 does not match its payload.
	ErrBlockCRCMismatch = errors.New("innosetup: block chunk CRC mismatch")

	// ErrDecompress is returned when the inner compressed stream is
	// truncated or structurally invalid.
	ErrDecompress = errors.New("innosetup: decompression failed")

	// ErrTruncated is returned when a read runs past the end of the
	// available stream while parsing a record.
	ErrTruncated = errors.New("innosetup: truncated stream")

	// ErrOversizeString is returned when a length-prefixed string's
	// declared length exceeds the configured sanity ceiling.
	ErrOversizeString = errors.New("innosetup: string length exceeds sanity ceiling")

	// ErrOversizeCount is returned when a record count field exceeds the
	// configured sanity ceiling.
	ErrOversizeCount = errors.New("innosetup: entry count exceeds sanity ceiling")

	// ErrInvalidEnumValue is returned when an enum discriminant has no
	// defined (or reserved) meaning for the decoded version.
	ErrInvalidEnumValue = errors.New("innosetup: invalid enum value")

	// ErrInvalidEncoding is returned when legacy-codepage or UTF-16
	// transcoding fails.
	ErrInvalidEncoding = errors.New("innosetup: invalid string encoding")
)
