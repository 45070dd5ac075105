// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"fmt"
	"hash/crc32"
)

// crc32Engine computes IEEE CRC-32 (polynomial 0xEDB88320) checksums over
// arbitrary byte spans. It wraps the standard library's table-driven
// implementation: no example in the corpus reaches for a third-party CRC
// library (zip, ext4 and sstable readers alike all call hash/crc32
// directly), so re-deriving the IEEE table by hand would only shadow the
// stdlib's own table for no benefit.
type crc32Engine struct{}

// newCRC32Engine returns a ready-to-use CRC-32 engine. The zero value is
// also usable; the constructor exists so call sites read as "acquire the
// engine" rather than a bare struct literal.
func newCRC32Engine() crc32Engine {
	return crc32Engine{}
}

// Sum returns the IEEE CRC-32 of data.
func (crc32Engine) Sum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Verify reports whether data's CRC-32 equals want.
func (e crc32Engine) Verify(data []byte, want uint32) bool {
	return e.Sum(data) == want
}

// VerifySpan checksums data and, if it does not equal want, returns mismatch
// wrapped with context. Used identically by the offset table's own trailing
// CRC (§4.C, with mismatch = ErrLoaderCRCMismatch) and by each block chunk
// (§4.E, with mismatch = ErrBlockCRCMismatch).
func (e crc32Engine) VerifySpan(data []byte, want uint32, context string, mismatch error) error {
	if !e.Verify(data, want) {
		return fmt.Errorf("%s: %w", context, mismatch)
	}
	return nil
}
