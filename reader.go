// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// defaultMaxStringLength is the sanity ceiling applied to length-prefixed
// string reads, per spec.md §5 ("bounded by the sanity-clamped length
// prefixes, default ceiling 64 MiB per string").
const defaultMaxStringLength = 64 << 20

// defaultMaxEntryCount is the sanity ceiling applied to every num_*_entries
// field before any backing storage for it is allocated (spec.md §5).
const defaultMaxEntryCount = 1 << 24

// reader is the primitive reader (§4.A): little-endian fixed-width
// integers, booleans, fixed byte arrays, length-prefixed byte strings with
// legacy-codepage/UTF-16LE transcoding, all against a plain io.Reader. It
// generalizes the teacher's structUnpack/ReadUintNN idiom (offset-indexed
// reads against a mapped byte slice) to a sequential stream, since the
// metadata blob only becomes available byte-by-byte once decompressed.
type reader struct {
	src             io.Reader
	maxStringLength uint32
	maxEntryCount   uint32
}

// newReader wraps src with the sanity ceilings from opts (zero values fall
// back to the package defaults).
func newReader(src io.Reader, maxStringLength, maxEntryCount uint32) *reader {
	if maxStringLength == 0 {
		maxStringLength = defaultMaxStringLength
	}
	if maxEntryCount == 0 {
		maxEntryCount = defaultMaxEntryCount
	}
	return &reader{src: src, maxStringLength: maxStringLength, maxEntryCount: maxEntryCount}
}

// fill reads exactly len(buf) bytes, translating io.EOF/io.ErrUnexpectedEOF
// into ErrTruncated.
func (r *reader) fill(buf []byte) error {
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return fmt.Errorf("%w", ErrTruncated)
	}
	return nil
}

// ReadFixed reads n raw bytes.
func (r *reader) ReadFixed(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadU8 reads a little-endian uint8.
func (r *reader) ReadU8() (uint8, error) {
	var b [1]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16.
func (r *reader) ReadU16() (uint16, error) {
	var b [2]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadU32 reads a little-endian uint32.
func (r *reader) ReadU32() (uint32, error) {
	var b [4]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadU64 reads a little-endian uint64.
func (r *reader) ReadU64() (uint64, error) {
	var b [8]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadI8, ReadI16, ReadI32, ReadI64 are the signed counterparts, used for
// fields such as CustomMessageEntry.Language and the *_index sentinels
// (-1 meaning "none").
func (r *reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

func (r *reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadBool reads a one-byte boolean: any non-zero byte is true.
func (r *reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadCount reads a uint32 record count and clamps it against maxEntryCount,
// returning ErrOversizeCount before any allocation proportional to it is
// made (spec.md §8: "0xFFFFFFFF must produce OversizeCount without
// allocating proportional memory").
func (r *reader) ReadCount() (uint32, error) {
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if n > r.maxEntryCount {
		return 0, fmt.Errorf("count %d exceeds ceiling %d: %w", n, r.maxEntryCount, ErrOversizeCount)
	}
	return n, nil
}

// ReadBinaryString reads a u32-length-prefixed raw byte string, enforcing
// the sanity ceiling before allocating the backing buffer.
func (r *reader) ReadBinaryString() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > r.maxStringLength {
		return nil, fmt.Errorf("string length %d exceeds ceiling %d: %w", n, r.maxStringLength, ErrOversizeString)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadString reads a length-prefixed legacy-codepage string and transcodes
// it to UTF-8.
func (r *reader) ReadString(cp Codepage) (string, error) {
	raw, err := r.ReadBinaryString()
	if err != nil {
		return "", err
	}
	return decodeLegacyString(raw, cp)
}

// ReadUnicodeString reads a length-prefixed UTF-16LE string (the byte
// length must be even) and transcodes it to UTF-8.
func (r *reader) ReadUnicodeString() (string, error) {
	raw, err := r.ReadBinaryString()
	if err != nil {
		return "", err
	}
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("odd UTF-16LE byte length %d: %w", len(raw), ErrInvalidEncoding)
	}
	if len(raw) == 0 {
		return "", nil
	}
	out, err := utf16LEDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w", ErrInvalidEncoding)
	}
	return string(out), nil
}

// ReadVersionedString reads a string using UTF-16LE when v.Unicode is set,
// or the legacy codepage cp otherwise. The record parsers use it for most
// text fields; fields with a fixed encoding call ReadUnicodeString or
// ReadBinaryString directly.
func (r *reader) ReadVersionedString(v Version, cp Codepage) (string, error) {
	if v.Unicode {
		return r.ReadUnicodeString()
	}
	return r.ReadString(cp)
}

// utf16LEDecoder returns a fresh UTF-16LE decoder (BOM-agnostic), shared by
// ReadUnicodeString and the CustomMessageEntry value path for Unicode
// installers (parser.go's decodeUTF16Bytes).
func utf16LEDecoder() *encoding.Decoder {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
}
