// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"compress/bzip2"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzma1PreambleSize is the 5-byte properties preamble ({lc,lp,pb} packed
// byte + 4-byte dictionary size) that 5.x+ installers prepend to the raw
// LZMA1 stream. Before 5.x, these properties are the fixed defaults below.
const lzma1PreambleSize = 5

// defaultLZMAProperties are used for LZMA1 streams on versions older than
// 5.0.0, which never carry a properties preamble.
var defaultLZMAProperties = lzma.Properties{LC: 3, LP: 0, PB: 2}

const defaultLZMADictCap = 1 << 20

// lzma2FloorVersion is the version from which LZMA2 is selected over LZMA1
// for the inner stream. SetupHeader.CompressMethod itself lives inside the
// very stream this choice must unwrap, so the selection can only be driven
// off the version stamp and the block header's compressed flag -- never off
// a SetupHeader field, which is why it is resolved before a single
// SetupHeader byte has been read. See DESIGN.md's Open Questions for this
// call.
var lzma2FloorVersion = Version{5, 3, 9, false}

// selectCompressMethod resolves which decompression method applies to the
// inner stream, per §4.F: pre-4.x is driven solely by the block header's
// compressed flag -- a compressed pre-4.x block is treated as zlib, the
// historically dominant choice (a bzip2-compressed pre-4.x block degrades
// to a DecompressError rather than silently misparsing, since the two
// formats' magic bytes never agree); 4.x+ is always LZMA1 except for the
// small subset of versions that use LZMA2.
func selectCompressMethod(v Version, blockCompressed bool) CompressMethod {
	if v.Less(Version{4, 0, 0, false}) {
		if !blockCompressed {
			return CompressStore
		}
		return CompressZlib
	}
	if v.AtLeast(lzma2FloorVersion) {
		return CompressLZMA2
	}
	return CompressLZMA1
}

// newDecompressor wraps src (the de-framed block reader) with the method
// selected by selectCompressMethod, returning a sequential byte stream.
// Decompression failures are reported as ErrDecompress; the returned
// reader does not support seeking, per spec.md §4.F.
func newDecompressor(src io.Reader, v Version, method CompressMethod) (io.Reader, error) {
	switch method {
	case CompressStore:
		return src, nil

	case CompressZlib:
		zr, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", ErrDecompress)
		}
		return zr, nil

	case CompressBZip2:
		return bzip2.NewReader(src), nil

	case CompressLZMA1:
		cfg := lzma.ReaderConfig{DictCap: defaultLZMADictCap}
		if v.AtLeast(Version{5, 0, 0, false}) {
			props, dictCap, err := readLZMAPreamble(src)
			if err != nil {
				return nil, err
			}
			cfg.Properties = &props
			cfg.DictCap = dictCap
		} else {
			props := defaultLZMAProperties
			cfg.Properties = &props
		}
		lr, err := cfg.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("lzma1: %w", ErrDecompress)
		}
		return lr, nil

	case CompressLZMA2:
		cfg := lzma.Reader2Config{DictCap: defaultLZMADictCap}
		lr, err := cfg.NewReader2(src)
		if err != nil {
			return nil, fmt.Errorf("lzma2: %w", ErrDecompress)
		}
		return lr, nil

	default:
		return nil, fmt.Errorf("compress method %v: %w", method, ErrDecompress)
	}
}

// readLZMAPreamble reads the 5-byte {props-byte, dict-size} preamble that
// precedes 5.x+ LZMA1 streams and decodes it into Properties + dictionary
// capacity. A short read here is the truncated-properties failure mode
// called out in spec.md §8 scenario 6.
func readLZMAPreamble(src io.Reader) (lzma.Properties, int, error) {
	var buf [lzma1PreambleSize]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return lzma.Properties{}, 0, fmt.Errorf("lzma1 properties preamble: %w", ErrDecompress)
	}

	propByte := buf[0]
	if propByte >= 9*5*5 {
		return lzma.Properties{}, 0, fmt.Errorf("lzma1 properties byte %d out of range: %w", propByte, ErrDecompress)
	}
	props := lzma.Properties{
		LC: int(propByte % 9),
		LP: int((propByte / 9) % 5),
		PB: int(propByte / 45),
	}

	dictCap := int(buf[1]) | int(buf[2])<<8 | int(buf[3])<<16 | int(buf[4])<<24
	if dictCap <= 0 {
		dictCap = defaultLZMADictCap
	}

	return props, dictCap, nil
}
