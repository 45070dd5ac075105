// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// loaderGeneration identifies one historical layout of the setup loader
// offset table (§4.C step 2). Generations are tried newest-first; the first
// one whose magic is found AND whose trailing CRC-32 verifies wins.
type loaderGeneration int

const (
	// genCurrent is today's layout: exe_* fields present, two payload
	// offsets (offset0 for metadata, offset1 for a second data stream).
	genCurrent loaderGeneration = iota
	// genExeFields adds the exe_* subfields (checksum of the embedded
	// decompressor stub) but still has a single payload offset.
	genExeFields
	// genLegacy is the oldest layout: no exe_* fields, single offset.
	genLegacy
)

// generationMagic is the byte sequence identifying each generation, scanned
// for from the end of the file when the terminal trailer (below) is absent
// -- e.g. in a self-extracting archive that was re-packaged and lost its
// final bytes.
var generationMagic = map[loaderGeneration][]byte{
	genCurrent:   []byte("rDlPtS07"),
	genExeFields: []byte("rDlPtS05"),
	genLegacy:    []byte("rDlPtS02"),
}

// generationOrder is newest to oldest, the tie-break order required by
// spec.md §4.C ("newest generation wins when multiple match").
var generationOrder = []loaderGeneration{genCurrent, genExeFields, genLegacy}

// terminalTrailerSize is the fixed-size footer written at the very end of
// the host file by current-generation installers, pointing at the offset
// table so the common case never needs to scan the file.
const terminalTrailerSize = 24

var terminalSignature = []byte("InnoSetupLdrTrailer\x00")

// locateOffsets implements the full §4.C algorithm: try the terminal
// trailer, else scan for a generation magic; read the matching layout;
// verify its CRC; fall back to the next older generation on mismatch;
// finally fall back to treating the file as a non-installer data file.
func locateOffsets(data []byte, warn func(string)) (Offsets, error) {
	if len(data) == 0 {
		return Offsets{}, fmt.Errorf("%w: empty file", ErrIo)
	}

	if tableOffset, ok := readTerminalTrailer(data); ok {
		if off, err := tryGenerationsAt(data, tableOffset, warn); err == nil {
			return off, nil
		}
	}

	for _, gen := range generationOrder {
		magic := generationMagic[gen]
		idx := bytes.LastIndex(data, magic)
		if idx < 0 {
			continue
		}
		off, err := parseGeneration(gen, data, idx+len(magic))
		if err != nil {
			warn(fmt.Sprintf("rejected %v generation offset table at %#x: %v", gen, idx, err))
			continue
		}
		return off, nil
	}

	// Fallback: non-installer data file produced by the same tool --
	// treat offset0 as 0 (spec.md §4.C step 4).
	return Offsets{TotalSize: uint64(len(data))}, nil
}

// readTerminalTrailer reads the fixed-size trailer at the end of the file
// and returns the offset table position it points to.
func readTerminalTrailer(data []byte) (uint32, bool) {
	if len(data) < terminalTrailerSize {
		return 0, false
	}
	trailer := data[len(data)-terminalTrailerSize:]
	if !bytes.Equal(trailer[:len(terminalSignature)], terminalSignature) {
		return 0, false
	}
	tableOffset := binary.LittleEndian.Uint32(trailer[len(terminalSignature):])
	return tableOffset, true
}

// tryGenerationsAt attempts every generation's layout at a known table
// offset, newest first, matching the same tie-break as the magic-scan path.
func tryGenerationsAt(data []byte, tableOffset uint32, warn func(string)) (Offsets, error) {
	if uint64(tableOffset) >= uint64(len(data)) {
		return Offsets{}, fmt.Errorf("table offset %#x beyond file size: %w", tableOffset, ErrNoLoader)
	}
	var lastErr error
	for _, gen := range generationOrder {
		at := int(tableOffset) + len(generationMagic[gen])
		off, err := parseGeneration(gen, data, at)
		if err == nil {
			return off, nil
		}
		warn(fmt.Sprintf("rejected %v generation offset table at %#x: %v", gen, tableOffset, err))
		lastErr = err
	}
	return Offsets{}, lastErr
}

// parseGeneration reads one generation's layout starting at data[at:], where
// at is the position immediately after that generation's magic ID string,
// and verifies its trailing CRC-32 (the last 4 bytes of the table, covering
// the preceding table bytes; the ID string itself is not CRC-covered).
func parseGeneration(gen loaderGeneration, data []byte, at int) (Offsets, error) {
	size := generationTableSize(gen)
	if at+size > len(data) {
		return Offsets{}, fmt.Errorf("table at %#x (size %d): %w", at, size, ErrTruncated)
	}
	table := data[at : at+size]
	body, crcField := table[:len(table)-4], table[len(table)-4:]
	want := binary.LittleEndian.Uint32(crcField)

	engine := newCRC32Engine()
	if err := engine.VerifySpan(body, want, fmt.Sprintf("%v offset table", gen), ErrLoaderCRCMismatch); err != nil {
		return Offsets{}, err
	}

	r := bytes.NewReader(body)
	var off Offsets
	readU32 := func() uint32 {
		var b [4]byte
		_, _ = r.Read(b[:])
		return binary.LittleEndian.Uint32(b[:])
	}
	readU64 := func() uint64 {
		var b [8]byte
		_, _ = r.Read(b[:])
		return binary.LittleEndian.Uint64(b[:])
	}

	switch gen {
	case genLegacy:
		off.TotalSize = uint64(readU32())
		off.Offset0 = uint64(readU32())
		off.MessageOffset = uint64(readU32())
	case genExeFields:
		off.TotalSize = uint64(readU32())
		off.ExeOffset = uint64(readU32())
		off.ExeCompressedSize = uint64(readU32())
		off.ExeUncompressedSize = uint64(readU32())
		off.ExeChecksum = readU32()
		off.ChecksumMode = ChecksumMode(readU32() & 1)
		off.MessageOffset = uint64(readU32())
		off.Offset0 = uint64(readU32())
	case genCurrent:
		off.TotalSize = readU64()
		off.ExeOffset = readU64()
		off.ExeCompressedSize = readU64()
		off.ExeUncompressedSize = readU64()
		off.ExeChecksum = readU32()
		off.ChecksumMode = ChecksumMode(readU32() & 1)
		off.MessageOffset = readU64()
		off.Offset0 = readU64()
		off.Offset1 = readU64()
	}

	if off.Offset0 > uint64(len(data)) || off.Offset1 > uint64(len(data)) {
		return Offsets{}, fmt.Errorf("offset table at %#x: offsets beyond file size: %w", at, ErrNoLoader)
	}

	return off, nil
}

// generationTableSize returns the fixed byte size (including the trailing
// CRC-32) of a given generation's layout.
func generationTableSize(gen loaderGeneration) int {
	switch gen {
	case genLegacy:
		return 4*3 + 4
	case genExeFields:
		return 4*8 + 4
	case genCurrent:
		return 8*7 + 4*2 + 4
	default:
		return 0
	}
}

func (g loaderGeneration) String() string {
	switch g {
	case genCurrent:
		return "current"
	case genExeFields:
		return "exe-fields"
	case genLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}
