// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildLegacyTable returns the bytes of a genLegacy offset table (magic +
// fields + trailing CRC-32 over the fields) so it can be appended anywhere
// in a synthetic host file.
func buildLegacyTable(totalSize, offset0, messageOffset uint32) []byte {
	var body bytes.Buffer
	binary.Write(&body, binary.LittleEndian, totalSize)
	binary.Write(&body, binary.LittleEndian, offset0)
	binary.Write(&body, binary.LittleEndian, messageOffset)

	engine := newCRC32Engine()
	crc := engine.Sum(body.Bytes())

	var out bytes.Buffer
	out.Write(generationMagic[genLegacy])
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, crc)
	return out.Bytes()
}

func TestLocateOffsetsMagicScan(t *testing.T) {
	stub := bytes.Repeat([]byte{0xcc}, 128)
	table := buildLegacyTable(uint32(len(stub)+64), 128, 0)
	data := append(append([]byte{}, stub...), table...)

	var warnings []string
	off, err := locateOffsets(data, func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		t.Fatalf("locateOffsets() unexpected error: %v", err)
	}
	if off.Offset0 != 128 {
		t.Errorf("Offset0 = %d, want 128", off.Offset0)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestLocateOffsetsCorruptedCRCFallsBack(t *testing.T) {
	stub := bytes.Repeat([]byte{0xcc}, 16)
	table := buildLegacyTable(uint32(len(stub)), 8, 0)
	// Corrupt one body byte (right after the 8-byte magic) so the CRC check fails.
	table[len(generationMagic[genLegacy])] ^= 0xff
	data := append(append([]byte{}, stub...), table...)

	var warnings []string
	off, err := locateOffsets(data, func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		t.Fatalf("locateOffsets() unexpected error: %v", err)
	}
	if len(warnings) == 0 {
		t.Errorf("expected a warning for the rejected corrupted table")
	}
	// Falls back to treating the file as non-installer data.
	if off.Offset0 != 0 {
		t.Errorf("Offset0 = %d, want 0 (fallback)", off.Offset0)
	}
	if off.TotalSize != uint64(len(data)) {
		t.Errorf("TotalSize = %d, want %d", off.TotalSize, len(data))
	}
}

func TestLocateOffsetsEmptyFile(t *testing.T) {
	_, err := locateOffsets(nil, func(string) {})
	if err == nil {
		t.Fatal("locateOffsets() expected an error for an empty file")
	}
}

func TestLocateOffsetsNoMagicFallsBack(t *testing.T) {
	data := bytes.Repeat([]byte{0x00}, 32)
	off, err := locateOffsets(data, func(string) {})
	if err != nil {
		t.Fatalf("locateOffsets() unexpected error: %v", err)
	}
	if off.Offset0 != 0 || off.TotalSize != uint64(len(data)) {
		t.Errorf("locateOffsets() = %+v, want fallback offsets", off)
	}
}
