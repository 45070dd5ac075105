// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildHostFile assembles a full synthetic host executable: an arbitrary
// stub prefix, a version stamp + block header + CRC-framed block at
// offset0 holding recordsBody, followed by a legacy-generation offset table
// appended at the end of the file (found by locateOffsets' magic scan).
func buildHostFile(banner string, blockCompressed bool, recordsBody []byte) []byte {
	stub := bytes.Repeat([]byte{0xcc}, 128)
	offset0 := uint32(len(stub))
	framed := buildBlock(recordsBody)

	var at0 bytes.Buffer
	at0.Write(stampBytes(banner))
	binary.Write(&at0, binary.LittleEndian, uint32(len(framed)))
	if blockCompressed {
		at0.WriteByte(1)
	} else {
		at0.WriteByte(0)
	}
	at0.Write(framed)

	data := append(append([]byte{}, stub...), at0.Bytes()...)

	const legacyTableSize = 8 + 12 + 4 // magic + fields + CRC-32
	table := buildLegacyTable(uint32(len(data)+legacyTableSize), offset0, 0)
	return append(data, table...)
}

func TestSourceDecodeMinimalLegacyInstaller(t *testing.T) {
	header := newHeaderBuilder(false).build(0, 0, CompressStore)
	var records bytes.Buffer
	records.Write(header)
	binary.Write(&records, binary.LittleEndian, uint32(0)) // wizard_image, empty
	binary.Write(&records, binary.LittleEndian, uint32(0)) // wizard_small_image, empty

	data := buildHostFile("Inno Setup Setup Data (3.0.0)", false, records.Bytes())

	ins, err := DecodeBytes(data, nil)
	if err != nil {
		t.Fatalf("DecodeBytes() unexpected error: %v", err)
	}
	if ins.Version != (Version{3, 0, 0, false}) {
		t.Errorf("Version = %+v, want {3 0 0 false}", ins.Version)
	}
	if ins.Header.InstallMode != NormalInstallMode {
		t.Errorf("Header.InstallMode = %v, want %v", ins.Header.InstallMode, NormalInstallMode)
	}
	if len(ins.Languages) != 0 || len(ins.Files) != 0 {
		t.Errorf("expected no languages or files, got %d languages, %d files", len(ins.Languages), len(ins.Files))
	}
	if len(ins.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", ins.Warnings)
	}
}

func TestSourceDecodeEmptyFile(t *testing.T) {
	_, err := DecodeBytes(nil, nil)
	if !errors.Is(err, ErrIo) {
		t.Fatalf("DecodeBytes() err = %v, want %v", err, ErrIo)
	}
}

func TestSourceDecodeTruncatedHostFile(t *testing.T) {
	header := newHeaderBuilder(false).build(0, 0, CompressStore)
	var records bytes.Buffer
	records.Write(header)
	binary.Write(&records, binary.LittleEndian, uint32(0))
	binary.Write(&records, binary.LittleEndian, uint32(0))

	data := buildHostFile("Inno Setup Setup Data (3.0.0)", false, records.Bytes())
	data = data[:len(data)-24] // drop the appended offset table entirely

	_, err := DecodeBytes(data, nil)
	if err == nil {
		t.Fatal("DecodeBytes() expected an error once the offset table is gone")
	}
}

func TestSourceDecodeCorruptedOffsetTableFallsBack(t *testing.T) {
	header := newHeaderBuilder(false).build(0, 0, CompressStore)
	var records bytes.Buffer
	records.Write(header)
	binary.Write(&records, binary.LittleEndian, uint32(0))
	binary.Write(&records, binary.LittleEndian, uint32(0))

	data := buildHostFile("Inno Setup Setup Data (3.0.0)", false, records.Bytes())
	data[len(data)-8] ^= 0xff // corrupt a body byte inside the appended offset table

	// locateOffsets rejects the corrupted table and falls back to treating
	// the whole file as non-installer data (Offset0 = 0), so the stub's
	// filler bytes are read where a version stamp should be and decoding
	// fails downstream -- the warning itself is exercised directly in
	// TestLocateOffsetsCorruptedCRCFallsBack.
	_, err := DecodeBytes(data, nil)
	if !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("DecodeBytes() err = %v, want %v", err, ErrUnknownVersion)
	}
}

func TestOpenBytesClose(t *testing.T) {
	s := OpenBytes([]byte{0x00}, nil)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
}
