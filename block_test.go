// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// buildBlock frames payload into one or more chunkSize CRC-protected chunks,
// as readBlockHeader/newBlockReader expect to find them right after the
// BlockHeader.
func buildBlock(payload []byte) []byte {
	engine := newCRC32Engine()
	var out bytes.Buffer
	for len(payload) > 0 {
		n := chunkSize
		if n > len(payload) {
			n = len(payload)
		}
		chunk := payload[:n]
		payload = payload[n:]
		crc := engine.Sum(chunk)
		binary.Write(&out, binary.LittleEndian, crc)
		out.Write(chunk)
	}
	return out.Bytes()
}

func TestBlockReaderRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("inno"), 2000) // > one chunk
	framed := buildBlock(payload)

	hdr := blockHeader{StoredSize: uint32(len(framed)), Compressed: false}
	br := newBlockReader(bytes.NewReader(framed), hdr)

	got, err := io.ReadAll(br)
	if err != nil {
		t.Fatalf("ReadAll() unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round-tripped %d bytes, want %d bytes equal to payload", len(got), len(payload))
	}
}

func TestBlockReaderCRCMismatch(t *testing.T) {
	payload := []byte("hello world")
	framed := buildBlock(payload)
	framed[4] ^= 0xff // corrupt a payload byte, CRC no longer matches

	hdr := blockHeader{StoredSize: uint32(len(framed)), Compressed: false}
	br := newBlockReader(bytes.NewReader(framed), hdr)

	_, err := io.ReadAll(br)
	if !errors.Is(err, ErrBlockCRCMismatch) {
		t.Fatalf("ReadAll() err = %v, want %v", err, ErrBlockCRCMismatch)
	}
}

func TestBlockReaderTruncated(t *testing.T) {
	payload := []byte("hello world")
	framed := buildBlock(payload)
	framed = framed[:len(framed)-2] // cut the payload short

	hdr := blockHeader{StoredSize: uint32(len(framed) + 2), Compressed: false}
	br := newBlockReader(bytes.NewReader(framed), hdr)

	_, err := io.ReadAll(br)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadAll() err = %v, want %v", err, ErrTruncated)
	}
}

func TestReadBlockHeader(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1234))
	buf.WriteByte(1)

	r := newReader(&buf, 0, 0)
	hdr, err := readBlockHeader(r)
	if err != nil {
		t.Fatalf("readBlockHeader() unexpected error: %v", err)
	}
	if hdr.StoredSize != 1234 || !hdr.Compressed {
		t.Errorf("readBlockHeader() = %+v, want {1234 true}", hdr)
	}
}
