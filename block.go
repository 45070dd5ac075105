// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"encoding/binary"
	"fmt"
	"io"
)

// chunkSize is the historical payload size of a single CRC-protected chunk
// within a block; the final chunk of a block may be shorter.
const chunkSize = 4096

// blockHeader is read immediately after the version stamp: stored_size is
// the total length of the CRC-framed region that follows (including the
// per-chunk CRCs themselves); compressed selects whether the inner stream
// needs further decompression.
type blockHeader struct {
	StoredSize uint32
	Compressed bool
}

// readBlockHeader reads the fixed BlockHeader{u32 stored_size; u8 compressed}
// pair that precedes the chunk sequence.
func readBlockHeader(r *reader) (blockHeader, error) {
	storedSize, err := r.ReadU32()
	if err != nil {
		return blockHeader{}, fmt.Errorf("block header: %w", err)
	}
	compressedByte, err := r.ReadU8()
	if err != nil {
		return blockHeader{}, fmt.Errorf("block header: %w", err)
	}
	return blockHeader{StoredSize: storedSize, Compressed: compressedByte != 0}, nil
}

// blockReader consumes the CRC-framed outer container (§4.E) and presents
// it as a plain io.Reader of decoded chunk payload bytes, verifying each
// chunk's leading CRC-32 as it is delivered. It is stateful and must be
// read start-to-finish by a single consumer; once a chunk fails its CRC the
// reader is poisoned and every subsequent read returns the same error.
type blockReader struct {
	src       io.Reader
	engine    crc32Engine
	remaining uint32 // bytes left in StoredSize, including unread CRCs
	buf       []byte // decoded bytes from the current chunk not yet returned
	err       error
}

// newBlockReader wraps src (positioned right after the BlockHeader) given
// the header's StoredSize. The compressed flag only affects which
// decompressor wraps the returned reader (§4.F); the block reader itself
// always just de-frames chunks.
func newBlockReader(src io.Reader, hdr blockHeader) *blockReader {
	return &blockReader{src: src, engine: newCRC32Engine(), remaining: hdr.StoredSize}
}

// Read implements io.Reader, pulling and verifying whole chunks as needed.
func (b *blockReader) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(b.buf) == 0 {
		if err := b.fillChunk(); err != nil {
			b.err = err
			return 0, err
		}
	}
	n := copy(p, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// fillChunk reads and verifies the next CRC-framed chunk into b.buf. It
// sets io.EOF on b.err (returned by the next Read) once StoredSize bytes
// have been consumed.
func (b *blockReader) fillChunk() error {
	if b.remaining == 0 {
		return io.EOF
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(b.src, crcBuf[:]); err != nil {
		return fmt.Errorf("%w", ErrTruncated)
	}
	if b.remaining < 4 {
		return fmt.Errorf("%w", ErrTruncated)
	}
	b.remaining -= 4

	payloadSize := chunkSize
	if uint32(payloadSize) > b.remaining {
		payloadSize = int(b.remaining)
	}
	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(b.src, payload); err != nil {
		return fmt.Errorf("%w", ErrTruncated)
	}
	b.remaining -= uint32(payloadSize)

	want := binary.LittleEndian.Uint32(crcBuf[:])
	if err := b.engine.VerifySpan(payload, want, "block chunk", ErrBlockCRCMismatch); err != nil {
		return err
	}

	b.buf = payload
	return nil
}
