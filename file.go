// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// Options configures a decode, mirroring the teacher's pe.Options shape:
// sane defaults, override only what you need.
type Options struct {
	// MaxStringLength bounds any single length-prefixed string read,
	// default 64 MiB (spec.md §5).
	MaxStringLength uint32

	// MaxEntryCount bounds any single num_*_entries count field before
	// its backing slice is allocated, default 2^24 (spec.md §5).
	MaxEntryCount uint32

	// Logger receives warnings for recoverable conditions (out-of-range
	// language index, rejected newer loader generation, …). Defaults to
	// a stderr logger filtered to warnings and above.
	Logger log.Logger
}

func (o *Options) helper() *log.Helper {
	logger := o.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stderr)
	}
	return log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelWarn)))
}

// Source is an open host executable: the self-extracting stub plus its
// embedded metadata and payload streams. It owns the memory-mapped file for
// the lifetime of a decode and is not safe for concurrent use (the decode
// pipeline in §5 is strictly single-threaded and sequential).
type Source struct {
	data mmap.MMap
	f    *os.File
	opts Options
}

// Open memory-maps the host executable at path for random, positioned
// access, matching the "read-only, random access" input contract of
// spec.md §6.
func Open(path string, opts *Options) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIo, err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrIo, err)
	}
	return newSource(data, f, opts), nil
}

// OpenBytes wraps an in-memory buffer (e.g. already read over the network
// or out of an archive) the same way Open wraps a mapped file.
func OpenBytes(data []byte, opts *Options) *Source {
	return newSource(mmap.MMap(data), nil, opts)
}

func newSource(data mmap.MMap, f *os.File, opts *Options) *Source {
	s := &Source{data: data, f: f}
	if opts != nil {
		s.opts = *opts
	}
	return s
}

// Close releases the memory mapping and the underlying file handle, if any.
func (s *Source) Close() error {
	if s.f == nil {
		// OpenBytes: the buffer belongs to the caller and was never mapped.
		return nil
	}
	if s.data != nil {
		_ = s.data.Unmap()
	}
	return s.f.Close()
}

// Decode runs the full pipeline (§2 data flow): locate offsets, identify
// the version, open the CRC-checked block stream, decompress it, and parse
// the version-dispatched record sequence into a pure Installer value.
func (s *Source) Decode() (*Installer, error) {
	state := stateInit
	helper := s.opts.helper()

	if len(s.data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrIo)
	}

	ins := &Installer{}

	warn := func(msg string) {
		ins.Warnings = append(ins.Warnings, msg)
		helper.Warnf("innosetup: %s", msg)
	}

	offsets, err := locateOffsets(s.data, warn)
	if err != nil {
		state = stateFailed
		helper.Errorf("innosetup: offset table: %v (state=%v)", err, state)
		return nil, err
	}
	ins.Offsets = offsets
	state = stateOffsetsLoaded

	if offsets.Offset0 >= uint64(len(s.data)) {
		state = stateFailed
		return nil, fmt.Errorf("offset0 %#x beyond file size: %w", offsets.Offset0, ErrNoLoader)
	}

	cursor := bytes.NewReader(s.data[offsets.Offset0:])
	vr := newReader(cursor, s.maxStringLength(), s.maxEntryCount())

	version, err := identifyVersion(vr)
	if err != nil {
		state = stateFailed
		return nil, err
	}
	ins.Version = version
	state = stateVersionRead

	hdr, err := readBlockHeader(vr)
	if err != nil {
		state = stateFailed
		return nil, err
	}
	state = stateBlockOpen

	block := newBlockReader(cursor, hdr)

	method := selectCompressMethod(version, hdr.Compressed)
	stream, err := newDecompressor(block, version, method)
	if err != nil {
		state = stateFailed
		return nil, err
	}
	state = stateDecompressing

	state = stateParsing
	if err := parseRecords(stream, version, ins, helper, s.maxStringLength(), s.maxEntryCount()); err != nil {
		state = stateFailed
		return nil, err
	}

	state = stateDone
	helper.Debugf("innosetup: decode complete (state=%v)", state)
	return ins, nil
}

func (s *Source) maxStringLength() uint32 {
	return s.opts.MaxStringLength
}

func (s *Source) maxEntryCount() uint32 {
	return s.opts.MaxEntryCount
}

// Decode is a convenience wrapper over Open+Decode+Close for callers that
// just want an Installer from a path.
func Decode(path string, opts *Options) (*Installer, error) {
	s, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Decode()
}

// DecodeBytes is the OpenBytes counterpart of Decode.
func DecodeBytes(data []byte, opts *Options) (*Installer, error) {
	s := OpenBytes(data, opts)
	defer s.Close()
	return s.Decode()
}
