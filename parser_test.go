// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/text/encoding/unicode"
)

func testHelper() *log.Helper {
	return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError)))
}

// versionedStrField writes one length-prefixed string using the encoding
// ReadVersionedString/ReadUnicodeString expects for v: UTF-16LE when v is a
// Unicode-variant version, raw bytes otherwise.
func versionedStrField(buf *bytes.Buffer, s string, v Version) {
	if !v.Unicode {
		strField(buf, s)
		return
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	binary.Write(buf, binary.LittleEndian, uint32(len(encoded)))
	buf.Write(encoded)
}

func buildLanguageEntryBytes(name string, v Version) []byte {
	var buf bytes.Buffer
	versionedStrField(&buf, name, v)
	// LanguageName is always read as a UTF-16LE string, regardless of v.
	versionedStrField(&buf, "", Version{Unicode: true})
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	versionedStrField(&buf, "", v)
	binary.Write(&buf, binary.LittleEndian, uint32(0x0409))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(8))
	binary.Write(&buf, binary.LittleEndian, uint32(23))
	binary.Write(&buf, binary.LittleEndian, uint32(9))
	binary.Write(&buf, binary.LittleEndian, uint32(12))
	binary.Write(&buf, binary.LittleEndian, uint32(8))
	buf.WriteByte(0)
	return buf.Bytes()
}

// buildCustomMessageBytes writes one CustomMessageEntry. name always follows
// v's encoding; value is written as raw UTF-16LE bytes when v.Unicode (the
// branch parser.go's decodeUTF16Bytes expects), or v's legacy codepage
// otherwise.
func buildCustomMessageBytes(name, value string, language int32, v Version) []byte {
	var buf bytes.Buffer
	versionedStrField(&buf, name, v)
	if v.Unicode {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
		encoded, err := enc.Bytes([]byte(value))
		if err != nil {
			panic(err)
		}
		binary.Write(&buf, binary.LittleEndian, uint32(len(encoded)))
		buf.Write(encoded)
	} else {
		strField(&buf, value)
	}
	binary.Write(&buf, binary.LittleEndian, language)
	return buf.Bytes()
}

func TestParseRecordsMinimalUnicodeInstaller(t *testing.T) {
	v := Version{5, 3, 10, true}
	var stream bytes.Buffer

	hb := newHeaderBuilder(true)
	hb.numMessages = 1
	header := hb.build(1, 0, CompressLZMA1)
	stream.Write(header)
	stream.Write(buildLanguageEntryBytes("english", v))
	stream.Write(buildCustomMessageBytes("SetupAppTitle", "Setup", -1, v))

	ins := &Installer{}
	err := parseRecords(&stream, v, ins, testHelper(), 0, 0)
	if err != nil {
		t.Fatalf("parseRecords() unexpected error: %v", err)
	}
	if len(ins.Languages) != 1 || ins.Languages[0].Name != "english" {
		t.Fatalf("Languages = %+v, want one entry named english", ins.Languages)
	}
	if len(ins.Messages) != 1 || ins.Messages[0].Value != "Setup" {
		t.Fatalf("Messages = %+v, want one entry with value Setup", ins.Messages)
	}
	if len(ins.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", ins.Warnings)
	}
}

func TestParseRecordsPre4WizardImageSkip(t *testing.T) {
	v := Version{3, 0, 0, false}
	var stream bytes.Buffer

	header := newHeaderBuilder(false).build(0, 0, CompressZlib)
	stream.Write(header)

	// wizard_image (discarded)
	binary.Write(&stream, binary.LittleEndian, uint32(4))
	stream.Write([]byte{1, 2, 3, 4})
	// wizard_small_image (version > 1.3.26, also discarded)
	binary.Write(&stream, binary.LittleEndian, uint32(2))
	stream.Write([]byte{5, 6})

	ins := &Installer{}
	err := parseRecords(&stream, v, ins, testHelper(), 0, 0)
	if err != nil {
		t.Fatalf("parseRecords() unexpected error: %v", err)
	}
}

func TestParseRecordsOutOfRangeMessageLanguageWarns(t *testing.T) {
	v := Version{5, 3, 10, false}
	var stream bytes.Buffer

	hb := newHeaderBuilder(v.Unicode)
	hb.numMessages = 1
	header := hb.build(0, 0, CompressLZMA1)
	stream.Write(header)
	stream.Write(buildCustomMessageBytes("SetupAppTitle", "Setup", 3, v)) // no languages exist

	ins := &Installer{}
	err := parseRecords(&stream, v, ins, testHelper(), 0, 0)
	if err != nil {
		t.Fatalf("parseRecords() unexpected error: %v", err)
	}
	if len(ins.Warnings) == 0 {
		t.Errorf("expected a warning for the out-of-range message language")
	}
}

func TestParseRecordsTruncatedHeaderFails(t *testing.T) {
	v := Version{5, 3, 10, true}
	stream := bytes.NewReader([]byte{1, 2, 3})

	ins := &Installer{}
	if err := parseRecords(stream, v, ins, testHelper(), 0, 0); err == nil {
		t.Fatal("parseRecords() expected an error for a truncated header")
	}
}
