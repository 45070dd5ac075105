// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package innosetup

// Fuzz is a go-fuzz entry point exercising the full decode pipeline against
// arbitrary byte slices: a crash here is a parser bug, not a malformed-input
// rejection (those return a plain error and count as uninteresting).
func Fuzz(data []byte) int {
	ins, err := DecodeBytes(data, nil)
	if err != nil {
		return 0
	}
	if ins == nil {
		return 0
	}
	return 1
}
