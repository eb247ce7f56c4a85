// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// +build amd64,!appengine

package epistasimd

import (
	"encoding/binary"
	"math/bits"
)

// AndPopcount ANDs a and b lane-by-lane and returns the total popcount of
// the result. Both slices must be the same length. Mask blocks are a
// multiple of 16 bytes (C6), so a 16-byte lane is consumed as two uint64
// words; any bytes past the last full word are counted one at a time.
// math/bits.OnesCount64 does the word counting, which compiles to a
// single POPCNT instruction on amd64 — the same work the original's
// _mm_and_si128 + _mm_popcnt_u64 pairing did explicitly.
func AndPopcount(a, b []byte) int {
	n := len(a)
	cnt := 0
	i := 0
	for ; i+8 <= n; i += 8 {
		word := binary.LittleEndian.Uint64(a[i:i+8]) & binary.LittleEndian.Uint64(b[i:i+8])
		cnt += bits.OnesCount64(word)
	}
	for ; i < n; i++ {
		cnt += bits.OnesCount8(a[i] & b[i])
	}
	return cnt
}

// OrInto ORs a and b lane-by-lane into dst, which must be the same length
// as a and b. Used by the evaluator (C9) to build a predicted-positive mask
// from the union of every flagged cell's mask.
func OrInto(dst, a, b []byte) {
	n := len(a)
	i := 0
	for ; i+8 <= n; i += 8 {
		word := binary.LittleEndian.Uint64(a[i:i+8]) | binary.LittleEndian.Uint64(b[i:i+8])
		binary.LittleEndian.PutUint64(dst[i:i+8], word)
	}
	for ; i < n; i++ {
		dst[i] = a[i] | b[i]
	}
}

// Popcount returns the number of set bits in buf.
func Popcount(buf []byte) int {
	cnt := 0
	i := 0
	for ; i+8 <= len(buf); i += 8 {
		cnt += bits.OnesCount64(binary.LittleEndian.Uint64(buf[i : i+8]))
	}
	for ; i < len(buf); i++ {
		cnt += bits.OnesCount8(buf[i])
	}
	return cnt
}
