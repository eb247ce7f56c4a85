// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// +build !amd64 appengine

package epistasimd

// popcountTable[b] is the number of set bits in byte b, used on platforms
// where we don't want to assume a fast uint64 popcount (mirrors the table
// lookup shape of biosimd/count_generic.go, which does the same for nibble
// sets rather than raw popcount).
var popcountTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		c := byte(0)
		for v := i; v != 0; v >>= 1 {
			c += byte(v & 1)
		}
		t[i] = c
	}
	return t
}()

// AndPopcount ANDs a and b byte-by-byte and returns the total popcount of
// the result. Both slices must be the same length.
func AndPopcount(a, b []byte) int {
	cnt := 0
	for i := range a {
		cnt += int(popcountTable[a[i]&b[i]])
	}
	return cnt
}

// OrInto ORs a and b byte-by-byte into dst, which must be the same length
// as a and b.
func OrInto(dst, a, b []byte) {
	for i := range a {
		dst[i] = a[i] | b[i]
	}
}

// Popcount returns the number of set bits in buf.
func Popcount(buf []byte) int {
	cnt := 0
	for _, b := range buf {
		cnt += int(popcountTable[b])
	}
	return cnt
}
