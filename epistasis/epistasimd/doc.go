// Package epistasimd provides SIMD-lane-shaped primitives for the epistasis
// mask engine: a 16-byte-aligned allocator for mask regions, and AND+popcount
// over those masks. It mirrors biosimd's amd64/generic split for the same
// reason biosimd does: the compiler cannot be trusted to autovectorize a
// byte-wise AND-and-count loop, so the amd64 path processes 8 bytes at a
// time as a uint64 and leans on math/bits.OnesCount64, which already lowers
// to a native POPCNT instruction on amd64 — no cgo or assembly required to
// get the same instruction selection the original's _mm_and_si128 /
// _mm_popcnt_u64 pairing produced.
package epistasimd
