package epistasimd

import (
	"github.com/grailbio/base/errors"
	"golang.org/x/sys/unix"
)

// Alloc returns a zeroed, 16-byte-aligned byte region of exactly size bytes,
// backed by an anonymous mmap so a full row of mask data never straddles a
// Go heap object the GC might move mid-SIMD-loop (mirroring fusion/kmer_index.go's
// unix.Mmap use for the same "pin this memory down" reason). Anonymous mmap
// regions are always page-aligned, which satisfies the 16-byte requirement
// with room to spare. Free must be called exactly once when the region is no
// longer needed.
func Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Errorf("epistasimd: invalid alloc size %d", size)
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.E(err, "epistasimd: mmap failed")
	}
	return buf, nil
}

// Free releases a region returned by Alloc.
func Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := unix.Munmap(buf); err != nil {
		return errors.E(err, "epistasimd: munmap failed")
	}
	return nil
}
