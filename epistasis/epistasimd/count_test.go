package epistasimd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srikanthkris/hpg-variant/epistasis/epistasimd"
)

func TestAndPopcount(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	for i := 0; i < 16; i++ {
		a[i] = 0xFF
	}
	for i := 8; i < 24; i++ {
		b[i] = 0xFF
	}
	// overlap is bytes [8,16): 8 bytes fully set in both.
	assert.Equal(t, 8*8, epistasimd.AndPopcount(a, b))
}

func TestAndPopcountAllZero(t *testing.T) {
	a := make([]byte, 24)
	b := make([]byte, 24)
	assert.Equal(t, 0, epistasimd.AndPopcount(a, b))
}

func TestOrInto(t *testing.T) {
	a := []byte{0xF0, 0x00, 0x0F}
	b := []byte{0x0F, 0xFF, 0x00}
	dst := make([]byte, 3)
	epistasimd.OrInto(dst, a, b)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x0F}, dst)
}

func TestPopcount(t *testing.T) {
	assert.Equal(t, 0, epistasimd.Popcount(make([]byte, 10)))
	assert.Equal(t, 8, epistasimd.Popcount([]byte{0xFF}))
	assert.Equal(t, 16, epistasimd.Popcount([]byte{0xFF, 0xFF}))
}
