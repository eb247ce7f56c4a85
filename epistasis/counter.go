package epistasis

import (
	"sync"

	"github.com/srikanthkris/hpg-variant/epistasis/epistasimd"
)

var (
	cellTableMu    sync.Mutex
	cellTableCache = map[int][][]int{}
)

// CellTable returns the 3^order genotype-permutation cells for a given
// tuple order, memoized per order value — generated once and reused across
// every tuple and row for that order, matching the original's single
// upfront get_genotype_combinations call (supplemented from
// original_source, §4.7).
func CellTable(order int) [][]int {
	cellTableMu.Lock()
	defer cellTableMu.Unlock()
	if cached, ok := cellTableCache[order]; ok {
		return cached
	}
	cells := [][]int{{}}
	for i := 0; i < order; i++ {
		next := make([][]int, 0, len(cells)*3)
		for _, c := range cells {
			for gt := 0; gt < 3; gt++ {
				combo := make([]int, len(c)+1)
				copy(combo, c)
				combo[len(c)] = gt
				next = append(next, combo)
			}
		}
		cells = next
	}
	cellTableCache[order] = cells
	return cells
}

// CountCombinations computes, for one row of buf, the affected and
// unaffected sample counts satisfying each cell in cells: for cell c, AND
// together the order chosen per-SNP gt-blocks (cells[i] selects the
// genotype code for SNP i), then popcount the affected and unaffected
// halves independently and divide by 8 (each byte contributes 8 set bits
// per positive sample, spec §4.7). The affected and unaffected sweeps are
// independent passes, matching the original's separate loops. The AND of
// the first order-1 blocks is accumulated plainly; the last block is
// folded in and counted in one step via epistasimd.AndPopcount, the same
// _mm_and_si128+_mm_popcnt_u64 pairing model.c uses.
func CountCombinations(buf *MaskBuffer, row int, cells [][]int) (countsAff, countsUnaff []int) {
	layout := buf.Layout()
	order := buf.Order()
	countsAff = make([]int, len(cells))
	countsUnaff = make([]int, len(cells))

	for ci, cell := range cells {
		blocks := make([][]byte, order)
		for snpIdx := 0; snpIdx < order; snpIdx++ {
			blocks[snpIdx] = buf.Block(row, snpIdx, cell[snpIdx])
		}
		last := blocks[order-1]

		if order == 1 {
			countsAff[ci] = epistasimd.Popcount(last[:layout.A2]) / 8
			countsUnaff[ci] = epistasimd.Popcount(last[layout.A2:]) / 8
			continue
		}

		var acc []byte
		if order > 2 {
			acc = make([]byte, layout.SamplesPerMask())
			copy(acc, blocks[0])
			for snpIdx := 1; snpIdx < order-1; snpIdx++ {
				for i := range acc {
					acc[i] &= blocks[snpIdx][i]
				}
			}
		} else {
			acc = blocks[0]
		}

		countsAff[ci] = epistasimd.AndPopcount(acc[:layout.A2], last[:layout.A2]) / 8
		countsUnaff[ci] = epistasimd.AndPopcount(acc[layout.A2:], last[layout.A2:]) / 8
	}
	return countsAff, countsUnaff
}
