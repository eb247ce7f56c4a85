package epistasis

import (
	"github.com/grailbio/base/errors"

	"github.com/srikanthkris/hpg-variant/epistasis/epistasimd"
)

// MaskBuffer is the "buffer owner" (Design Notes) for one worker's mask
// region: a single contiguous, 16-byte-aligned allocation holding rows rows
// of order-SNP masks, per MaskLayout. A MaskBuffer is never shared across
// goroutines without explicit synchronization — one per worker, per §5's
// "mask region is per-thread" rule.
type MaskBuffer struct {
	layout MaskLayout
	order  int
	rows   int
	data   []byte
}

// NewMaskBuffer allocates a mask region sized for rows rows of order-SNP
// masks under layout.
func NewMaskBuffer(layout MaskLayout, rows, order int) (*MaskBuffer, error) {
	if rows <= 0 || order <= 0 {
		return nil, errors.Errorf("epistasis: NewMaskBuffer requires rows>0 and order>0, got rows=%d order=%d", rows, order)
	}
	size := rows * layout.RowStride(order)
	data, err := epistasimd.Alloc(size)
	if err != nil {
		return nil, errors.E(err, "epistasis: allocating mask buffer")
	}
	return &MaskBuffer{layout: layout, order: order, rows: rows, data: data}, nil
}

// Close releases the underlying mmap region. Callers must not use the
// MaskBuffer afterwards.
func (b *MaskBuffer) Close() error {
	return epistasimd.Free(b.data)
}

// Layout returns the buffer's mask layout.
func (b *MaskBuffer) Layout() MaskLayout { return b.layout }

// Order returns the SNP tuple order the buffer was sized for.
func (b *MaskBuffer) Order() int { return b.order }

// Rows returns the number of rows the buffer holds.
func (b *MaskBuffer) Rows() int { return b.rows }

// rowBytes returns the byte slice for one row.
func (b *MaskBuffer) rowBytes(row int) []byte {
	stride := b.layout.RowStride(b.order)
	return b.data[row*stride : (row+1)*stride]
}

// Block returns the gt-code block (0, 1, or 2) for SNP snpIdx within row.
// The returned slice aliases the buffer and must not outlive it.
func (b *MaskBuffer) Block(row, snpIdx, gt int) []byte {
	off := b.layout.blockOffset(snpIdx, gt)
	row2 := b.rowBytes(row)
	return row2[off : off+b.layout.SamplesPerMask()]
}

// BuildRow fills one row's masks per §4.6's byte layout: genotypeCols has
// one entry per SNP in the row's tuple (len(genotypeCols) == order), each a
// per-sample genotype-code slice (0, 1, 2, or -1 for missing) ordered
// affected samples first, then unaffected. Byte j within a gt-code block is
// 0xFF iff sample j's code equals gt, else 0x00; missing codes contribute
// 0x00 to every block. All three blocks of each SNP are cleared before they
// are filled, so padding bytes are zero and a reused row keeps nothing from
// an earlier BuildRow call.
func (b *MaskBuffer) BuildRow(row int, genotypeCols [][]int) error {
	if len(genotypeCols) != b.order {
		return errors.Errorf("epistasis: BuildRow expected %d genotype columns, got %d", b.order, len(genotypeCols))
	}
	layout := b.layout
	for snpIdx, col := range genotypeCols {
		if len(col) != layout.NumAffected+layout.NumUnaffected {
			return errors.Errorf("epistasis: BuildRow SNP %d: expected %d samples, got %d",
				snpIdx, layout.NumAffected+layout.NumUnaffected, len(col))
		}
		blocks := [3][]byte{
			b.Block(row, snpIdx, 0),
			b.Block(row, snpIdx, 1),
			b.Block(row, snpIdx, 2),
		}
		for gt := 0; gt < 3; gt++ {
			buf := blocks[gt]
			for i := range buf {
				buf[i] = 0
			}
		}
		for sampleIdx, code := range col {
			j := sampleIdx
			if sampleIdx >= layout.NumAffected {
				j = layout.A2 + (sampleIdx - layout.NumAffected)
			}
			if code < 0 || code > 2 {
				continue
			}
			blocks[code][j] = 0xFF
		}
	}
	return nil
}
