// Package epistasis implements the cross-validated epistasis engine: mask
// construction (C6), combination counting (C7), high-risk classification
// (C8), confusion-matrix evaluation (C9), bounded ranking (C10), and the
// driver that ties them together across SNP tuples (C11).
package epistasis

// MaskLayout is the immutable "layout descriptor" for one affected/
// unaffected split: sample counts and their 16-rounded paddings (spec
// §4.6/§5's "Memory alignment" requirement). Trivially cloned by value, per
// Design Notes.
type MaskLayout struct {
	NumAffected   int
	NumUnaffected int
	A2            int // NumAffected rounded up to a multiple of 16
	U2            int // NumUnaffected rounded up to a multiple of 16
}

func roundUp16(n int) int {
	return (n + 15) &^ 15
}

// NewMaskLayout computes the padded layout for aff affected and unaff
// unaffected samples. A degenerate split (zero affected or unaffected) is a
// caller bug, not an expected runtime input condition — model.c's
// masks_info_init asserts num_affected_with_padding != 0 for the same
// reason (Design Notes, supplemented from original_source).
func NewMaskLayout(aff, unaff int) MaskLayout {
	if aff == 0 || unaff == 0 {
		panic("epistasis: NewMaskLayout requires a non-empty affected and unaffected split")
	}
	return MaskLayout{
		NumAffected:   aff,
		NumUnaffected: unaff,
		A2:            roundUp16(aff),
		U2:            roundUp16(unaff),
	}
}

// SamplesPerMask is the padded byte width of one genotype-code block.
func (l MaskLayout) SamplesPerMask() int { return l.A2 + l.U2 }

// MasksPerRow is the number of genotype-code blocks in one row: three
// genotype codes (0/1/2) per SNP, order SNPs per row.
func (l MaskLayout) MasksPerRow(order int) int { return 3 * order }

// RowStride is the total byte width of one row.
func (l MaskLayout) RowStride(order int) int {
	return l.MasksPerRow(order) * l.SamplesPerMask()
}

// blockOffset returns the byte offset of SNP snpIdx's genotype-code-gt
// block within a row, for 0 <= gt <= 2.
func (l MaskLayout) blockOffset(snpIdx, gt int) int {
	return (snpIdx*3 + gt) * l.SamplesPerMask()
}
