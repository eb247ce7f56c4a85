package epistasis

import (
	"math"

	"github.com/srikanthkris/hpg-variant/epistasis/epistasimd"
)

// Metric selects the evaluator formula Evaluate scores a RiskyCombination
// with.
type Metric int

const (
	// BA is balanced accuracy, the default per spec §4.9.
	BA Metric = iota
	CA
	Gamma
	TauB
)

// ConfusionMatrix is the per-combination classification outcome against a
// validation fold: TP/FN cover the affected half, FP/TN the unaffected
// half. TP+FN always equals the fold's total affected count and FP+TN its
// total unaffected count (spec §8's sanity invariant).
type ConfusionMatrix struct {
	TP, FN, FP, TN int
}

// Evaluate builds the predicted-positive mask for comb (the union of every
// flagged cell's mask in row of buf), clears any padding bits the union may
// have picked up, counts both halves into a ConfusionMatrix, and scores it
// with metric. ok is false when metric's denominator is zero, per spec §7 —
// the combination should not be inserted into the ranking in that case.
func Evaluate(buf *MaskBuffer, row int, comb RiskyCombination, metric Metric) (ConfusionMatrix, float64, bool) {
	layout := buf.Layout()
	order := buf.Order()
	predicted := make([]byte, layout.SamplesPerMask())

	for _, cell := range comb.Cells {
		acc := make([]byte, layout.SamplesPerMask())
		first := buf.Block(row, 0, cell[0])
		copy(acc, first)
		for snpIdx := 1; snpIdx < order; snpIdx++ {
			block := buf.Block(row, snpIdx, cell[snpIdx])
			for i := range acc {
				acc[i] &= block[i]
			}
		}
		epistasimd.OrInto(predicted, predicted, acc)
	}

	// Padding bytes are zero in every source block, so the union can never
	// set them; clear explicitly anyway to match spec §4.9's description
	// and guard against a future mask source that doesn't guarantee it.
	for i := layout.NumAffected; i < layout.A2; i++ {
		predicted[i] = 0
	}
	for i := layout.A2 + layout.NumUnaffected; i < layout.A2+layout.U2; i++ {
		predicted[i] = 0
	}

	tp := epistasimd.Popcount(predicted[:layout.A2]) / 8
	fp := epistasimd.Popcount(predicted[layout.A2:]) / 8
	fn := layout.NumAffected - tp
	tn := layout.NumUnaffected - fp

	cm := ConfusionMatrix{TP: tp, FN: fn, FP: fp, TN: tn}
	score, ok := score(cm, metric)
	return cm, score, ok
}

func score(cm ConfusionMatrix, metric Metric) (float64, bool) {
	tp, fn, fp, tn := float64(cm.TP), float64(cm.FN), float64(cm.FP), float64(cm.TN)
	switch metric {
	case CA:
		total := tp + fn + fp + tn
		if total == 0 {
			return 0, false
		}
		return (tp + tn) / total, true

	case BA:
		if tp+fn == 0 || tn+fp == 0 {
			return 0, false
		}
		return 0.5 * (tp/(tp+fn) + tn/(tn+fp)), true

	case Gamma:
		denom := tp*tn + fp*fn
		if denom == 0 {
			return 0, false
		}
		return (tp*tn - fp*fn) / denom, true

	case TauB:
		denom := math.Sqrt((tp + fn) * (tn + fp) * (tp + fp) * (tn + fn))
		if denom == 0 {
			return 0, false
		}
		return (tp*tn - fp*fn) / denom, true

	default:
		return 0, false
	}
}
