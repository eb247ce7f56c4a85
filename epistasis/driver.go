package epistasis

import (
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
)

// GenotypeColumnSource supplies, for a given SNP tuple, one decoded
// genotype-code column per SNP (affected samples first, then unaffected,
// matching MaskBuffer.BuildRow's expected ordering) plus the fold's sample
// counts. A Driver calls this once against the training fold and once
// against the validation fold per tuple (spec §4.11's two-fold data flow).
type GenotypeColumnSource interface {
	NumAffected() int
	NumUnaffected() int
	Columns(tuple []int) ([][]int, error)
}

// Driver runs the cross-validated epistasis search: for each SNP tuple, it
// builds masks and counts combinations against the training fold (C6→C7),
// classifies high-risk cells (C8), scores the resulting combination against
// the validation fold (C6→C9), and ranks it (C10).
type Driver struct {
	Rule   RiskRule
	Metric Metric
}

// Run enumerates tuples across workers workers (one MaskBuffer per worker,
// reused across every tuple that worker is assigned, per §5's "mask region
// is per-thread" rule), and returns the final ranking, bounded to rankSize
// entries. Ranking.Insert is serialised behind a single mutex, since the
// ranking is the one resource shared across the worker fan-out (Design
// Notes).
func (d Driver) Run(tuples [][]int, trainCols, valCols GenotypeColumnSource, order, rankSize, workers int) (*Ranking, error) {
	if d.Rule == nil {
		d.Rule = MDRRule
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(tuples) {
		workers = len(tuples)
	}
	ranking := NewRanking(rankSize)
	var rankMu sync.Mutex

	if len(tuples) == 0 {
		return ranking, nil
	}

	trainLayout := NewMaskLayout(trainCols.NumAffected(), trainCols.NumUnaffected())
	valLayout := NewMaskLayout(valCols.NumAffected(), valCols.NumUnaffected())

	cells := CellTable(order)

	err := traverse.Each(workers, func(workerIdx int) error {
		trainBuf, err := NewMaskBuffer(trainLayout, 1, order)
		if err != nil {
			return errors.E(err, "epistasis: allocating training mask buffer")
		}
		defer trainBuf.Close()

		valBuf, err := NewMaskBuffer(valLayout, 1, order)
		if err != nil {
			return errors.E(err, "epistasis: allocating validation mask buffer")
		}
		defer valBuf.Close()

		var scratch RiskyCombination
		for t := workerIdx; t < len(tuples); t += workers {
			tuple := tuples[t]

			trainCol, err := trainCols.Columns(tuple)
			if err != nil {
				return errors.E(err, "epistasis: training columns for tuple", tuple)
			}
			if err := trainBuf.BuildRow(0, trainCol); err != nil {
				return errors.E(err, "epistasis: building training masks for tuple", tuple)
			}

			countsAff, countsUnaff := CountCombinations(trainBuf, 0, cells)
			highRiskIdx, aux := ClassifyCells(countsAff, countsUnaff, trainLayout.NumAffected, trainLayout.NumUnaffected, d.Rule)
			if len(highRiskIdx) == 0 {
				continue
			}

			scratch.SNPs = tuple
			scratch.Aux = aux
			scratch.Cells = scratch.Cells[:0]
			for _, idx := range highRiskIdx {
				scratch.Cells = append(scratch.Cells, cells[idx])
			}

			valCol, err := valCols.Columns(tuple)
			if err != nil {
				return errors.E(err, "epistasis: validation columns for tuple", tuple)
			}
			if err := valBuf.BuildRow(0, valCol); err != nil {
				return errors.E(err, "epistasis: building validation masks for tuple", tuple)
			}

			_, score, ok := Evaluate(valBuf, 0, scratch, d.Metric)
			if !ok {
				continue
			}
			scratch.Accuracy = score

			rankMu.Lock()
			ranking.Insert(scratch.Clone())
			rankMu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
