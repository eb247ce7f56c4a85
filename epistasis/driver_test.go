package epistasis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikanthkris/hpg-variant/epistasis"
)

// fakeColumnSource returns a fixed genotype column per SNP index,
// regardless of the requested tuple, standing in for a real decoded
// genotype-matrix reader.
type fakeColumnSource struct {
	aff, unaff int
	columns    map[int][]int // snpIdx -> codes, affected-first
}

func (f fakeColumnSource) NumAffected() int   { return f.aff }
func (f fakeColumnSource) NumUnaffected() int { return f.unaff }

func (f fakeColumnSource) Columns(tuple []int) ([][]int, error) {
	out := make([][]int, len(tuple))
	for i, snp := range tuple {
		out[i] = f.columns[snp]
	}
	return out, nil
}

func TestDriver_Run_TwoSNPPerfectSeparation(t *testing.T) {
	// SNP 0 and SNP 1 each have genotype 1 present in exactly the affected
	// samples and genotype 0 in exactly the unaffected ones, on both folds.
	train := fakeColumnSource{
		aff: 4, unaff: 4,
		columns: map[int][]int{
			0: {1, 1, 1, 1, 0, 0, 0, 0},
			1: {1, 1, 1, 1, 0, 0, 0, 0},
		},
	}
	val := fakeColumnSource{
		aff: 4, unaff: 4,
		columns: map[int][]int{
			0: {1, 1, 1, 1, 0, 0, 0, 0},
			1: {1, 1, 1, 1, 0, 0, 0, 0},
		},
	}

	d := epistasis.Driver{Metric: epistasis.BA}
	ranking, err := d.Run([][]int{{0, 1}}, train, val, 2, 5, 2)
	require.NoError(t, err)
	require.Equal(t, 1, ranking.Len())
	assert.Equal(t, 1.0, ranking.Entries()[0].Accuracy)
	assert.Equal(t, []int{0, 1}, ranking.Entries()[0].SNPs)
}

func TestDriver_Run_NoTuplesYieldsEmptyRanking(t *testing.T) {
	train := fakeColumnSource{aff: 2, unaff: 2, columns: map[int][]int{}}
	val := fakeColumnSource{aff: 2, unaff: 2, columns: map[int][]int{}}
	d := epistasis.Driver{}
	ranking, err := d.Run(nil, train, val, 1, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, ranking.Len())
}

func TestDriver_Run_RanksMultipleTuplesByAccuracy(t *testing.T) {
	train := fakeColumnSource{
		aff: 4, unaff: 4,
		columns: map[int][]int{
			0: {1, 1, 1, 1, 0, 0, 0, 0}, // perfect
			1: {1, 1, 0, 0, 1, 1, 0, 0}, // weak signal
		},
	}
	val := train

	d := epistasis.Driver{Metric: epistasis.BA}
	ranking, err := d.Run([][]int{{0}, {1}}, train, val, 1, 5, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ranking.Len(), 1)
	entries := ranking.Entries()
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Accuracy, entries[i].Accuracy)
	}
}
