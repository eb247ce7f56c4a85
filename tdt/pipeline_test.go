package tdt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srikanthkris/hpg-variant/genotype"
	"github.com/srikanthkris/hpg-variant/queue"
	"github.com/srikanthkris/hpg-variant/tdt"
)

// fakeSource replays a fixed slice of variants in fixed-size batches, the
// way a real VCF/PED reader would stream them onto the read queue.
type fakeSource struct {
	samples  []string
	variants []genotype.VariantRecord
}

func (s *fakeSource) Samples() []string { return s.samples }

func (s *fakeSource) ReadBatches(ctx context.Context, q *queue.Queue[[]genotype.VariantRecord], batchSize int) error {
	for start := 0; start < len(s.variants); start += batchSize {
		end := start + batchSize
		if end > len(s.variants) {
			end = len(s.variants)
		}
		batch := make([]genotype.VariantRecord, end-start)
		copy(batch, s.variants[start:end])
		q.Push(batch)
	}
	return nil
}

func pedsFor(fatherID, motherID, childID string, phenotype float64) *genotype.PedigreeTable {
	peds := genotype.NewPedigreeTable()
	peds.Add(&genotype.Family{
		ID:     "FAM1",
		Father: &genotype.Individual{ID: fatherID},
		Mother: &genotype.Individual{ID: motherID},
		Children: []*genotype.Individual{
			{ID: childID, Phenotype: phenotype},
		},
	})
	return peds
}

func TestRunPipeline_EndToEndNoFilters(t *testing.T) {
	src := &fakeSource{
		samples: []string{"father", "mother", "child"},
		variants: []genotype.VariantRecord{
			{Chrom: "1", Pos: 100, Ref: "A", Alt: "G", Samples: []string{"0/1", "0/1", "0/1"}},
			{Chrom: "1", Pos: 200, Ref: "C", Alt: "T", Samples: []string{"1/1", "0/1", "1/1"}},
		},
	}
	peds := pedsFor("father", "mother", "child", 2.0)

	var out bytes.Buffer
	err := tdt.RunPipeline(context.Background(), src, peds, &out, tdt.Config{}, nil, 2, 1, 4)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, tdt.Header, lines[0]+"\n")
	assert.Len(t, lines, 3)

	byPos := map[string]string{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		byPos[fields[1]] = line
	}
	assert.Contains(t, byPos["100"], "1")
	assert.Contains(t, byPos["200"], "1")
}

func TestRunPipeline_FilterDropsVariants(t *testing.T) {
	src := &fakeSource{
		samples: []string{"father", "mother", "child"},
		variants: []genotype.VariantRecord{
			{Chrom: "1", Pos: 100, Ref: "A", Alt: "G", Samples: []string{"0/1", "0/1", "0/1"}},
			{Chrom: "2", Pos: 200, Ref: "C", Alt: "T", Samples: []string{"1/1", "0/1", "1/1"}},
		},
	}
	peds := pedsFor("father", "mother", "child", 2.0)

	onlyChrom1 := func(v genotype.VariantRecord) bool { return v.Chrom == "1" }

	var out bytes.Buffer
	err := tdt.RunPipeline(context.Background(), src, peds, &out, tdt.Config{}, []tdt.Filter{onlyChrom1}, 1, 2, 1)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "1\t")
}

func TestRunPipeline_EmptySourceWritesHeaderOnly(t *testing.T) {
	src := &fakeSource{samples: []string{"father", "mother", "child"}}
	peds := pedsFor("father", "mother", "child", 2.0)

	var out bytes.Buffer
	err := tdt.RunPipeline(context.Background(), src, peds, &out, tdt.Config{}, nil, 4, 10, 2)
	assert.NoError(t, err)
	assert.Equal(t, tdt.Header, out.String())
}
