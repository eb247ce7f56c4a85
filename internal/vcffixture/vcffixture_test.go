package vcffixture_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikanthkris/hpg-variant/genotype"
	"github.com/srikanthkris/hpg-variant/internal/vcffixture"
	"github.com/srikanthkris/hpg-variant/queue"
)

const sample = "##fileformat=fixture\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tfather\tmother\tchild\n" +
	"1\t100\t.\tA\tG\t.\t.\t.\tGT\t0/1\t0/1\t0/1\n" +
	"garbage row with wrong column count\n" +
	"1\t200\t.\tC\tT\t.\t.\t.\tGT\t1/1\t0/1\t1/1\n"

func TestSource_SamplesFromHeader(t *testing.T) {
	src, err := vcffixture.Open(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, []string{"father", "mother", "child"}, src.Samples())
}

func TestSource_ReadBatchesSkipsMalformedRows(t *testing.T) {
	src, err := vcffixture.Open(strings.NewReader(sample))
	require.NoError(t, err)

	q := queue.New[[]genotype.VariantRecord](4, 1)
	done := make(chan error, 1)
	go func() {
		defer q.CloseWriter()
		done <- src.ReadBatches(context.Background(), q, 10)
	}()

	var got []genotype.VariantRecord
	for {
		batch, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, batch...)
	}
	require.NoError(t, <-done)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(100), got[0].Pos)
	assert.Equal(t, uint64(200), got[1].Pos)
}

func TestOpen_RejectsMissingHeader(t *testing.T) {
	_, err := vcffixture.Open(strings.NewReader("not a header\n"))
	assert.Error(t, err)
}
