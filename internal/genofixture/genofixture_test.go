package genofixture_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikanthkris/hpg-variant/internal/genofixture"
)

const sample = `2 2 3
0 1 1 0
1 1 0 0
. 2 0 1
`

func TestLoad_ParsesHeaderAndRows(t *testing.T) {
	m, err := genofixture.Load(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumAffected())
	assert.Equal(t, 2, m.NumUnaffected())
	assert.Equal(t, 3, m.NumSNPs())

	cols, err := m.Columns([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 0}, cols[0])
	assert.Equal(t, []int{-1, 2, 0, 1}, cols[1])
}

func TestLoad_RejectsOutOfRangeSNP(t *testing.T) {
	m, err := genofixture.Load(strings.NewReader(sample))
	require.NoError(t, err)
	_, err = m.Columns([]int{5})
	assert.Error(t, err)
}

func TestLoad_RejectsMismatchedRowLength(t *testing.T) {
	_, err := genofixture.Load(strings.NewReader("2 2 1\n0 1 1\n"))
	assert.Error(t, err)
}

func TestLoad_RejectsDeclaredSNPCountMismatch(t *testing.T) {
	_, err := genofixture.Load(strings.NewReader("2 2 2\n0 1 1 0\n"))
	assert.Error(t, err)
}
