package pedfixture_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srikanthkris/hpg-variant/genotype"
	"github.com/srikanthkris/hpg-variant/internal/pedfixture"
)

const sample = `# family  id      father  mother  sex  phenotype
FAM1      father  0       0       1    1
FAM1      mother  0       0       2    1
FAM1      child   father  mother  1    2.0
`

func TestParse_BuildsFamilyWithParentsAndChild(t *testing.T) {
	peds, err := pedfixture.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	fam := peds.Families["FAM1"]
	require.NotNil(t, fam)
	require.NotNil(t, fam.Father)
	require.NotNil(t, fam.Mother)
	assert.Equal(t, "father", fam.Father.ID)
	assert.Equal(t, "mother", fam.Mother.ID)
	require.Len(t, fam.Children, 1)
	assert.Equal(t, "child", fam.Children[0].ID)
	assert.Equal(t, 2.0, fam.Children[0].Phenotype)
	assert.Equal(t, genotype.SexMale, fam.Father.Sex)
	assert.Equal(t, genotype.SexFemale, fam.Mother.Sex)
}

func TestParse_RejectsShortLines(t *testing.T) {
	_, err := pedfixture.Parse(strings.NewReader("FAM1 child father mother\n"))
	assert.Error(t, err)
}

func TestParse_SkipsBlankAndCommentLines(t *testing.T) {
	peds, err := pedfixture.Parse(strings.NewReader("\n# comment\n\nFAM1 father 0 0 1 1\n"))
	require.NoError(t, err)
	assert.Len(t, peds.Families, 1)
}
