// Package genotype defines the shared data model that the TDT and epistasis
// engines operate on: variant records, pedigrees, and the sample-name to
// matrix-column index that joins them.
package genotype

// Allele is a small non-negative integer (0 = reference, 1..k = alternate),
// or MissingAllele when the call is absent or unparseable.
type Allele int8

// MissingAllele marks an absent or unparseable allele call.
const MissingAllele Allele = -1

// Sex of an individual, as recorded in the pedigree.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// Individual is one person in a pedigree: an identifier, sex, and phenotype.
// Phenotype is numeric; by convention 2.0 denotes "affected", but callers
// should go through an AffectedPredicate rather than comparing directly, so
// 0/1-coded datasets can be analysed without changing this type.
type Individual struct {
	ID        string
	Sex       Sex
	Phenotype float64
}

// AffectedPredicate decides whether an individual's phenotype value marks
// them as a case. The TDT kernel's default is phenotype == 2.0, matching the
// original "affected = 2.0" convention, but callers may inject their own.
type AffectedPredicate func(phenotype float64) bool

// DefaultAffected is the legacy convention: phenotype 2.0 means affected.
func DefaultAffected(phenotype float64) bool {
	return phenotype == 2.0
}

// Family is one nuclear family: an id, optional father and mother, and an
// arbitrary-but-stable-order list of children. Father/Mother are nil when
// absent from the pedigree.
type Family struct {
	ID       string
	Father   *Individual
	Mother   *Individual
	Children []*Individual
}

// PedigreeTable maps family id to Family, as produced by the (out of scope)
// pedigree parser described in spec §6.
type PedigreeTable struct {
	Families map[string]*Family
}

// NewPedigreeTable returns an empty table ready for Add.
func NewPedigreeTable() *PedigreeTable {
	return &PedigreeTable{Families: make(map[string]*Family)}
}

// Add inserts or overwrites the family under its own id.
func (t *PedigreeTable) Add(f *Family) {
	t.Families[f.ID] = f
}

// VariantRecord is one row of the variant stream: chromosome, position,
// reference/alternate alleles, and the per-sample genotype cells in the
// fixed order established by the sample index. Samples is a contiguous
// slice set once at parse time; it is never rebuilt per access (Design
// Notes, "variant-to-sample joining").
type VariantRecord struct {
	Chrom   string
	Pos     uint64
	Ref     string
	Alt     string
	Samples []string
}
