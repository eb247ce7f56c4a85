package tdt

import (
	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/log"

	"github.com/srikanthkris/hpg-variant/genotype"
)

// Config parameterizes the TDT kernel. Both fields replace state that the
// original implementation hard-coded or kept as process-wide globals
// (Design Notes): Permute is called once per family per variant rather than
// flipping a single global switch, and AffectedPredicate lets 0/1-coded
// phenotypes be analysed without patching the engine.
type Config struct {
	// Permute returns whether the given family's heterozygous-parent
	// transmissions should be swapped for this variant. The zero Config's
	// Permute is nil, meaning "never swap".
	Permute func(familyID string) bool
	// AffectedPredicate decides whether a child's phenotype marks them as a
	// case. Defaults to genotype.DefaultAffected (phenotype == 2.0).
	AffectedPredicate genotype.AffectedPredicate
}

func (c Config) affected(phenotype float64) bool {
	if c.AffectedPredicate == nil {
		return genotype.DefaultAffected(phenotype)
	}
	return c.AffectedPredicate(phenotype)
}

func (c Config) permute(familyID string) bool {
	if c.Permute == nil {
		return false
	}
	return c.Permute(familyID)
}

// ComputeTDT runs the transmission-counting kernel (spec §4.4) for one
// variant against every family in peds, using idx to map sample ids to
// genotype columns. It returns a Result with T1/T2 accumulated across all
// contributing families.
func ComputeTDT(variant genotype.VariantRecord, idx *genotype.SampleIndex, peds *genotype.PedigreeTable, cfg Config) Result {
	result := Result{Chrom: variant.Chrom, Pos: variant.Pos, Ref: variant.Ref, Alt: variant.Alt}

	for _, family := range peds.Families {
		if family.Father == nil || family.Mother == nil {
			continue
		}

		fatherPos, ok := idx.Lookup(family.Father.ID)
		if !ok {
			logUnlinkedSample(idx, family.ID, "father", family.Father.ID)
			continue
		}
		motherPos, ok := idx.Lookup(family.Mother.ID)
		if !ok {
			logUnlinkedSample(idx, family.ID, "mother", family.Mother.ID)
			continue
		}

		fa1, fa2, fMissing := genotype.DecodeGenotype(variant.Samples[fatherPos])
		ma1, ma2, mMissing := genotype.DecodeGenotype(variant.Samples[motherPos])
		if fMissing || mMissing {
			continue
		}

		// Require at least one heterozygous parent.
		if fa1 == fa2 && ma1 == ma2 {
			continue
		}

		// Pathological genotypes (first allele non-zero, second allele zero,
		// such as 1/0) are treated as missing markers, for parents and
		// children alike.
		if isPathological(fa1, fa2) || isPathological(ma1, ma2) {
			continue
		}

		swap := cfg.permute(family.ID)

		for _, child := range family.Children {
			if !cfg.affected(child.Phenotype) {
				continue
			}
			childPos, ok := idx.Lookup(child.ID)
			if !ok {
				logUnlinkedSample(idx, family.ID, "child", child.ID)
				continue
			}
			ca1, ca2, cMissing := genotype.DecodeGenotype(variant.Samples[childPos])
			if cMissing {
				continue
			}
			if isPathological(ca1, ca2) {
				continue
			}

			trA, unA, trB, unB := transmissions(fa1, fa2, ma1, ma2, ca1, ca2)
			if swap {
				trA, unA = unA, trA
				trB, unB = unB, trB
			}

			if trA == 1 {
				result.T1++
			}
			if trB == 1 {
				result.T1++
			}
			if trA == 2 {
				result.T2++
			}
			if trB == 2 {
				result.T2++
			}

			if log.At(log.Debug) {
				log.Debug.Printf("TDT %s:%d %s: trA=%d unA=%d trB=%d unB=%d t1=%d t2=%d father=%d/%d mother=%d/%d child=%d/%d",
					variant.Chrom, variant.Pos, family.ID, trA, unA, trB, unB, result.T1, result.T2,
					fa1, fa2, ma1, ma2, ca1, ca2)
			}
		}
	}

	return result
}

// logUnlinkedSample traces a pedigree id with no sample-index entry,
// suggesting the closest known sample name by Jaro-Winkler similarity. This
// is a diagnostic aid only — it never changes which families/children
// contribute to t1/t2, and only runs when log.Debug is enabled since
// scanning every sample name per miss is too costly for the hot path.
func logUnlinkedSample(idx *genotype.SampleIndex, familyID, role, id string) {
	if !log.At(log.Debug) {
		return
	}
	best, bestScore := "", -1.0
	for _, name := range idx.Names() {
		score := matchr.JaroWinkler(id, name)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if best == "" {
		log.Debug.Printf("tdt: family %s: %s %q not found in sample index", familyID, role, id)
		return
	}
	log.Debug.Printf("tdt: family %s: %s %q not found in sample index (did you mean %q? similarity=%.3f)",
		familyID, role, id, best, bestScore)
}

// isPathological reports the "first allele non-zero, second allele zero"
// ordering (such as 1/0) that the source treats as an effectively-missing
// genotype. The 0/1 ordering is not pathological.
func isPathological(a1, a2 genotype.Allele) bool {
	return a1 != 0 && a2 == 0
}

// transmissions determines, for a child with alleles (ca1, ca2) and parents
// with alleles (fa1, fa2) and (ma1, ma2), the transmitted (trA/trB) and
// untransmitted (unA/unB) alleles from each heterozygous parent, per the
// case table in spec §4.4. trB/unB remain zero when only one parent
// contributes a determined transmission.
func transmissions(fa1, fa2, ma1, ma2, ca1, ca2 genotype.Allele) (trA, unA, trB, unB int) {
	bothHetPhased01 := fa1 == 0 && fa2 == 1 && ma1 == 0 && ma2 == 1

	switch {
	case ca1 == 0 && ca2 == 0: // child 0/0: whichever parent is het must have
		// transmitted 0, so trA=ref/unA=alt always holds; both-het-01
		// additionally tells us both parents independently transmitted 0.
		if bothHetPhased01 {
			return 1, 2, 1, 2
		}
		return 1, 2, 0, 0

	case ca1 == 0 && ca2 == 1: // child 0/1: ambiguous when both parents are
		// het, since either could have transmitted either allele; tie-break
		// father-transmits-ref, mother-transmits-alt (spec §4.4).
		fatherHet := fa1 != fa2
		motherHet := ma1 != ma2
		switch {
		case fatherHet && motherHet:
			return 1, 2, 2, 1
		case fatherHet:
			if ma1 == 0 {
				return 2, 1, 0, 0
			}
			return 1, 2, 0, 0
		default:
			if fa1 == 0 {
				return 2, 1, 0, 0
			}
			return 1, 2, 0, 0
		}

	default: // child 1/1: whichever parent is het must have transmitted 1.
		if bothHetPhased01 {
			return 2, 1, 2, 1
		}
		return 2, 1, 0, 0
	}
}
