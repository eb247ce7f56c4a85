package epistasis

// RiskyCombination is one candidate epistatic interaction: the SNP indices
// that make up the tuple, the subset of genotype-permutation cells flagged
// high-risk by the classifier (C8), the rule's auxiliary payload, and the
// accuracy score assigned by the evaluator (C9) once scored against a
// validation fold.
type RiskyCombination struct {
	SNPs     []int
	Cells    [][]int
	Aux      RuleAux
	Accuracy float64
}

// Clone returns a deep copy of comb, safe to retain independently of the
// driver's scratchpad (spec §4.11 / §3's "scratchpad-clone-on-success"
// pattern).
func (comb RiskyCombination) Clone() RiskyCombination {
	out := RiskyCombination{
		SNPs:     append([]int(nil), comb.SNPs...),
		Aux:      comb.Aux,
		Accuracy: comb.Accuracy,
	}
	out.Cells = make([][]int, len(comb.Cells))
	for i, c := range comb.Cells {
		out.Cells[i] = append([]int(nil), c...)
	}
	return out
}
