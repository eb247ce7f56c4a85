package genotype

import (
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
)

// SampleIndex maps a sample identifier to its column position in the
// genotype matrix. Lookup is case-insensitive. It is built once from the
// ordered sample-name slice accompanying the variant stream and is read-only
// afterward, safe for concurrent lookups from the TDT worker pool.
type SampleIndex struct {
	names []string
	cols  map[uint64]int
}

// NewSampleIndex builds an index from the stable sample-name ordering. A
// duplicate name (case-insensitively) is a fatal input error, matching
// spec §4.3.
func NewSampleIndex(names []string) (*SampleIndex, error) {
	idx := &SampleIndex{
		names: names,
		cols:  make(map[uint64]int, len(names)),
	}
	for i, name := range names {
		key := caseFoldHash(name)
		if _, dup := idx.cols[key]; dup {
			return nil, errors.Errorf("genotype: duplicate sample identifier %q in sample list", name)
		}
		idx.cols[key] = i
	}
	return idx, nil
}

// Lookup returns the column for name, case-insensitively.
func (idx *SampleIndex) Lookup(name string) (col int, ok bool) {
	col, ok = idx.cols[caseFoldHash(name)]
	return col, ok
}

// Len returns the number of samples in the index.
func (idx *SampleIndex) Len() int { return len(idx.names) }

// Names returns the stable sample-name ordering the index was built from.
func (idx *SampleIndex) Names() []string { return idx.names }

// caseFoldHash hashes the lowercased identifier with a fast
// non-cryptographic hash (farm, as used elsewhere in grailbio/bio for
// identifier lookups) so the map key doesn't require retaining a
// lower-cased copy of every sample name.
func caseFoldHash(name string) uint64 {
	if !hasUpper(name) {
		return farm.Hash64([]byte(name))
	}
	return farm.Hash64([]byte(strings.ToLower(name)))
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
