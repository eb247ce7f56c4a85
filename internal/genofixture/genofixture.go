// Package genofixture is a minimal in-repo stand-in for the external
// genotype-matrix reader the epistasis driver's train/validate folds come
// from. Parsing detail is out of scope (spec.md §1); this covers just
// enough of a dense-matrix text format to drive this repo's own tests and
// the cmd/hpg-variant-epistasis CLI:
//
//	numAffected numUnaffected numSNPs
//	<numAffected+numUnaffected whitespace-separated genotype codes, SNP 0>
//	...
//	<numAffected+numUnaffected whitespace-separated genotype codes, SNP numSNPs-1>
//
// Genotype codes are 0, 1, or 2; "." marks a missing call.
package genofixture

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// Matrix implements epistasis.GenotypeColumnSource over an in-memory
// per-SNP genotype-code table, affected samples first then unaffected.
type Matrix struct {
	aff, unaff int
	columns    [][]int // columns[snpIdx][sampleIdx]
}

func (m *Matrix) NumAffected() int   { return m.aff }
func (m *Matrix) NumUnaffected() int { return m.unaff }

// Columns returns the genotype column for each SNP index named in tuple.
func (m *Matrix) Columns(tuple []int) ([][]int, error) {
	out := make([][]int, len(tuple))
	for i, snp := range tuple {
		if snp < 0 || snp >= len(m.columns) {
			return nil, errors.Errorf("genofixture: SNP index %d out of range [0,%d)", snp, len(m.columns))
		}
		out[i] = m.columns[snp]
	}
	return out, nil
}

// NumSNPs returns the number of SNP rows loaded.
func (m *Matrix) NumSNPs() int { return len(m.columns) }

// Load parses a genotype matrix from r.
func Load(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		return nil, errors.Errorf("genofixture: empty input, expected a header line")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 3 {
		return nil, errors.Errorf("genofixture: header must have 3 fields (numAffected numUnaffected numSNPs), got %d", len(header))
	}
	aff, err1 := strconv.Atoi(header[0])
	unaff, err2 := strconv.Atoi(header[1])
	numSNPs, err3 := strconv.Atoi(header[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, errors.Errorf("genofixture: header fields must be integers")
	}

	m := &Matrix{aff: aff, unaff: unaff, columns: make([][]int, 0, numSNPs)}
	wantSamples := aff + unaff
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != wantSamples {
			return nil, errors.Errorf("genofixture: row %d has %d fields, expected %d", len(m.columns), len(fields), wantSamples)
		}
		col := make([]int, wantSamples)
		for i, f := range fields {
			if f == "." {
				col[i] = -1
				continue
			}
			code, err := strconv.Atoi(f)
			if err != nil || code < 0 || code > 2 {
				return nil, errors.Errorf("genofixture: row %d field %d: invalid genotype code %q", len(m.columns), i, f)
			}
			col[i] = code
		}
		m.columns = append(m.columns, col)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "genofixture: reading matrix")
	}
	if len(m.columns) != numSNPs {
		return nil, errors.Errorf("genofixture: header declared %d SNPs, found %d rows", numSNPs, len(m.columns))
	}
	return m, nil
}

// LoadFile opens path via grailbio/base/file and parses its matrix.
func LoadFile(ctx context.Context, path string) (*Matrix, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "genofixture: could not open genotype matrix:", path)
	}
	defer f.Close(ctx)
	return Load(f.Reader(ctx))
}
