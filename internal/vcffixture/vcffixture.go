// Package vcffixture is a minimal in-repo stand-in for the external variant
// source (spec §6's "Variant source"), implementing tdt.VariantSource. Full
// VCF parsing (INFO/FORMAT field semantics, multi-allelic splitting, header
// metadata) is out of scope (spec.md §1) — this reads just enough of the
// tab-separated shape to drive this repo's own tests and the cmd/ CLI
// wiring: a `#CHROM` header line naming the samples, then one row per
// variant with a genotype cell per sample.
package vcffixture

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"

	"github.com/srikanthkris/hpg-variant/genotype"
	"github.com/srikanthkris/hpg-variant/queue"
)

const fixedColumns = 9 // CHROM POS ID REF ALT QUAL FILTER INFO FORMAT

// Source reads variant records from an underlying reader, row by row, and
// implements tdt.VariantSource so RunPipeline can drive it directly.
type Source struct {
	r       *bufio.Scanner
	samples []string
}

// Open skips any leading "##" meta lines in r, takes the first line starting
// with "#" (the `#CHROM` line) as the header, and returns a Source ready to
// stream the remaining rows.
func Open(r io.Reader) (*Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "##") {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return nil, errors.Errorf("vcffixture: expected #CHROM header before data rows")
		}
		fields := strings.Split(strings.TrimPrefix(line, "#"), "\t")
		if len(fields) <= fixedColumns {
			return nil, errors.Errorf("vcffixture: header line has no sample columns")
		}
		samples := append([]string(nil), fields[fixedColumns:]...)
		return &Source{r: scanner, samples: samples}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "vcffixture: reading header")
	}
	return nil, errors.Errorf("vcffixture: empty input, no #CHROM header found")
}

// OpenFile opens path via grailbio/base/file and parses its header.
func OpenFile(ctx context.Context, path string) (*Source, func() error, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "vcffixture: could not open variant file:", path)
	}
	src, err := Open(f.Reader(ctx))
	if err != nil {
		f.Close(ctx)
		return nil, nil, err
	}
	return src, func() error { return f.Close(ctx) }, nil
}

// Samples returns the ordered sample-name list from the header row.
func (s *Source) Samples() []string { return s.samples }

// ReadBatches streams variant rows, batchSize at a time, onto q and returns
// on EOF, a read error, or context cancellation. It does not close q's
// writer handle; the caller holds that handle and closes it. Malformed individual
// rows are logged and dropped (spec §7's "parse error in a record: logged,
// record dropped, pipeline continues"), not treated as fatal.
func (s *Source) ReadBatches(ctx context.Context, q *queue.Queue[[]genotype.VariantRecord], batchSize int) error {
	if batchSize < 1 {
		batchSize = 1
	}
	batch := make([]genotype.VariantRecord, 0, batchSize)
	lineNum := 1 // header already consumed
	for s.r.Scan() {
		lineNum++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		record, ok := parseRow(s.r.Text(), len(s.samples))
		if !ok {
			log.Error.Printf("vcffixture: line %d: malformed row, dropping", lineNum)
			continue
		}
		batch = append(batch, record)
		if len(batch) == batchSize {
			q.Push(batch)
			batch = make([]genotype.VariantRecord, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		q.Push(batch)
	}
	if err := s.r.Err(); err != nil {
		return errors.E(err, "vcffixture: reading variant rows")
	}
	return nil
}

func parseRow(line string, numSamples int) (genotype.VariantRecord, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != fixedColumns+numSamples {
		return genotype.VariantRecord{}, false
	}
	pos, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return genotype.VariantRecord{}, false
	}
	return genotype.VariantRecord{
		Chrom:   fields[0],
		Pos:     pos,
		Ref:     fields[3],
		Alt:     fields[4],
		Samples: append([]string(nil), fields[fixedColumns:]...),
	}, true
}
