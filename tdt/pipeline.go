package tdt

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/srikanthkris/hpg-variant/genotype"
	"github.com/srikanthkris/hpg-variant/queue"
)

// maxChunkSize is the hard-coded chunk size the original used when
// splitting a batch of filter-surviving records before invoking the kernel
// (spec §4.5 / tdt_runner.c's "max_chunk_size = 1000").
const maxChunkSize = 1000

// VariantSource is the external collaborator (spec §6) that produces
// variant batches. Samples returns the fixed sample-name ordering shared by
// every record in the stream.
type VariantSource interface {
	Samples() []string
	// ReadBatches pushes up to batchSize records per batch onto q and
	// returns on EOF or error. It does not close q's writer handle;
	// RunPipeline's reader stage closes it once ReadBatches returns.
	ReadBatches(ctx context.Context, q *queue.Queue[[]genotype.VariantRecord], batchSize int) error
}

// Filter reports whether a variant record should proceed to TDT analysis.
type Filter func(genotype.VariantRecord) bool

// RunPipeline wires together the reader, worker pool, and writer stages of
// spec §4.5: src.ReadBatches feeds a bounded read queue, workers run filters
// then ComputeTDT over chunks of up to maxChunkSize surviving records, and
// the writer drains results onto out in whatever order they complete
// (output order is not stable, per spec §5). A nil or empty filters chain
// passes every record through unchanged.
func RunPipeline(ctx context.Context, src VariantSource, peds *genotype.PedigreeTable, out io.Writer, cfg Config, filters []Filter, workers, batchSize, maxBatches int) error {
	if workers < 1 {
		workers = 1
	}
	if maxBatches < 1 {
		maxBatches = 1
	}

	readQueue := queue.New[[]genotype.VariantRecord](maxBatches, 1)
	writeQueue := queue.New[Result](10*maxBatches*batchSize/maxChunkSize+1, workers)

	var readErr error
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer readQueue.CloseWriter()
		readErr = src.ReadBatches(ctx, readQueue, batchSize)
		if readErr != nil {
			log.Error.Printf("tdt: reader: %v", readErr)
		}
	}()

	idx, err := genotype.NewSampleIndex(src.Samples())
	if err != nil {
		return errors.E(err, "tdt: building sample index")
	}

	writerDone := make(chan error, 1)
	go func() {
		if err := WriteHeader(out); err != nil {
			writerDone <- err
			return
		}
		count := 0
		for {
			result, ok := writeQueue.Pop()
			if !ok {
				log.Printf("tdt: writer done, %d results written", count)
				writerDone <- nil
				return
			}
			if err := WriteResult(out, result); err != nil {
				writerDone <- err
				return
			}
			count++
		}
	}()

	workErr := traverse.Each(workers, func(workerIdx int) error {
		defer writeQueue.CloseWriter()
		batchNum := 0
		for {
			batch, ok := readQueue.Pop()
			if !ok {
				return nil
			}
			if batchNum%20 == 0 {
				log.Printf("tdt: batch %d reached by worker %d (%d records)", batchNum, workerIdx, len(batch))
			}
			survivors := applyFilters(batch, filters)
			for start := 0; start < len(survivors); start += maxChunkSize {
				end := start + maxChunkSize
				if end > len(survivors) {
					end = len(survivors)
				}
				for _, variant := range survivors[start:end] {
					writeQueue.Push(ComputeTDT(variant, idx, peds, cfg))
				}
			}
			batchNum++
		}
	})

	<-readerDone
	if workErr != nil {
		return errors.E(workErr, "tdt: worker pool")
	}
	if readErr != nil {
		return errors.E(readErr, "tdt: reading variants")
	}
	// The writer goroutine's channel carries exactly one terminal value:
	// either the header-write error (if that failed outright) or the error
	// from the first failed WriteResult, nil otherwise.
	select {
	case err := <-writerDone:
		if err != nil {
			return errors.E(err, "tdt: writing output")
		}
	}
	return nil
}

// applyFilters returns the subset of batch for which every filter in chain
// reports true. A nil or empty chain passes every record (spec §4.5).
func applyFilters(batch []genotype.VariantRecord, chain []Filter) []genotype.VariantRecord {
	if len(chain) == 0 {
		return batch
	}
	survivors := batch[:0:0]
	for _, v := range batch {
		ok := true
		for _, f := range chain {
			if !f(v) {
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, v)
		}
	}
	return survivors
}
