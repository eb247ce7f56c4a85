package main

/*
hpg-variant-tdt runs the Transmission Disequilibrium Test over a VCF-like
variant file and a pedigree file, writing one result line per variant.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/srikanthkris/hpg-variant/internal/pedfixture"
	"github.com/srikanthkris/hpg-variant/internal/vcffixture"
	"github.com/srikanthkris/hpg-variant/tdt"
)

var (
	outDir     = flag.String("out-dir", "./", "Output directory; created if it does not already exist")
	outFile    = flag.String("out-file", "hpg-variant.tdt", "Output filename, relative to -out-dir; a .gz suffix gzip-compresses the output")
	workers    = flag.Int("workers", 4, "Number of concurrent TDT worker goroutines")
	batchSize  = flag.Int("batch-size", 1000, "Number of variant records read per batch")
	maxBatches = flag.Int("max-batches", 8, "Maximum number of batches held in flight on the read queue")
	permute    = flag.Bool("permute", false, "Swap transmitted/untransmitted alleles for every heterozygous parent (legacy global-flag behavior)")
)

func hpgVariantTDTUsage() {
	fmt.Printf("Usage: %s [OPTIONS] vcfpath pedpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = hpgVariantTDTUsage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 2 {
		if nPositionalArgs < 2 {
			log.Fatalf("Missing positional arguments (vcfpath and pedpath required); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		} else {
			log.Fatalf("Too many positional arguments (only vcfpath and pedpath expected); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		}
	}
	vcfPath, pedPath := positionalArgs[0], positionalArgs[1]

	ctx := vcontext.Background()

	peds, err := pedfixture.Open(ctx, pedPath)
	if err != nil {
		log.Fatalf("could not read pedigree file %s: %v", pedPath, err)
	}

	src, closeSrc, err := vcffixture.OpenFile(ctx, vcfPath)
	if err != nil {
		log.Fatalf("could not open variant file %s: %v", vcfPath, err)
	}
	defer closeSrc()

	outDirSlash := *outDir
	if !strings.HasSuffix(outDirSlash, "/") {
		outDirSlash += "/"
	}
	out, err := tdt.OpenOutput(ctx, outDirSlash, *outFile)
	if err != nil {
		log.Fatalf("could not open output file %s%s: %v", outDirSlash, *outFile, err)
	}
	defer out.Close()

	cfg := tdt.Config{}
	if *permute {
		// Mirrors the original's "always swap when permute != 0" global
		// behavior bit-for-bit, even though Config.Permute is now a
		// per-family callable rather than a single flag.
		cfg.Permute = func(string) bool { return true }
	}

	if err := tdt.RunPipeline(ctx, src, peds, out, cfg, nil, *workers, *batchSize, *maxBatches); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
