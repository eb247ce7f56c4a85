package main

/*
hpg-variant-epistasis runs a cross-validated search for high-order SNP
interactions (epistasis) over a training and a validation genotype matrix,
printing the final ranking.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/srikanthkris/hpg-variant/epistasis"
	"github.com/srikanthkris/hpg-variant/internal/genofixture"
)

var (
	order    = flag.Int("order", 2, "SNP tuple order (number of SNPs considered jointly)")
	rankSize = flag.Int("rank-size", 10, "Maximum number of combinations kept in the final ranking")
	metric   = flag.String("metric", "ba", "Evaluator metric: ca, ba, gamma, or taub")
	workers  = flag.Int("workers", 4, "Number of concurrent tuple-evaluation worker goroutines")
)

func hpgVariantEpistasisUsage() {
	fmt.Printf("Usage: %s [OPTIONS] trainpath validatepath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func parseMetric(s string) (epistasis.Metric, error) {
	switch strings.ToLower(s) {
	case "ca":
		return epistasis.CA, nil
	case "ba":
		return epistasis.BA, nil
	case "gamma":
		return epistasis.Gamma, nil
	case "taub":
		return epistasis.TauB, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (want ca, ba, gamma, or taub)", s)
	}
}

// allTuples enumerates every order-sized combination of SNP indices in
// [0, numSNPs), the simplest exhaustive tuple enumerator that satisfies the
// driver's input contract (spec §4.11 leaves enumeration strategy to the
// caller).
func allTuples(numSNPs, order int) [][]int {
	var out [][]int
	var combo []int
	var rec func(start int)
	rec = func(start int) {
		if len(combo) == order {
			out = append(out, append([]int(nil), combo...))
			return
		}
		for i := start; i < numSNPs; i++ {
			combo = append(combo, i)
			rec(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
	return out
}

func main() {
	flag.Usage = hpgVariantEpistasisUsage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 2 {
		if nPositionalArgs < 2 {
			log.Fatalf("Missing positional arguments (trainpath and validatepath required); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		} else {
			log.Fatalf("Too many positional arguments (only trainpath and validatepath expected); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		}
	}
	trainPath, validatePath := positionalArgs[0], positionalArgs[1]

	m, err := parseMetric(*metric)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := vcontext.Background()

	train, err := genofixture.LoadFile(ctx, trainPath)
	if err != nil {
		log.Fatalf("could not read training matrix %s: %v", trainPath, err)
	}
	validate, err := genofixture.LoadFile(ctx, validatePath)
	if err != nil {
		log.Fatalf("could not read validation matrix %s: %v", validatePath, err)
	}
	if train.NumSNPs() != validate.NumSNPs() {
		log.Fatalf("training matrix has %d SNPs but validation matrix has %d", train.NumSNPs(), validate.NumSNPs())
	}

	tuples := allTuples(train.NumSNPs(), *order)
	log.Printf("evaluating %d SNP tuples of order %d", len(tuples), *order)

	driver := epistasis.Driver{Metric: m}
	ranking, err := driver.Run(tuples, train, validate, *order, *rankSize, *workers)
	if err != nil {
		log.Panicf("%v", err)
	}

	for i, comb := range ranking.Entries() {
		fmt.Printf("%d\tSNPs=%v\taccuracy=%f\n", i, comb.SNPs, comb.Accuracy)
	}
	log.Debug.Printf("exiting")
}
