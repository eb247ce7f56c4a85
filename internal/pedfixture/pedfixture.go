// Package pedfixture is a minimal in-repo stand-in for the external
// pedigree-file parser (spec §6's "Pedigree source"), used by this
// repo's own tests and cmd/ wiring. Parsing the full PLINK-style .ped
// format in depth is out of scope (spec.md §1) — this covers the six
// leading columns (family id, individual id, father id, mother id, sex,
// phenotype) that the TDT kernel actually consumes.
package pedfixture

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/srikanthkris/hpg-variant/genotype"
)

// Parse reads a whitespace-delimited pedigree file from r and assembles a
// genotype.PedigreeTable. Each line is:
//
//	family_id individual_id father_id mother_id sex phenotype
//
// father_id/mother_id of "0" mean "no parent recorded", matching PLINK's
// convention (ped_runner.c's ped_read ultimately feeds the same shape into
// the family/individual hashtables this mirrors). Blank lines and lines
// starting with "#" are skipped.
func Parse(r io.Reader) (*genotype.PedigreeTable, error) {
	peds := genotype.NewPedigreeTable()
	individuals := map[string]*genotype.Individual{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, errors.Errorf("pedfixture: line %d: expected at least 6 fields, got %d", lineNum, len(fields))
		}
		familyID, indivID, fatherID, motherID, sexField, phenotypeField := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

		phenotype, err := strconv.ParseFloat(phenotypeField, 64)
		if err != nil {
			return nil, errors.E(err, "pedfixture: line", lineNum, "invalid phenotype")
		}

		indiv := &genotype.Individual{ID: indivID, Sex: parseSex(sexField), Phenotype: phenotype}
		individuals[indivID] = indiv

		family := peds.Families[familyID]
		if family == nil {
			family = &genotype.Family{ID: familyID}
			peds.Add(family)
		}
		if fatherID != "0" {
			family.Father = placeholderOrKnown(individuals, fatherID)
		}
		if motherID != "0" {
			family.Mother = placeholderOrKnown(individuals, motherID)
		}
		// A row with at least one recorded parent describes a child of this
		// family; a founder (father_id == mother_id == "0") only appears as
		// family.Father/Mother once some other row names it, never as a
		// child in its own right.
		if fatherID != "0" || motherID != "0" {
			family.Children = append(family.Children, indiv)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "pedfixture: reading pedigree")
	}
	return peds, nil
}

// placeholderOrKnown returns the already-parsed individual for id if one
// exists, or a fresh stub Individual otherwise (a parent line may appear
// later in the file than a child's reference to it).
func placeholderOrKnown(known map[string]*genotype.Individual, id string) *genotype.Individual {
	if indiv, ok := known[id]; ok {
		return indiv
	}
	indiv := &genotype.Individual{ID: id}
	known[id] = indiv
	return indiv
}

func parseSex(field string) genotype.Sex {
	switch field {
	case "1":
		return genotype.SexMale
	case "2":
		return genotype.SexFemale
	default:
		return genotype.SexUnknown
	}
}

// Open reads and parses the pedigree file at path via grailbio/base/file,
// the same file-access indirection the rest of the ambient stack uses.
func Open(ctx context.Context, path string) (*genotype.PedigreeTable, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "pedfixture: could not open pedigree file:", path)
	}
	defer f.Close(ctx)
	return Parse(f.Reader(ctx))
}
