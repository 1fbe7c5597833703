// Package phenocase implements the phenopacket-shaped case-input
// reader: a YAML document naming a sample, its observed and excluded
// HPO terms, and optionally a VCF path and genome assembly. This is an
// external collaborator, out of scope for the scoring core — it hands
// the evaluator a domain.CaseQuery and never computes an LR itself.
//
// The source (original_source/.../PhenopacketImporter, consumed by
// PhenopacketCommand.java) reads GA4GH Phenopacket JSON; this
// reimplementation follows a YAML-based case/config loading idiom
// (gopkg.in/yaml.v3, grounded on
// dpopsuev-asterisk/adapters/calibration/scenarios/loader.go) rather
// than pulling in a full protobuf-based Phenopacket schema, since no
// such library appears anywhere in the example corpus.
package phenocase

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lirical-go/lirical/internal/domain"
)

// document is the on-disk YAML shape of a case phenopacket.
type document struct {
	SampleID       string   `yaml:"sample_id"`
	ObservedTerms  []string `yaml:"observed_hpo_terms"`
	ExcludedTerms  []string `yaml:"excluded_hpo_terms"`
	VCFPath        string   `yaml:"vcf_path"`
	GenomeAssembly string   `yaml:"genome_assembly"`
}

// Case is a parsed phenopacket-shaped document, before ontology
// canonicalization: the CaseQuery plus the optional VCF/assembly
// metadata the CLI needs to decide whether to run genotype scoring.
type Case struct {
	Query          domain.CaseQuery
	VCFPath        string
	GenomeAssembly domain.Assembly
}

// HasVCF reports whether this case names a VCF to extract genotypes
// from, mirroring the source's PhenopacketImporter.hasVcf().
func (c *Case) HasVCF() bool { return c.VCFPath != "" }

// ReadFile opens and parses the phenopacket-shaped YAML file at path.
func ReadFile(path string) (*Case, error) {
	f, err := os.Open(path) // #nosec G304 -- path is operator-supplied CLI configuration
	if err != nil {
		return nil, domain.NewParseError("phenopacket", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a phenopacket-shaped YAML document from r.
func Read(r io.Reader) (*Case, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, domain.NewParseError("phenopacket", err)
	}

	if doc.SampleID == "" {
		return nil, domain.NewParseError("phenopacket", fmt.Errorf("sample_id is required"))
	}
	if len(doc.ObservedTerms) == 0 && len(doc.ExcludedTerms) == 0 {
		return nil, domain.NewParseError("phenopacket", fmt.Errorf("at least one observed or excluded HPO term is required"))
	}

	c := &Case{
		Query: domain.CaseQuery{
			SampleID: doc.SampleID,
			Observed: toTermIDs(doc.ObservedTerms),
			Excluded: toTermIDs(doc.ExcludedTerms),
		},
		VCFPath: doc.VCFPath,
	}
	switch doc.GenomeAssembly {
	case "", string(domain.AssemblyHg38):
		c.GenomeAssembly = domain.AssemblyHg38
	case string(domain.AssemblyHg19):
		c.GenomeAssembly = domain.AssemblyHg19
	default:
		return nil, domain.NewParseError("phenopacket", fmt.Errorf("unrecognized genome_assembly %q", doc.GenomeAssembly))
	}
	return c, nil
}

func toTermIDs(raw []string) []domain.TermId {
	out := make([]domain.TermId, len(raw))
	for i, s := range raw {
		out[i] = domain.TermId(s)
	}
	return out
}
