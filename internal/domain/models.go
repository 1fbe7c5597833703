package domain

import (
	"strconv"
	"time"
)

// TermAnnotation is a single (term, frequency) pair as recorded on a
// disease. Frequency defaults to 1.0 when the source annotation did not
// specify one.
type TermAnnotation struct {
	Term      TermId
	Frequency float64
}

// DiseaseRecord is the corpus entry for one disease. Annotations are
// kept in the order the source stores them in — the fuzzy-match
// branch requires a deterministic iteration order over a disease's
// annotations to pick the first qualifying term.
type DiseaseRecord struct {
	ID               string
	Name             string
	Annotations      []TermAnnotation
	InheritanceModes []ModeOfInheritance
	GeneIDs          []string
}

// AnnotationFor returns the recorded frequency for a directly annotated
// term, or (0, false) if the disease does not annotate it.
func (d *DiseaseRecord) AnnotationFor(t TermId) (float64, bool) {
	for _, a := range d.Annotations {
		if a.Term == t {
			return a.Frequency, true
		}
	}
	return 0, false
}

// PrimaryInheritance returns the disease's mode of inheritance used to
// size the genotype-LR expectation. A disease with no recorded mode is
// treated as dominant-like.
func (d *DiseaseRecord) PrimaryInheritance() ModeOfInheritance {
	if len(d.InheritanceModes) == 0 {
		return InheritanceUnknown
	}
	return d.InheritanceModes[0]
}

// VariantCall is the atomic unit a GenotypeExtractor turns into
// Gene2Genotype counts: one observed allele with pathogenicity and
// population-frequency evidence, plus the QC filter-pass flag.
type VariantCall struct {
	Chromosome     string
	Position       int64
	Reference      string
	Alternative    string
	GeneID         string
	Pathogenicity  float64 // in [0,1]
	PopulationFreq float64
	FilterPass     bool
}

// Gene2Genotype summarizes the predicted-pathogenic variant burden in
// one gene for one case. PathogenicAlleleCount excludes filter-failed
// variants.
type Gene2Genotype struct {
	GeneID   string
	Variants []VariantCall
}

// PathogenicAlleleCount sums pathogenicity x presence over filter-passing
// variants — the λ_obs of the genotype LR. Each filter-passing variant
// contributes its pathogenicity score once (allele count is not
// separately tracked).
func (g *Gene2Genotype) PathogenicAlleleCount() float64 {
	var sum float64
	for _, v := range g.Variants {
		if v.FilterPass {
			sum += v.Pathogenicity
		}
	}
	return sum
}

// CaseQuery is a single evaluation request: observed and excluded
// phenotype terms plus an optional per-gene genotype map. Invariant:
// Observed and Excluded are disjoint (enforced by internal/evaluator
// before scoring).
type CaseQuery struct {
	SampleID string
	Observed []TermId
	Excluded []TermId
	Genotype map[string]*Gene2Genotype // gene id -> burden, nil in phenotype-only mode
}

// TermContribution records one term's LR contribution to a disease
// score, preserved for reporting.
type TermContribution struct {
	Term     TermId
	Excluded bool
	LR       float64
	LogLR    float64
}

// GeneContribution records one gene's genotype LR contribution to a
// disease score.
type GeneContribution struct {
	GeneID   string
	LR       float64
	LogLR    float64
	Category GenotypeLRCategory
}

// DiseaseScore is the ranked output for one disease.
type DiseaseScore struct {
	DiseaseID   string
	DiseaseName string
	LogLR       float64
	Posterior   float64
	TermLRs     []TermContribution
	GeneLRs     []GeneContribution
}

// RunMetadata is descriptive bookkeeping about one evaluation run,
// not itself part of scoring.
type RunMetadata struct {
	AnalysisDate      time.Time
	SampleName        string
	OntologyVersion   string
	CorpusSize        int
	GenesWithVariants int
	RetainedVariants  int
	FilteredVariants  int
}

// AsMap renders RunMetadata as a map<string,string>, the shape used
// for the produced run-metadata interface.
func (m RunMetadata) AsMap() map[string]string {
	return map[string]string{
		"analysis_date":       m.AnalysisDate.Format(time.RFC3339),
		"sample_name":         m.SampleName,
		"ontology_version":    m.OntologyVersion,
		"corpus_size":         strconv.Itoa(m.CorpusSize),
		"genes_with_variants": strconv.Itoa(m.GenesWithVariants),
		"retained_variants":   strconv.Itoa(m.RetainedVariants),
		"filtered_variants":   strconv.Itoa(m.FilteredVariants),
	}
}
