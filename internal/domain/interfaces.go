package domain

import "context"

// Ontology is the consumed interface for a DAG of phenotype terms with
// ancestor/descendant queries, a subclass test, primary-id
// canonicalization, and a term-name table.
type Ontology interface {
	Ancestors(t TermId, inclSelf bool) (map[TermId]struct{}, error)
	Descendants(root TermId) (map[TermId]struct{}, error)
	IsSubclass(child, parent TermId) (bool, error)
	PrimaryID(t TermId) (TermId, error)
	TermName(t TermId) (string, error)
	Contains(t TermId) bool
	Root() TermId
}

// DiseaseCorpus is the consumed interface for the disease corpus:
// iterable by id, with lookup.
type DiseaseCorpus interface {
	Disease(id string) (*DiseaseRecord, bool)
	Diseases() []*DiseaseRecord
	Len() int
}

// GeneIndex is the consumed interface for gene/disease linkage and
// gene-id to symbol resolution.
type GeneIndex interface {
	GenesForDisease(diseaseID string) []string
	DiseasesForGene(geneID string) []string
	Symbol(geneID string) (string, bool)
}

// BackgroundGeneRate is the consumed interface for the per-gene
// background Poisson rate table used by the genotype LR (§4.3).
type BackgroundGeneRate interface {
	Rate(geneID string) (float64, bool)
}

// GenotypeExtractor is the consumed interface that turns a variant
// source into a per-gene genotype summary plus QC counters.
type GenotypeExtractor interface {
	Extract(ctx context.Context, source string) (genotypes map[string]*Gene2Genotype, meta RunMetadata, err error)
}

// ReportRenderer is the produced-side consumer of a ranked evaluation:
// it turns a slice of DiseaseScore into an externally facing report.
type ReportRenderer interface {
	Render(scores []DiseaseScore, meta RunMetadata) ([]byte, error)
}
