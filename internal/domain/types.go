// Package domain contains the core entities of the LIRICAL-style scoring
// engine: phenotype terms, disease records, background frequencies, and
// the genotype/phenotype likelihood ratios that drive disease ranking.
package domain

import "strings"

// TermId is a stable ontology term identifier, e.g. "HP:0001250".
// It is canonicalized (alias resolved to the ontology's primary id)
// before use anywhere in the scoring core.
type TermId string

// PhenotypicAbnormalityRoot is the root of the HPO phenotypic-abnormality
// subtree. Ancestor walks stop here; the root itself carries no
// information for fuzzy matching (§4.2 branch 2).
const PhenotypicAbnormalityRoot TermId = "HP:0000118"

// FPFloor is the false-positive floor used throughout the scoring core:
// the prior that an apparently never-observed term is more plausibly a
// false-positive report than a truly impossible one (1 in 200,000).
const FPFloor = 5e-6

// String renders the term id bare, e.g. "HP:0001250".
func (t TermId) String() string { return string(t) }

// Prefix returns the portion of the id before the colon, e.g. "HP".
func (t TermId) Prefix() string {
	if i := strings.IndexByte(string(t), ':'); i >= 0 {
		return string(t)[:i]
	}
	return ""
}

// Assembly is a supported genome assembly, pinning the CLI's input
// schema.
type Assembly string

const (
	AssemblyHg19 Assembly = "hg19"
	AssemblyHg38 Assembly = "hg38"
)

// TranscriptDB is a supported transcript database source.
type TranscriptDB string

const (
	TranscriptUCSC    TranscriptDB = "ucsc"
	TranscriptRefSeq  TranscriptDB = "refseq"
	TranscriptEnsembl TranscriptDB = "ensembl"
)

// OutputFormat selects the rendered report format.
type OutputFormat string

const (
	OutputHTML OutputFormat = "html"
	OutputTSV  OutputFormat = "tsv"
)

// ModeOfInheritance controls the expected pathogenic allele count under
// the disease hypothesis in the genotype LR (§4.3).
type ModeOfInheritance string

const (
	InheritanceDominant  ModeOfInheritance = "AD"
	InheritanceRecessive ModeOfInheritance = "AR"
	InheritanceXLinked   ModeOfInheritance = "XL"
	InheritanceUnknown   ModeOfInheritance = ""
)

// ExpectedAlleleCount is the minimum pathogenic allele burden the
// genotype model expects under the disease hypothesis. Unknown/missing
// MoI defaults to dominant-like (§9 Open Question: "missing MoI should
// be treated as dominant-like to avoid over-penalizing").
func (m ModeOfInheritance) ExpectedAlleleCount() int {
	if m == InheritanceRecessive {
		return 2
	}
	return 1
}

// GenotypeLRCategory is the explanatory category surfaced alongside a
// genotype LR for reporting (§4.3); it never feeds back into scoring.
type GenotypeLRCategory string

const (
	CategoryNoVariantsAR      GenotypeLRCategory = "NO_VARIANTS_DETECTED_AR"
	CategoryNoVariantsAD      GenotypeLRCategory = "NO_VARIANTS_DETECTED_AD"
	CategoryPathogenicMatch   GenotypeLRCategory = "PATHOGENIC_MATCH"
	CategoryHighBackground    GenotypeLRCategory = "HIGH_BACKGROUND"
	CategoryGeneUninformative GenotypeLRCategory = "GENE_UNINFORMATIVE"
)

// FuzzyMatchMode selects which fuzzy-match implementation the phenotype
// LR uses when a query term is not directly annotated on a disease.
// FuzzyMatchLive is the default; FuzzyMatchLegacy reimplements the
// original source's commented-out getFrequencyIfNotAnnotatedOLD as a
// configuration option, never a silent substitute.
type FuzzyMatchMode string

const (
	FuzzyMatchLive   FuzzyMatchMode = "live"
	FuzzyMatchLegacy FuzzyMatchMode = "legacy"
)
