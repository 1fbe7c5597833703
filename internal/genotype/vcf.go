// Package genotype implements the VCF-backed domain.GenotypeExtractor.
// Variant pathogenicity and gene assignment are treated as opaque
// lookups (storage of variant pathogenicity/frequency is out of scope
// for this package) — it only walks VCF
// records and turns PASS-filtered, gene-assignable variants into
// Gene2Genotype burden counts.
package genotype

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/brentp/vcfgo"
	"github.com/sirupsen/logrus"

	"github.com/lirical-go/lirical/internal/domain"
)

// PathogenicityLookup resolves a variant's predicted pathogenicity and
// population frequency from an external annotation source (e.g. a
// cached ClinVar/dbNSFP index). ok is false when the variant has no
// annotation, in which case the caller discards it.
type PathogenicityLookup func(chrom string, pos int64, ref, alt string) (pathogenicity, populationFreq float64, ok bool)

// GeneLookup resolves the gene a genomic position falls within (e.g.
// from a cached transcript-database interval index). ok is false for
// intergenic positions.
type GeneLookup func(chrom string, pos int64) (geneID string, ok bool)

// VCFGenotypeExtractor implements domain.GenotypeExtractor against
// brentp/vcfgo, producing one Gene2Genotype per gene that has at least
// one retained variant.
type VCFGenotypeExtractor struct {
	Pathogenicity        PathogenicityLookup
	Gene                 GeneLookup
	FilterOnFilterColumn bool
	Logger               *logrus.Logger
}

// NewVCFGenotypeExtractor builds an extractor with the given opaque
// lookups.
func NewVCFGenotypeExtractor(pathogenicity PathogenicityLookup, gene GeneLookup, filterOnFilterColumn bool, logger *logrus.Logger) *VCFGenotypeExtractor {
	return &VCFGenotypeExtractor{
		Pathogenicity:        pathogenicity,
		Gene:                 gene,
		FilterOnFilterColumn: filterOnFilterColumn,
		Logger:               logger,
	}
}

// Extract streams the VCF at path, assigning each retained,
// pathogenicity-annotated variant to its gene. A variant is discarded
// (counted in meta.FilteredVariants) when: FILTER-column enforcement is
// on and the column is neither "PASS" nor ".", the pathogenicity lookup
// has no entry, or the gene lookup cannot place it in a gene.
func (e *VCFGenotypeExtractor) Extract(ctx context.Context, path string) (map[string]*domain.Gene2Genotype, domain.RunMetadata, error) {
	meta := domain.RunMetadata{SampleName: path}

	f, err := os.Open(path) // #nosec G304 -- path is operator-supplied configuration
	if err != nil {
		return nil, meta, domain.NewParseError("vcf", err)
	}
	defer f.Close()

	var r io.Reader = f
	if gz, gzErr := gzip.NewReader(bufio.NewReader(f)); gzErr == nil {
		r = gz
		defer gz.Close()
	} else {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return nil, meta, domain.NewParseError("vcf", seekErr)
		}
	}

	reader, err := vcfgo.NewReader(bufio.NewReaderSize(r, 64*1024), false)
	if err != nil {
		return nil, meta, domain.NewParseError("vcf", err)
	}
	defer reader.Close()

	if len(reader.Header.SampleNames) > 0 {
		meta.SampleName = reader.Header.SampleNames[0]
	}

	genotypes := make(map[string]*domain.Gene2Genotype)

	for {
		if err := ctx.Err(); err != nil {
			return nil, meta, err
		}

		variant := reader.Read()
		if variant == nil {
			break
		}

		if e.FilterOnFilterColumn && variant.Filter != "PASS" && variant.Filter != "." {
			meta.FilteredVariants++
			continue
		}

		geneID, ok := e.Gene(variant.Chromosome, variant.Pos)
		if !ok {
			meta.FilteredVariants++
			continue
		}

		alts := variant.Alt()
		ref := variant.Ref()
		var retainedAny bool
		for _, alt := range alts {
			pathogenicity, popFreq, ok := e.Pathogenicity(variant.Chromosome, variant.Pos, ref, alt)
			if !ok {
				continue
			}

			call := domain.VariantCall{
				Chromosome:     variant.Chromosome,
				Position:       variant.Pos,
				Reference:      ref,
				Alternative:    alt,
				GeneID:         geneID,
				Pathogenicity:  pathogenicity,
				PopulationFreq: popFreq,
				FilterPass:     true,
			}

			g, exists := genotypes[geneID]
			if !exists {
				g = &domain.Gene2Genotype{GeneID: geneID}
				genotypes[geneID] = g
			}
			g.Variants = append(g.Variants, call)
			retainedAny = true
		}

		if retainedAny {
			meta.RetainedVariants++
		} else {
			meta.FilteredVariants++
		}
	}

	if err := reader.Error(); err != nil {
		e.logf("vcf reader reported a non-fatal error: %v", err)
	}

	meta.GenesWithVariants = len(genotypes)
	return genotypes, meta, nil
}

func (e *VCFGenotypeExtractor) logf(format string, args ...interface{}) {
	if e.Logger == nil {
		return
	}
	e.Logger.WithField("component", "genotype_extractor").Warn(fmt.Sprintf(format, args...))
}

var _ domain.GenotypeExtractor = (*VCFGenotypeExtractor)(nil)
