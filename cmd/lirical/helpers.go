package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/genotype"
	"github.com/lirical-go/lirical/internal/report"
	"github.com/lirical-go/lirical/internal/store"
)

// extractGenotypes runs the VCF-backed GenotypeExtractor. Variant
// pathogenicity/frequency storage is out of scope for this core (an
// opaque lookup by design) and no transcript-database parser is wired
// (the transcript_db option is pinned but not implemented here) — so
// the default lookups return "unannotated" for
// every variant, and the extractor discards it as filtered rather than
// fabricating a pathogenicity score. Operators wiring in a real
// ClinVar/dbNSFP-backed store inject PathogenicityLookup/GeneLookup
// into genotype.NewVCFGenotypeExtractor directly when embedding this
// engine as a library.
func extractGenotypes(eng *engine, vcfPath string, filterOnFilterColumn bool) (map[string]*domain.Gene2Genotype, domain.RunMetadata, error) {
	noAnnotation := func(chrom string, pos int64, ref, alt string) (float64, float64, bool) { return 0, 0, false }
	noGene := func(chrom string, pos int64) (string, bool) { return "", false }

	extractor := genotype.NewVCFGenotypeExtractor(noAnnotation, noGene, filterOnFilterColumn, eng.logger)
	gt, meta, err := extractor.Extract(context.Background(), vcfPath)
	if err != nil {
		return nil, domain.RunMetadata{}, err
	}
	if len(gt) == 0 {
		eng.logger.Warn("no pathogenicity/gene annotation source configured: every VCF variant was discarded; genotype LR will be uninformative for every disease")
	}
	return gt, meta, nil
}

// renderAndWrite selects the html/tsv renderer per cfg.Lirical.OutputFormat
// and writes it to outputPath (or a name derived from the sample id).
func renderAndWrite(eng *engine, cfg domain.Config, outputPath string, scores []domain.DiseaseScore, meta domain.RunMetadata) error {
	var renderer domain.ReportRenderer
	ext := "tsv"
	switch cfg.Lirical.OutputFormat {
	case domain.OutputTSV:
		renderer = report.NewTSVRenderer()
	default:
		htmlRenderer, err := report.NewHTMLRenderer()
		if err != nil {
			return err
		}
		renderer = htmlRenderer
		ext = "html"
	}

	data, err := renderer.Render(scores, meta)
	if err != nil {
		return err
	}

	path := outputPath
	if path == "" {
		sample := meta.SampleName
		if sample == "" {
			sample = "lirical"
		}
		path = fmt.Sprintf("%s.%s", sample, ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { // #nosec G306 -- report output is not sensitive
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	eng.logger.WithField("path", path).Info("report written")
	return nil
}

// recordRun opens the audit store, records the run, and closes it. A
// short-lived connection per invocation is fine at CLI scale (one run
// per process).
func recordRun(storePath string, meta domain.RunMetadata, scores []domain.DiseaseScore) error {
	s, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer s.Close()
	_, err = s.RecordRun(context.Background(), meta, scores)
	return err
}
