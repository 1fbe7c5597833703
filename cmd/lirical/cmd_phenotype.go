package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lirical-go/lirical/internal/config"
	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/phenocase"
)

var phenotypeFlags commonFlags

var phenotypeCmd = &cobra.Command{
	Use:   "phenotype",
	Short: "Rank candidate diseases from phenotype terms alone",
	Long: `Phenotype-only mode: identical to prioritize minus the genotype term.
No VCF is read even if the phenopacket names one.`,
	RunE: runPhenotype,
}

func init() {
	registerCommonFlags(phenotypeCmd, &phenotypeFlags)
}

func runPhenotype(cmd *cobra.Command, args []string) error {
	return run(&phenotypeFlags, false)
}

// run executes one case evaluation end to end: config validation,
// engine construction, phenopacket parsing, scoring, and rendering.
// withGenotype selects whether a VCF (if present) is extracted into a
// genotype map before evaluation.
func run(flags *commonFlags, withGenotype bool) error {
	cfg := flags.toConfig()

	mgr, err := config.NewManagerFromValues(cfg)
	if err != nil {
		return err
	}
	if err := mgr.Validate(); err != nil {
		return err
	}

	eng, err := buildEngine(mgr, flags)
	if err != nil {
		return err
	}

	pcase, err := phenocase.ReadFile(cfg.Lirical.PhenopacketPath)
	if err != nil {
		return err
	}

	query := pcase.Query
	meta := nowMetadata(eng.corp.Len())
	meta.SampleName = query.SampleID
	meta.OntologyVersion = "unknown"

	if withGenotype {
		vcfPath := cfg.Lirical.VCFPath
		if vcfPath == "" {
			vcfPath = pcase.VCFPath
		}
		if vcfPath != "" {
			gt, gtMeta, err := extractGenotypes(eng, vcfPath, cfg.Lirical.FilterOnFilterColumn)
			if err != nil {
				return err
			}
			query.Genotype = gt
			meta.GenesWithVariants = gtMeta.GenesWithVariants
			meta.RetainedVariants = gtMeta.RetainedVariants
			meta.FilteredVariants = gtMeta.FilteredVariants
		}
	}

	scores, err := eng.eval.Evaluate(context.Background(), query)
	if err != nil {
		return err
	}

	if err := renderAndWrite(eng, cfg, flags.outputPath, scores, meta); err != nil {
		return err
	}

	if flags.storePath != "" {
		if err := recordRun(flags.storePath, meta, scores); err != nil {
			eng.logger.WithError(err).Warn("failed to record run in audit store")
		}
	}

	topPosterior := 0.0
	if len(scores) > 0 {
		topPosterior = scores[0].Posterior
	}
	fmt.Printf("ranked %d diseases for sample %s; top hit: %s (posterior=%.4g)\n",
		len(scores), query.SampleID, topDiseaseSummary(scores), topPosterior)
	return nil
}

func topDiseaseSummary(scores []domain.DiseaseScore) string {
	if len(scores) == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%s %s", scores[0].DiseaseID, scores[0].DiseaseName)
}
