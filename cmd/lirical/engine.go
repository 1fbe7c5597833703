package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/config"
	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/evaluator"
	"github.com/lirical-go/lirical/internal/logging"
	"github.com/lirical-go/lirical/internal/ontology"
)

// commonFlags pins the required/optional CLI input schema: data-dir
// and phenopacket paths required, everything else optional with a
// sane default.
type commonFlags struct {
	dataDir              string
	exomiserDir          string
	phenopacketPath      string
	vcfPath              string
	assembly             string
	transcriptDB         string
	backgroundFile       string
	outputFormat         string
	filterOnFilterColumn bool
	fuzzyMatch           string
	cacheDir             string
	storePath            string
	outputPath           string
}

func registerCommonFlags(cmd *cobra.Command, f *commonFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.dataDir, "data-dir", "", "path to annotation/ontology data directory (required)")
	flags.StringVar(&f.phenopacketPath, "phenopacket", "", "path to the observed HPO terms phenopacket (required)")
	flags.StringVar(&f.exomiserDir, "exomiser-dir", "", "path to the Exomiser data directory")
	flags.StringVar(&f.vcfPath, "vcf", "", "path to a VCF file (overrides the phenopacket's vcf_path)")
	flags.StringVar(&f.assembly, "assembly", string(domain.AssemblyHg38), "genome assembly: hg19 or hg38")
	flags.StringVar(&f.transcriptDB, "transcript-db", string(domain.TranscriptRefSeq), "transcript database: ucsc, refseq, or ensembl")
	flags.StringVar(&f.backgroundFile, "background-file", "", "path to a custom background frequency file")
	flags.StringVar(&f.outputFormat, "output-format", string(domain.OutputHTML), "output format: html or tsv")
	flags.BoolVar(&f.filterOnFilterColumn, "filter-on-filter-column", true, "discard variants whose VCF FILTER column is neither PASS nor '.'")
	flags.StringVar(&f.fuzzyMatch, "fuzzy-match", string(domain.FuzzyMatchLive), "fuzzy-match policy: live or legacy")
	flags.StringVar(&f.cacheDir, "cache-dir", ".lirical-cache", "directory for the background-index disk cache")
	flags.StringVar(&f.storePath, "store", "", "path to the run/QC audit sqlite database (disabled if empty)")
	flags.StringVarP(&f.outputPath, "out", "o", "", "output file path (default: <sample>.<format> in the working directory)")
}

func (f *commonFlags) toConfig() domain.Config {
	return domain.Config{
		Lirical: domain.LiricalConfig{
			DataDir:              f.dataDir,
			ExomiserDir:          f.exomiserDir,
			PhenopacketPath:      f.phenopacketPath,
			VCFPath:              f.vcfPath,
			Assembly:             domain.Assembly(f.assembly),
			TranscriptDB:         domain.TranscriptDB(f.transcriptDB),
			BackgroundFile:       f.backgroundFile,
			FilterOnFilterColumn: f.filterOnFilterColumn,
			OutputFormat:         domain.OutputFormat(f.outputFormat),
			FuzzyMatch:           domain.FuzzyMatchMode(f.fuzzyMatch),
			CacheDir:             f.cacheDir,
		},
		Logging: domain.LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
		Store:   domain.StoreConfig{Path: f.storePath},
	}
}

// engine bundles the load-time collaborators the CLI hands to
// internal/evaluator, plus the logger the CLI driver and the genotype
// extractor write to.
type engine struct {
	logger *logrus.Logger
	ont    *ontology.Ontology
	corp   *corpus.Corpus
	genes  *corpus.GeneIndex
	bgRate *corpus.BackgroundGeneRate
	bg     *background.Index
	eval   *evaluator.Evaluator
	cfg    domain.Config
}

// These constants name the fixed on-disk layout this driver expects
// inside data-dir: the ontology as hp.obo, and tab-delimited annotation,
// gene-to-disease and gene-background files, the annotation file shaped
// like the small_phenoannot.tab test fixture.
const (
	fileOntology       = "hp.obo"
	fileAnnotations    = "phenotype_annotation.tab"
	fileGeneToDisease  = "Homo_sapiens_gene2disease.tab"
	fileGeneBackground = "gene_background_rates.tab"
)

func buildEngine(cfgMgr *config.Manager, flags *commonFlags) (*engine, error) {
	cfg := cfgMgr.GetConfig()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	ont, err := loadOntology(filepath.Join(cfg.Lirical.DataDir, fileOntology))
	if err != nil {
		return nil, err
	}
	logger.WithField("terms", "loaded").Info("ontology loaded")

	records, err := loadAnnotations(filepath.Join(cfg.Lirical.DataDir, fileAnnotations))
	if err != nil {
		return nil, err
	}
	if dropped := corpus.DroppedRecords(records); len(dropped) > 0 {
		logger.WithField("dropped", len(dropped)).Warn("dropped disease records with zero phenotypic-abnormality annotations")
	}
	corp := corpus.NewCorpus(records)
	logger.WithField("diseases", corp.Len()).Info("disease corpus loaded")

	symbols, err := loadGeneToDisease(filepath.Join(cfg.Lirical.DataDir, fileGeneToDisease), records)
	if err != nil {
		return nil, err
	}
	geneIdx := corpus.NewGeneIndex(records, symbols)

	bgRatePath := flags.backgroundFile
	if bgRatePath == "" {
		bgRatePath = filepath.Join(cfg.Lirical.DataDir, fileGeneBackground)
	}
	bgRate, err := loadBackgroundGeneRate(bgRatePath)
	if err != nil {
		return nil, err
	}

	bgIndex, err := buildBackgroundIndex(cfg.Lirical.CacheDir, ont, corp.Diseases(), logger)
	if err != nil {
		return nil, err
	}

	eval, err := evaluator.New(ont, corp, bgIndex, geneIdx, bgRate, cfg.Lirical.FuzzyMatch, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluator: %w", err)
	}

	return &engine{
		logger: logger,
		ont:    ont,
		corp:   corp,
		genes:  geneIdx,
		bgRate: bgRate,
		bg:     bgIndex,
		eval:   eval,
		cfg:    *cfg,
	}, nil
}

func loadOntology(path string) (*ontology.Ontology, error) {
	f, err := os.Open(path) // #nosec G304 -- path built from operator-supplied data-dir
	if err != nil {
		return nil, domain.NewConfigError("data_dir", fmt.Sprintf("cannot open ontology file %s: %v", path, err))
	}
	defer f.Close()
	return ontology.LoadOBO(f, domain.PhenotypicAbnormalityRoot)
}

func loadAnnotations(path string) ([]*domain.DiseaseRecord, error) {
	f, err := os.Open(path) // #nosec G304 -- path built from operator-supplied data-dir
	if err != nil {
		return nil, domain.NewConfigError("data_dir", fmt.Sprintf("cannot open annotation file %s: %v", path, err))
	}
	defer f.Close()
	return corpus.LoadAnnotations(f)
}

func loadGeneToDisease(path string, records []*domain.DiseaseRecord) (map[string]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path built from operator-supplied data-dir
	if err != nil {
		// Gene-disease linkage is optional: phenotype-only mode runs
		// without it, at the cost of every disease's genotype LR
		// being uninformative: no linked gene means genotype LR=1.
		return map[string]string{}, nil
	}
	defer f.Close()
	return corpus.LoadGeneToDisease(f, records)
}

func loadBackgroundGeneRate(path string) (*corpus.BackgroundGeneRate, error) {
	f, err := os.Open(path) // #nosec G304 -- path built from operator-supplied data-dir/background-file flag
	if err != nil {
		return corpus.NewBackgroundGeneRate(map[string]float64{}), nil
	}
	defer f.Close()
	return corpus.LoadBackgroundGeneRate(f)
}

func buildBackgroundIndex(cacheDir string, ont *ontology.Ontology, diseases []*domain.DiseaseRecord, logger *logrus.Logger) (*background.Index, error) {
	checksum := background.Checksum(ont, diseases)
	cachePath := filepath.Join(cacheDir, "background_index.gob")

	if idx, hit, err := background.LoadCache(cachePath, checksum); err != nil {
		logger.WithError(err).Warn("failed to read background index cache, rebuilding")
	} else if hit {
		logger.Info("background index loaded from cache")
		return idx, nil
	}

	idx, err := background.Build(ont, diseases)
	if err != nil {
		return nil, fmt.Errorf("failed to build background index: %w", err)
	}
	if err := background.SaveCache(cachePath, checksum, idx); err != nil {
		logger.WithError(err).Warn("failed to write background index cache")
	}
	return idx, nil
}

func nowMetadata(corpusSize int) domain.RunMetadata {
	return domain.RunMetadata{AnalysisDate: time.Now(), CorpusSize: corpusSize}
}
