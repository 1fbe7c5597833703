// Package genolr computes the genotype likelihood ratio: the ratio
// of a Poisson likelihood of the observed
// predicted-pathogenic allele burden under "this gene causes D" against
// the same burden under the gene's population background rate,
// maximized over every gene linked to D.
package genolr

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/numeric"
)

// Evaluator computes the genotype LR against a fixed gene index and
// background gene-rate table.
type Evaluator struct {
	genes      domain.GeneIndex
	background domain.BackgroundGeneRate
}

// New builds an Evaluator.
func New(genes domain.GeneIndex, background domain.BackgroundGeneRate) *Evaluator {
	return &Evaluator{genes: genes, background: background}
}

// noLinkedGeneFallbackRate is the background rate assumed for a gene
// absent from the background-rate table: floored the same way the
// phenotype background index floors an unseen term, rather than
// erroring. With a near-zero background rate, a pathogenic allele
// observed in such a gene yields a large genotype LR.
const noLinkedGeneFallbackRate = domain.FPFloor

// LR returns the genotype likelihood ratio for disease d given the
// patient's per-gene genotype map, the best (max) per-gene
// contribution, plus its log. Genes linked to d with no entry in gt are
// scored at an observed count of zero. A disease with no linked genes
// returns LR=1, category GENE_UNINFORMATIVE.
func (e *Evaluator) LR(d *domain.DiseaseRecord, gt map[string]*domain.Gene2Genotype) (domain.GeneContribution, error) {
	geneIDs := e.genes.GenesForDisease(d.ID)
	if len(geneIDs) == 0 {
		return domain.GeneContribution{GeneID: "", LR: 1.0, LogLR: 0.0, Category: domain.CategoryGeneUninformative}, nil
	}

	moi := d.PrimaryInheritance()
	expected := float64(moi.ExpectedAlleleCount())

	var best domain.GeneContribution
	haveBest := false

	for _, geneID := range geneIDs {
		var observed float64
		if g, ok := gt[geneID]; ok {
			observed = g.PathogenicAlleleCount()
		}

		lambdaBg, ok := e.background.Rate(geneID)
		if !ok {
			lambdaBg = noLinkedGeneFallbackRate
		}

		logLikelihoodD := distuv.Poisson{Lambda: expected}.LogProb(observed)
		logLikelihoodBg := distuv.Poisson{Lambda: lambdaBg}.LogProb(observed)
		logLR := logLikelihoodD - logLikelihoodBg

		if err := numeric.CheckFinite("genotype_lr", logLR); err != nil {
			return domain.GeneContribution{}, err
		}

		lr, err := numeric.Exp(logLR)
		if err != nil {
			return domain.GeneContribution{}, err
		}

		contribution := domain.GeneContribution{
			GeneID:   geneID,
			LR:       lr,
			LogLR:    logLR,
			Category: categorize(observed, moi, logLR),
		}

		if !haveBest || contribution.LR > best.LR {
			best = contribution
			haveBest = true
		}
	}

	return best, nil
}

// categorize assigns the explanatory category, used
// for reporting only — it never feeds back into the LR computation.
func categorize(observed float64, moi domain.ModeOfInheritance, logLR float64) domain.GenotypeLRCategory {
	if moi == domain.InheritanceRecessive {
		if observed < 2 {
			return domain.CategoryNoVariantsAR
		}
	} else if observed < 1 {
		return domain.CategoryNoVariantsAD
	}
	if logLR < 0 {
		return domain.CategoryHighBackground
	}
	return domain.CategoryPathogenicMatch
}
