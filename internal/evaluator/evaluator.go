// Package evaluator implements the case evaluator: it
// canonicalizes a patient's observed/excluded phenotype terms, scores
// every disease in the corpus in parallel, and returns a
// posterior-ranked, deterministically tie-broken list.
package evaluator

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/genolr"
	"github.com/lirical-go/lirical/internal/numeric"
	"github.com/lirical-go/lirical/internal/phenolr"
)

// Evaluator ties together the read-only collaborators (ontology,
// corpus, background index, gene index) and the per-term/per-gene LR
// evaluators into the single entry point a case is scored through.
type Evaluator struct {
	ont      domain.Ontology
	corpus   domain.DiseaseCorpus
	pheno    *phenolr.Evaluator
	geno     *genolr.Evaluator
	priorLog float64 // log(1/|corpus|), the uniform pretest prior unless overridden
}

// New builds an Evaluator. priorOverride, when non-nil, replaces the
// uniform 1/|corpus| pretest prior with a caller-supplied value in
// (0,1].
func New(ont domain.Ontology, corpus domain.DiseaseCorpus, bg *background.Index, genes domain.GeneIndex, bgGeneRate domain.BackgroundGeneRate, fuzzyMode domain.FuzzyMatchMode, priorOverride *float64) (*Evaluator, error) {
	prior := 1.0
	if corpus.Len() > 0 {
		prior = 1.0 / float64(corpus.Len())
	}
	if priorOverride != nil {
		prior = *priorOverride
	}
	priorLog, err := numeric.Log("pretest_prior", prior)
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		ont:      ont,
		corpus:   corpus,
		pheno:    phenolr.New(ont, bg, fuzzyMode),
		geno:     genolr.New(genes, bgGeneRate),
		priorLog: priorLog,
	}, nil
}

// Evaluate runs the full case-evaluator algorithm,
// scoring every disease in the corpus and returning them sorted by
// posterior descending, ties broken by disease id ascending.
func (e *Evaluator) Evaluate(ctx context.Context, query domain.CaseQuery) ([]domain.DiseaseScore, error) {
	observed, excluded, err := e.canonicalize(query.Observed, query.Excluded)
	if err != nil {
		return nil, err
	}

	diseases := e.corpus.Diseases()
	scores := make([]domain.DiseaseScore, len(diseases))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, d := range diseases {
		i, d := i, d
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			score, err := e.scoreDisease(d, observed, excluded, query.Genotype)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := normalizePosteriors(scores); err != nil {
		return nil, err
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Posterior != scores[j].Posterior {
			return scores[i].Posterior > scores[j].Posterior
		}
		return scores[i].DiseaseID < scores[j].DiseaseID
	})
	return scores, nil
}

// canonicalize resolves every term to its ontology primary id and
// rejects overlapping observed/excluded sets.
func (e *Evaluator) canonicalize(observed, excluded []domain.TermId) ([]domain.TermId, []domain.TermId, error) {
	canonObserved, err := e.canonicalizeSet(observed)
	if err != nil {
		return nil, nil, err
	}
	canonExcluded, err := e.canonicalizeSet(excluded)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[domain.TermId]struct{}, len(canonObserved))
	for _, t := range canonObserved {
		seen[t] = struct{}{}
	}
	for _, t := range canonExcluded {
		if _, clash := seen[t]; clash {
			return nil, nil, domain.NewInconsistentInputsError("term " + string(t) + " is reported as both observed and excluded")
		}
	}
	return canonObserved, canonExcluded, nil
}

func (e *Evaluator) canonicalizeSet(terms []domain.TermId) ([]domain.TermId, error) {
	out := make([]domain.TermId, len(terms))
	for i, t := range terms {
		primary, err := e.ont.PrimaryID(t)
		if err != nil {
			return nil, err
		}
		out[i] = primary
	}
	return out, nil
}

// scoreDisease computes log_lr for one disease: the sum of per-term
// phenotype LRs plus, when a genotype map is supplied, the genotype LR.
func (e *Evaluator) scoreDisease(d *domain.DiseaseRecord, observed, excluded []domain.TermId, gt map[string]*domain.Gene2Genotype) (domain.DiseaseScore, error) {
	score := domain.DiseaseScore{DiseaseID: d.ID, DiseaseName: d.Name}

	logLRs := make([]float64, 0, len(observed)+len(excluded)+1)

	for _, q := range observed {
		lr, logLR, err := e.pheno.LR(q, false, d)
		if err != nil {
			return domain.DiseaseScore{}, err
		}
		score.TermLRs = append(score.TermLRs, domain.TermContribution{Term: q, Excluded: false, LR: lr, LogLR: logLR})
		logLRs = append(logLRs, logLR)
	}
	for _, q := range excluded {
		lr, logLR, err := e.pheno.LR(q, true, d)
		if err != nil {
			return domain.DiseaseScore{}, err
		}
		score.TermLRs = append(score.TermLRs, domain.TermContribution{Term: q, Excluded: true, LR: lr, LogLR: logLR})
		logLRs = append(logLRs, logLR)
	}

	if gt != nil {
		contribution, err := e.geno.LR(d, gt)
		if err != nil {
			return domain.DiseaseScore{}, err
		}
		score.GeneLRs = append(score.GeneLRs, contribution)
		logLRs = append(logLRs, contribution.LogLR)
	}

	sumLog, err := numeric.SumLog(logLRs)
	if err != nil {
		return domain.DiseaseScore{}, err
	}
	score.LogLR = sumLog + e.priorLog
	return score, nil
}

// normalizePosteriors converts every score's log_lr+log_prior into a
// normalized posterior over the candidate set.
func normalizePosteriors(scores []domain.DiseaseScore) error {
	maxLog := math.Inf(-1)
	for _, s := range scores {
		if s.LogLR > maxLog {
			maxLog = s.LogLR
		}
	}

	var total float64
	weights := make([]float64, len(scores))
	for i, s := range scores {
		w, err := numeric.Exp(s.LogLR - maxLog)
		if err != nil {
			return err
		}
		weights[i] = w
		total += w
	}
	if err := numeric.CheckFinite("posterior_normalization", total); err != nil {
		return err
	}
	if total == 0 {
		return domain.NewNumericError("posterior_normalization", "all candidate weights underflowed to zero")
	}

	for i := range scores {
		scores[i].Posterior = weights[i] / total
	}
	return nil
}
