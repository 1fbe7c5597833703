package evaluator

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/corpus"
	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/ontology"
)

const testOBO = `
[Term]
id: HP:0000118
name: Phenotypic abnormality

[Term]
id: HP:0000707
name: Abnormality of the nervous system
is_a: HP:0000118 ! Phenotypic abnormality

[Term]
id: HP:0001250
name: Seizure
is_a: HP:0000707 ! Abnormality of the nervous system

[Term]
id: HP:0000478
name: Abnormality of the eye
is_a: HP:0000118 ! Phenotypic abnormality

[Term]
id: HP:0000518
name: Cataract
is_a: HP:0000478 ! Abnormality of the eye

[Term]
id: HP:0012372
name: Abnormality of eye movement
is_a: HP:0000478 ! Abnormality of the eye

[Term]
id: HP:0001251
name: Ataxia
is_a: HP:0000707 ! Abnormality of the nervous system
`

type emptyGeneIndex struct{}

func (emptyGeneIndex) GenesForDisease(string) []string     { return nil }
func (emptyGeneIndex) DiseasesForGene(string) []string     { return nil }
func (emptyGeneIndex) Symbol(geneID string) (string, bool) { return geneID, false }

type emptyBackgroundRate struct{}

func (emptyBackgroundRate) Rate(string) (float64, bool) { return 0, false }

func buildEvaluator(t *testing.T, n int) *Evaluator {
	t.Helper()
	ont, err := ontology.LoadOBO(strings.NewReader(testOBO), domain.PhenotypicAbnormalityRoot)
	require.NoError(t, err)

	terms := []domain.TermId{"HP:0001250", "HP:0000518", "HP:0012372"}
	records := make([]*domain.DiseaseRecord, 0, n)
	for i := 0; i < n; i++ {
		term := terms[i%len(terms)]
		records = append(records, &domain.DiseaseRecord{
			ID:          "OMIM:" + strconv.Itoa(1000+i),
			Name:        "disease " + strconv.Itoa(i),
			Annotations: []domain.TermAnnotation{{Term: term, Frequency: 1.0}},
		})
	}
	c := corpus.NewCorpus(records)

	bg, err := background.Build(ont, records)
	require.NoError(t, err)

	e, err := New(ont, c, bg, emptyGeneIndex{}, emptyBackgroundRate{}, domain.FuzzyMatchLive, nil)
	require.NoError(t, err)
	return e
}

func TestEvaluateDeterministicAcrossRuns(t *testing.T) {
	e := buildEvaluator(t, 20)
	query := domain.CaseQuery{
		SampleID: "sample-1",
		Observed: []domain.TermId{"HP:0001250"},
		Excluded: []domain.TermId{"HP:0000518"},
	}

	first, err := e.Evaluate(context.Background(), query)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), query)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].DiseaseID, second[i].DiseaseID)
		assert.Equal(t, first[i].Posterior, second[i].Posterior)
	}
}

func TestEvaluatePosteriorsSumToOne(t *testing.T) {
	e := buildEvaluator(t, 30)
	query := domain.CaseQuery{Observed: []domain.TermId{"HP:0001250"}}

	scores, err := e.Evaluate(context.Background(), query)
	require.NoError(t, err)

	var total float64
	for _, s := range scores {
		total += s.Posterior
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEvaluateTieBreakByDiseaseID(t *testing.T) {
	e := buildEvaluator(t, 10)
	// No observed/excluded terms at all: every disease ties at the same
	// pretest-prior-only score, so the sort must fall back to id order.
	scores, err := e.Evaluate(context.Background(), domain.CaseQuery{})
	require.NoError(t, err)

	for i := 1; i < len(scores); i++ {
		assert.LessOrEqual(t, scores[i-1].DiseaseID, scores[i].DiseaseID)
	}
}

// Boundary: empty observed + non-empty excluded still produces a full
// ranking over every disease in the corpus.
func TestEvaluateEmptyObservedNonEmptyExcluded(t *testing.T) {
	e := buildEvaluator(t, 15)
	scores, err := e.Evaluate(context.Background(), domain.CaseQuery{
		Excluded: []domain.TermId{"HP:0000518"},
	})
	require.NoError(t, err)
	assert.Len(t, scores, 15)
}

// Phenotype-only mode: 5 observed + 2 excluded terms against a
// 200-disease corpus produces output of length 200.
func TestEvaluatePhenotypeOnlyModeFullCorpus(t *testing.T) {
	e := buildEvaluator(t, 200)
	scores, err := e.Evaluate(context.Background(), domain.CaseQuery{
		Observed: []domain.TermId{"HP:0001250", "HP:0000518", "HP:0012372", "HP:0000707", "HP:0000478"},
		Excluded: []domain.TermId{"HP:0000118", "HP:0001251"},
	})
	require.NoError(t, err)
	assert.Len(t, scores, 200)
}

func TestEvaluateRejectsOverlappingObservedAndExcluded(t *testing.T) {
	e := buildEvaluator(t, 5)
	_, err := e.Evaluate(context.Background(), domain.CaseQuery{
		Observed: []domain.TermId{"HP:0012372"},
		Excluded: []domain.TermId{"HP:0012372"},
	})
	require.Error(t, err)
	var inconsistent *domain.InconsistentInputsError
	require.ErrorAs(t, err, &inconsistent)
}

func TestEvaluateRejectsUnknownTerm(t *testing.T) {
	e := buildEvaluator(t, 5)
	_, err := e.Evaluate(context.Background(), domain.CaseQuery{
		Observed: []domain.TermId{"HP:9999999"},
	})
	require.Error(t, err)
	var unknown *domain.UnknownTermError
	require.ErrorAs(t, err, &unknown)
}
