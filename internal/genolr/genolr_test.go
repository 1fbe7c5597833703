package genolr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/domain"
)

type fakeGeneIndex struct {
	genesByDisease map[string][]string
}

func (f *fakeGeneIndex) GenesForDisease(diseaseID string) []string {
	return f.genesByDisease[diseaseID]
}
func (f *fakeGeneIndex) DiseasesForGene(geneID string) []string { return nil }
func (f *fakeGeneIndex) Symbol(geneID string) (string, bool)    { return geneID, true }

type fakeBackgroundRate struct {
	rate map[string]float64
}

func (f *fakeBackgroundRate) Rate(geneID string) (float64, bool) {
	r, ok := f.rate[geneID]
	return r, ok
}

func gene2genotype(geneID string, pathogenicity float64, n int) *domain.Gene2Genotype {
	g := &domain.Gene2Genotype{GeneID: geneID}
	for i := 0; i < n; i++ {
		g.Variants = append(g.Variants, domain.VariantCall{GeneID: geneID, Pathogenicity: pathogenicity, FilterPass: true})
	}
	return g
}

// A recessive disease with fewer than two pathogenic
// alleles across every linked gene gets genotype LR < 1 and category
// NO_VARIANTS_DETECTED_AR.
func TestNoVariantsDetectedARBoundary(t *testing.T) {
	d := &domain.DiseaseRecord{
		ID:               "OMIM:1",
		GeneIDs:          []string{"GENE_A"},
		InheritanceModes: []domain.ModeOfInheritance{domain.InheritanceRecessive},
	}
	e := New(
		&fakeGeneIndex{genesByDisease: map[string][]string{"OMIM:1": {"GENE_A"}}},
		&fakeBackgroundRate{rate: map[string]float64{"GENE_A": 0.01}},
	)

	// No pathogenic variants detected on the one linked gene at all.
	contribution, err := e.LR(d, map[string]*domain.Gene2Genotype{})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryNoVariantsAR, contribution.Category)
	assert.Less(t, contribution.LR, 1.0)
}

func TestNoVariantsDetectedADWithNoObservedAlleles(t *testing.T) {
	d := &domain.DiseaseRecord{
		ID:      "OMIM:2",
		GeneIDs: []string{"GENE_B"},
	}
	e := New(
		&fakeGeneIndex{genesByDisease: map[string][]string{"OMIM:2": {"GENE_B"}}},
		&fakeBackgroundRate{rate: map[string]float64{"GENE_B": 0.01}},
	)

	contribution, err := e.LR(d, map[string]*domain.Gene2Genotype{})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryNoVariantsAD, contribution.Category)
}

func TestPathogenicMatchForDominantSingleAllele(t *testing.T) {
	d := &domain.DiseaseRecord{
		ID:      "OMIM:3",
		GeneIDs: []string{"GENE_C"},
	}
	e := New(
		&fakeGeneIndex{genesByDisease: map[string][]string{"OMIM:3": {"GENE_C"}}},
		&fakeBackgroundRate{rate: map[string]float64{"GENE_C": 0.0001}},
	)

	gt := map[string]*domain.Gene2Genotype{"GENE_C": gene2genotype("GENE_C", 1.0, 1)}
	contribution, err := e.LR(d, gt)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPathogenicMatch, contribution.Category)
	assert.Greater(t, contribution.LR, 1.0)
}

func TestGeneUninformativeWithNoLinkedGenes(t *testing.T) {
	d := &domain.DiseaseRecord{ID: "OMIM:4"}
	e := New(
		&fakeGeneIndex{genesByDisease: map[string][]string{}},
		&fakeBackgroundRate{rate: map[string]float64{}},
	)

	contribution, err := e.LR(d, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryGeneUninformative, contribution.Category)
	assert.Equal(t, 1.0, contribution.LR)
}

func TestMaxOverLinkedGenesAggregation(t *testing.T) {
	d := &domain.DiseaseRecord{ID: "OMIM:5", GeneIDs: []string{"GENE_LOW", "GENE_HIGH"}}
	e := New(
		&fakeGeneIndex{genesByDisease: map[string][]string{"OMIM:5": {"GENE_LOW", "GENE_HIGH"}}},
		&fakeBackgroundRate{rate: map[string]float64{"GENE_LOW": 0.5, "GENE_HIGH": 0.0001}},
	)

	gt := map[string]*domain.Gene2Genotype{
		"GENE_LOW":  gene2genotype("GENE_LOW", 1.0, 1),
		"GENE_HIGH": gene2genotype("GENE_HIGH", 1.0, 1),
	}
	contribution, err := e.LR(d, gt)
	require.NoError(t, err)
	assert.Equal(t, "GENE_HIGH", contribution.GeneID, "GENE_HIGH has the lower background rate, so the higher LR")
}
