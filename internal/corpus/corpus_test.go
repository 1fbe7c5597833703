package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/domain"
)

const sampleAnnotations = "" +
	"OMIM\t154700\tMarfan syndrome\t\tHP:0001166\t\t\t\t\t\t\tP\t\n" +
	"OMIM\t154700\tMarfan syndrome\t\tHP:0000518\t\t\t\t50%\t\t\tP\t\n" +
	"OMIM\t154700\tMarfan syndrome\t\tHP:0000006\t\t\t\t\t\t\tI\t\n" +
	"OMIM\t225500\tAlport syndrome\t\tHP:0000518\t\t\t\t\t\t\tP\t\n" +
	"OMIM\t999999\tNo-annotation placeholder\tNOT\tHP:0001166\t\t\t\t\t\t\tP\t\n"

func TestLoadAnnotationsMergesAndParsesFrequency(t *testing.T) {
	records, err := LoadAnnotations(strings.NewReader(sampleAnnotations))
	require.NoError(t, err)
	require.Len(t, records, 3)

	marfan := records[0]
	require.Equal(t, "OMIM:154700", marfan.ID)
	require.Equal(t, "Marfan syndrome", marfan.Name)
	require.Len(t, marfan.Annotations, 2)

	freq, ok := marfan.AnnotationFor("HP:0000518")
	require.True(t, ok)
	assert.InDelta(t, 0.5, freq, 1e-9)

	require.Equal(t, domain.InheritanceDominant, marfan.PrimaryInheritance())
}

func TestLoadAnnotationsSkipsNotQualified(t *testing.T) {
	records, err := LoadAnnotations(strings.NewReader(sampleAnnotations))
	require.NoError(t, err)
	for _, r := range records {
		if r.ID == "OMIM:999999" {
			require.Empty(t, r.Annotations, "a NOT-qualified annotation must not contribute a foreground frequency entry")
			return
		}
	}
	t.Fatalf("expected a parsed record for OMIM:999999 even though it has no usable annotations")
}

func TestNewCorpusDropsZeroAnnotationRecords(t *testing.T) {
	records := []*domain.DiseaseRecord{
		{ID: "OMIM:1", Annotations: []domain.TermAnnotation{{Term: "HP:0000001", Frequency: 1}}},
		{ID: "OMIM:2"},
	}
	c := NewCorpus(records)
	require.Equal(t, 1, c.Len())
	_, ok := c.Disease("OMIM:2")
	require.False(t, ok)

	dropped := DroppedRecords(records)
	require.Equal(t, []string{"OMIM:2"}, dropped)
}

func TestCorpusDiseasesDeterministicOrder(t *testing.T) {
	records := []*domain.DiseaseRecord{
		{ID: "OMIM:200", Annotations: []domain.TermAnnotation{{Term: "HP:1", Frequency: 1}}},
		{ID: "OMIM:100", Annotations: []domain.TermAnnotation{{Term: "HP:1", Frequency: 1}}},
	}
	c := NewCorpus(records)
	ids := make([]string, 0, 2)
	for _, d := range c.Diseases() {
		ids = append(ids, d.ID)
	}
	require.Equal(t, []string{"OMIM:100", "OMIM:200"}, ids)
}

func TestGeneIndexLookups(t *testing.T) {
	records := []*domain.DiseaseRecord{
		{ID: "OMIM:1", GeneIDs: []string{"NM_GENE_B", "NM_GENE_A"}},
		{ID: "OMIM:2", GeneIDs: []string{"NM_GENE_A"}},
	}
	gi := NewGeneIndex(records, map[string]string{"NM_GENE_A": "FBN1"})

	require.Equal(t, []string{"NM_GENE_A", "NM_GENE_B"}, gi.GenesForDisease("OMIM:1"))
	require.Equal(t, []string{"OMIM:1", "OMIM:2"}, gi.DiseasesForGene("NM_GENE_A"))

	symbol, ok := gi.Symbol("NM_GENE_A")
	require.True(t, ok)
	require.Equal(t, "FBN1", symbol)

	_, ok = gi.Symbol("NM_GENE_B")
	require.False(t, ok, "unregistered symbol reports not-found")
}

func TestLoadGeneToDiseaseAttachesGenes(t *testing.T) {
	records := []*domain.DiseaseRecord{{ID: "OMIM:154700"}}
	input := "NM_000138\tFBN1\tOMIM:154700\n" + "NM_999999\tUNKNOWN\tOMIM:NOTPRESENT\n"

	symbols, err := LoadGeneToDisease(strings.NewReader(input), records)
	require.NoError(t, err)
	require.Equal(t, []string{"NM_000138"}, records[0].GeneIDs)
	require.Equal(t, "FBN1", symbols["NM_000138"])
}

func TestBackgroundGeneRateLookup(t *testing.T) {
	input := "NM_000138\t0.0002\n"
	rates, err := LoadBackgroundGeneRate(strings.NewReader(input))
	require.NoError(t, err)

	rate, ok := rates.Rate("NM_000138")
	require.True(t, ok)
	assert.InDelta(t, 0.0002, rate, 1e-12)

	_, ok = rates.Rate("NM_UNSEEN")
	require.False(t, ok)
}
