package corpus

import (
	"sort"

	"github.com/lirical-go/lirical/internal/domain"
)

// GeneIndex is the gene<->disease multimap implementing
// domain.GeneIndex, the "Gene/disease index" collaborator the genotype
// LR component queries to find the diseases a variant's
// gene can support and the genes that can support a given disease.
type GeneIndex struct {
	genesByDisease map[string][]string
	diseasesByGene map[string][]string
	symbolByGeneID map[string]string
}

// NewGeneIndex builds a GeneIndex from the corpus's disease records.
// Disease records with no GeneIDs contribute nothing; the resulting
// index is immutable.
func NewGeneIndex(records []*domain.DiseaseRecord, symbols map[string]string) *GeneIndex {
	gi := &GeneIndex{
		genesByDisease: make(map[string][]string),
		diseasesByGene: make(map[string][]string),
		symbolByGeneID: make(map[string]string),
	}
	for k, v := range symbols {
		gi.symbolByGeneID[k] = v
	}
	for _, r := range records {
		if len(r.GeneIDs) == 0 {
			continue
		}
		genes := append([]string(nil), r.GeneIDs...)
		sort.Strings(genes)
		gi.genesByDisease[r.ID] = genes
		for _, g := range genes {
			gi.diseasesByGene[g] = append(gi.diseasesByGene[g], r.ID)
		}
	}
	for g, diseases := range gi.diseasesByGene {
		sort.Strings(diseases)
		gi.diseasesByGene[g] = diseases
	}
	return gi
}

// GenesForDisease returns the gene ids linked to a disease, in a
// deterministic (sorted) order.
func (gi *GeneIndex) GenesForDisease(diseaseID string) []string {
	return gi.genesByDisease[diseaseID]
}

// DiseasesForGene returns the disease ids a gene is linked to.
func (gi *GeneIndex) DiseasesForGene(geneID string) []string {
	return gi.diseasesByGene[geneID]
}

// Symbol returns the human-readable gene symbol for a gene id.
func (gi *GeneIndex) Symbol(geneID string) (string, bool) {
	s, ok := gi.symbolByGeneID[geneID]
	return s, ok
}
