// Package corpus holds the in-memory disease corpus and gene/disease
// index — the "Disease corpus" and "Gene/disease index" external
// collaborators of the scoring pipeline. Nothing in this package computes
// an LR; it only loads and indexes what internal/background,
// internal/phenolr, internal/genolr and internal/evaluator consume.
package corpus

import (
	"sort"

	"github.com/lirical-go/lirical/internal/domain"
)

// Corpus is an immutable, load-once collection of disease records,
// implementing domain.DiseaseCorpus.
type Corpus struct {
	diseases map[string]*domain.DiseaseRecord
	ordered  []string // disease ids in sorted order, for deterministic iteration
}

// NewCorpus builds a Corpus from already-parsed disease records,
// dropping (and letting the caller log) any record with zero
// phenotypic-abnormality annotations, which is a non-fatal condition.
func NewCorpus(records []*domain.DiseaseRecord) *Corpus {
	c := &Corpus{diseases: make(map[string]*domain.DiseaseRecord, len(records))}
	for _, r := range records {
		if len(r.Annotations) == 0 {
			continue
		}
		if _, exists := c.diseases[r.ID]; !exists {
			c.ordered = append(c.ordered, r.ID)
		}
		c.diseases[r.ID] = r
	}
	sort.Strings(c.ordered)
	return c
}

// Disease looks up a disease record by id.
func (c *Corpus) Disease(id string) (*domain.DiseaseRecord, bool) {
	d, ok := c.diseases[id]
	return d, ok
}

// Diseases returns every disease record, in deterministic (sorted-id)
// order — the case evaluator relies on this for tie-break determinism.
func (c *Corpus) Diseases() []*domain.DiseaseRecord {
	out := make([]*domain.DiseaseRecord, 0, len(c.ordered))
	for _, id := range c.ordered {
		out = append(out, c.diseases[id])
	}
	return out
}

// Len returns the number of diseases in the corpus.
func (c *Corpus) Len() int { return len(c.diseases) }

// DroppedRecords reports which of the originally parsed records were
// dropped for having no phenotypic-abnormality annotations, letting the
// caller log each one.
func DroppedRecords(all []*domain.DiseaseRecord) []string {
	var dropped []string
	for _, r := range all {
		if len(r.Annotations) == 0 {
			dropped = append(dropped, r.ID)
		}
	}
	return dropped
}
