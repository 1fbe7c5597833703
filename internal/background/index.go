// Package background builds and serves the background term-frequency
// index: for every term reachable from the ontology root, the fraction
// of the disease corpus annotated with it, directly or through ontology
// propagation.
package background

import (
	"github.com/lirical-go/lirical/internal/domain"
)

// Index is the immutable, load-once background frequency table.
// Built once and shared read-only across an entire evaluation run.
type Index struct {
	values map[domain.TermId]float64
	floor  float64
}

// Build seeds every descendant of the ontology root with 0.0, propagates
// each disease's annotated frequency to every ancestor of the annotated
// term, then normalizes by corpus size. ont must already contain every
// term the corpus annotates; an unresolvable term surfaces as
// *domain.UnknownTermError. After construction, every seeded term is
// verified to have a computed entry — a term reachable from root that
// somehow ends up without one signals an Ancestors/Descendants
// inconsistency in the Ontology implementation, surfaced as
// *domain.MissingBackgroundError rather than silently falling back to
// the floor at lookup time.
func Build(ont domain.Ontology, diseases []*domain.DiseaseRecord) (*Index, error) {
	descendants, err := ont.Descendants(ont.Root())
	if err != nil {
		return nil, err
	}

	sums := make(map[domain.TermId]float64, len(descendants))
	for t := range descendants {
		sums[t] = 0.0
	}

	for _, d := range diseases {
		for _, ann := range d.Annotations {
			ancestors, err := ont.Ancestors(ann.Term, true)
			if err != nil {
				return nil, err
			}
			for a := range ancestors {
				sums[a] += ann.Frequency
			}
		}
	}

	n := float64(len(diseases))
	values := make(map[domain.TermId]float64, len(sums))
	for term, sum := range sums {
		v := 0.0
		if n > 0 {
			v = sum / n
		}
		values[term] = v
	}

	for t := range descendants {
		if _, ok := values[t]; !ok {
			return nil, domain.NewMissingBackgroundError(t)
		}
	}

	return &Index{values: values, floor: domain.FPFloor}, nil
}

// Lookup returns the background frequency for t, clamped to
// [FP_FLOOR, 1]. A term annotated on no disease is seeded at 0.0 by
// Build and so is reported at the floor here, not as an error; a term
// with genuinely no entry at all (never a descendant of root) is also
// reported at the floor defensively rather than panicking.
func (idx *Index) Lookup(t domain.TermId) float64 {
	v, ok := idx.values[t]
	if !ok || v < idx.floor {
		return idx.floor
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// RawValue returns the pre-clamp value computed during construction,
// along with whether the term has any entry at all. Used by tests that
// assert the propagation law and the mixed-frequency scenario before
// the floor is applied.
func (idx *Index) RawValue(t domain.TermId) (float64, bool) {
	v, ok := idx.values[t]
	return v, ok
}

// Len reports how many terms have a computed (possibly zero) entry.
func (idx *Index) Len() int { return len(idx.values) }
