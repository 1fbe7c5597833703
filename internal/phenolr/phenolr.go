// Package phenolr computes the phenotype likelihood ratio: foreground
// frequency on a disease divided by the corpus-wide
// background frequency, with a three-branch fuzzy-match fallback when
// a query term is not directly annotated on the disease.
package phenolr

import (
	"math"

	"github.com/lirical-go/lirical/internal/background"
	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/numeric"
)

// Evaluator computes pheno_lr against a fixed ontology and background
// index. Stateless beyond those two read-only collaborators, so one
// Evaluator is shared read-only across every disease in a case.
type Evaluator struct {
	ont  domain.Ontology
	bg   *background.Index
	mode domain.FuzzyMatchMode
}

// New builds an Evaluator. mode selects between the default live
// fuzzy-match policy and the legacy BFS-by-level policy restored from
// the original Java implementation.
func New(ont domain.Ontology, bg *background.Index, mode domain.FuzzyMatchMode) *Evaluator {
	return &Evaluator{ont: ont, bg: bg, mode: mode}
}

// LR returns the phenotype likelihood ratio for term q against disease
// d, and its log. When excluded is true, q was reported absent in the
// patient and the symmetric "excluded term" formula applies instead.
func (e *Evaluator) LR(q domain.TermId, excluded bool, d *domain.DiseaseRecord) (lr, logLR float64, err error) {
	primary, err := e.ont.PrimaryID(q)
	if err != nil {
		return 0, 0, err
	}

	freq, err := e.freqInDisease(primary, d)
	if err != nil {
		return 0, 0, err
	}
	bg := e.bg.Lookup(primary)

	numerator, denominator := freq, bg
	if excluded {
		numerator = numeric.Clamp(1-freq, domain.FPFloor, 1-domain.FPFloor)
		denominator = numeric.Clamp(1-bg, domain.FPFloor, 1-domain.FPFloor)
	}

	lr = numerator / denominator
	logLR, err = numeric.Log("pheno_lr", lr)
	if err != nil {
		return 0, 0, err
	}
	return lr, logLR, nil
}

// freqInDisease returns freq_in_disease(D, q): the direct annotation
// frequency, or the fuzzy-match fallback when q is not directly
// annotated on d.
func (e *Evaluator) freqInDisease(q domain.TermId, d *domain.DiseaseRecord) (float64, error) {
	if f, ok := d.AnnotationFor(q); ok {
		return f, nil
	}
	if e.mode == domain.FuzzyMatchLegacy {
		return e.legacyFuzzyFreq(q, d)
	}
	return e.liveFuzzyFreq(q, d)
}

// liveFuzzyFreq implements the three ordered fuzzy-match branches.
func (e *Evaluator) liveFuzzyFreq(q domain.TermId, d *domain.DiseaseRecord) (float64, error) {
	// Branch 1: q is an ancestor of some annotated term on D (D
	// entails q through a more specific observation).
	var sum float64
	var n int
	for _, ann := range d.Annotations {
		moreSpecific, err := e.ont.IsSubclass(ann.Term, q)
		if err != nil {
			return 0, err
		}
		if moreSpecific {
			sum += ann.Frequency
			n++
		}
	}
	if n > 0 {
		return sum / float64(n), nil
	}

	// Branch 2: walk from q upward, breadth-first, to the first ancestor
	// shared with ancestors(D). This covers q being more specific than
	// an annotated term, and also q sharing any non-root ancestor with
	// D's annotations.
	ancestorsD, err := e.ancestorsOfDisease(d)
	if err != nil {
		return 0, err
	}
	path, err := e.ont.BFSPathToRoot(q)
	if err != nil {
		return 0, err
	}
	root := e.ont.Root()
	for i, td := range path {
		if _, shared := ancestorsD[td]; !shared {
			continue
		}
		if td == root {
			break // only the root is shared: no informative match, fall through to branch 3
		}
		if i == 0 {
			return 1.0, nil
		}
		return 1.0 / (1.0 + math.Log(float64(i))), nil
	}

	// Branch 3: no common informative organ system.
	return domain.FPFloor, nil
}

// ancestorsOfDisease returns the union of ancestors(t, incl=true) over
// every term D annotates.
func (e *Evaluator) ancestorsOfDisease(d *domain.DiseaseRecord) (map[domain.TermId]struct{}, error) {
	union := make(map[domain.TermId]struct{})
	for _, ann := range d.Annotations {
		anc, err := e.ont.Ancestors(ann.Term, true)
		if err != nil {
			return nil, err
		}
		for a := range anc {
			union[a] = struct{}{}
		}
	}
	return union, nil
}

// legacyFuzzyFreq reimplements the original Java
// getFrequencyIfNotAnnotatedOLD: walk upward from q level by level
// (BFS, grouped by BFS depth), and at the first depth where at least
// one ancestor other than the ontology root is *directly* annotated on
// D, sum the recorded frequency of every such directly-annotated
// ancestor at that depth, each scaled by 1/(1+ln(level)) (level 0
// scaled by 1.0). The hit test is direct annotation
// (`disease.getHpoTermId(id) != null` in the Java source), not mere
// membership in ancestors(D) — an ancestor that is only implicitly
// covered through a more specific annotation does not stop the climb;
// the BFS keeps widening past it exactly as the Java loop does. The
// root is skipped when checking for a hit, since it is never directly
// annotated on any real disease and the Java source explicitly
// `continue`s past PHENOTYPIC_ABNORMALITY before testing
// disease.getHpoTermId(id). If no level ever finds a direct annotation,
// this falls through to FP_FLOOR like a genuine no-common-organ-system
// case. This is the legacy FuzzyMatchMode restored from
// original_source/.
func (e *Evaluator) legacyFuzzyFreq(q domain.TermId, d *domain.DiseaseRecord) (float64, error) {
	levels, err := e.bfsLevelsToRoot(q)
	if err != nil {
		return 0, err
	}
	root := e.ont.Root()

	for level, terms := range levels {
		var sum float64
		var hit bool
		for _, t := range terms {
			if t == root {
				continue // root is never directly annotated: never an informative match
			}
			freq, ok := d.AnnotationFor(t)
			if !ok {
				continue
			}
			hit = true
			sum += freq
		}
		if hit {
			scale := 1.0
			if level > 0 {
				scale = 1.0 / (1.0 + math.Log(float64(level)))
			}
			return sum * scale, nil
		}
	}
	return domain.FPFloor, nil
}

// bfsLevelsToRoot groups q's BFS-to-root walk by depth, depth 0 being
// {q} itself.
func (e *Evaluator) bfsLevelsToRoot(q domain.TermId) ([][]domain.TermId, error) {
	var levels [][]domain.TermId
	frontier := []domain.TermId{q}
	seen := map[domain.TermId]struct{}{q: {}}
	for len(frontier) > 0 {
		levels = append(levels, frontier)
		var next []domain.TermId
		for _, t := range frontier {
			parents, err := e.ont.ParentsOf(t)
			if err != nil {
				return nil, err
			}
			for _, p := range parents {
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				next = append(next, p)
			}
		}
		frontier = next
	}
	return levels, nil
}
