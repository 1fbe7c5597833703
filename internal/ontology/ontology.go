// Package ontology materializes the phenotype DAG as two parallel
// dense-integer arrays (child->parent CSR lists) plus precomputed
// ancestor bitsets: this replaces per-query BFS with O(1) bitset
// lookups/intersections for ancestor and subclass queries, which
// matters because the phenotype LR and
// the background index (§4.1) both do one such query per disease
// annotation per case term.
package ontology

import (
	"fmt"

	"github.com/lirical-go/lirical/internal/domain"
)

// Ontology is an immutable, dense-indexed phenotype DAG.
type Ontology struct {
	ids       []domain.TermId          // index -> term id
	index     map[domain.TermId]int    // term id -> index
	names     map[domain.TermId]string // term id -> human name
	aliases   map[domain.TermId]domain.TermId
	parents   [][]int // index -> direct is_a parent indices, one edge per entry
	children  [][]int // index -> child indices
	ancestors []bitset
	root      domain.TermId
	rootIdx   int
}

// Builder accumulates terms and is_a edges before Build() freezes them
// into the CSR/bitset representation. Building is a one-shot, load-time
// operation, built once at load.
type Builder struct {
	ids     []domain.TermId
	index   map[domain.TermId]int
	names   map[domain.TermId]string
	aliases map[domain.TermId]domain.TermId
	isA     map[domain.TermId][]domain.TermId
	root    domain.TermId
}

// NewBuilder creates a Builder rooted at root.
func NewBuilder(root domain.TermId) *Builder {
	return &Builder{
		index:   make(map[domain.TermId]int),
		names:   make(map[domain.TermId]string),
		aliases: make(map[domain.TermId]domain.TermId),
		isA:     make(map[domain.TermId][]domain.TermId),
		root:    root,
	}
}

// AddTerm registers a term and its name, assigning it a dense index on
// first sight. Safe to call multiple times for the same term.
func (b *Builder) AddTerm(id domain.TermId, name string) {
	if _, ok := b.index[id]; !ok {
		b.index[id] = len(b.ids)
		b.ids = append(b.ids, id)
	}
	if name != "" {
		b.names[id] = name
	}
}

// AddIsA records a child->parent "is_a" edge.
func (b *Builder) AddIsA(child, parent domain.TermId) {
	b.AddTerm(child, "")
	b.AddTerm(parent, "")
	b.isA[child] = append(b.isA[child], parent)
}

// AddAlias records that alt resolves to the primary term id.
func (b *Builder) AddAlias(alt, primary domain.TermId) {
	b.aliases[alt] = primary
}

// Build checks that the root is registered and the is_a graph is
// acyclic, and freezes the builder into an *Ontology with precomputed
// ancestor bitsets. Terms outside the root's subtree (such as a parent
// of the root) are accepted.
func (b *Builder) Build() (*Ontology, error) {
	rootIdx, ok := b.index[b.root]
	if !ok {
		return nil, fmt.Errorf("ontology: root term %s was never registered", b.root)
	}

	n := len(b.ids)
	parents := make([][]int, n)
	children := make([][]int, n)
	for child, ps := range b.isA {
		ci := b.index[child]
		for _, p := range ps {
			pi, ok := b.index[p]
			if !ok {
				return nil, fmt.Errorf("ontology: is_a parent %s of %s was never registered", p, child)
			}
			parents[ci] = append(parents[ci], pi)
			children[pi] = append(children[pi], ci)
		}
	}

	ancestors, err := topoAncestorBitsets(n, rootIdx, parents, children)
	if err != nil {
		return nil, err
	}

	o := &Ontology{
		ids:       b.ids,
		index:     b.index,
		names:     b.names,
		aliases:   b.aliases,
		parents:   parents,
		children:  children,
		ancestors: ancestors,
		root:      b.root,
		rootIdx:   rootIdx,
	}
	return o, nil
}

// topoAncestorBitsets computes, for every node, the bitset of its
// ancestors including itself, via Kahn's algorithm over the child->parent
// DAG: a node's bitset is the union of all of its parents' bitsets plus
// itself, so it can only be finalized once every parent has been
// visited. Every parentless term starts the walk, not only the root;
// terms left unvisited lie on or below an is_a cycle and are reported
// as an error.
func topoAncestorBitsets(n, rootIdx int, parents, children [][]int) ([]bitset, error) {
	indegree := make([]int, n)
	for i := 0; i < n; i++ {
		indegree[i] = len(parents[i])
	}

	anc := make([]bitset, n)
	for i := range anc {
		anc[i] = newBitset(n)
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			anc[i].set(i)
			queue = append(queue, i)
		}
	}

	visited := 0
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		visited++
		for _, v := range children[u] {
			anc[v].or(anc[u])
			indegree[v]--
			if indegree[v] == 0 {
				anc[v].set(v)
				queue = append(queue, v)
			}
		}
	}

	if visited != n {
		return nil, fmt.Errorf("ontology: is_a graph contains a cycle (visited %d of %d terms)", visited, n)
	}
	_ = rootIdx
	return anc, nil
}

// Contains reports whether t (after alias resolution) is a registered
// term.
func (o *Ontology) Contains(t domain.TermId) bool {
	if _, ok := o.index[t]; ok {
		return true
	}
	if primary, ok := o.aliases[t]; ok {
		_, ok := o.index[primary]
		return ok
	}
	return false
}

// Root returns the ontology's designated root term.
func (o *Ontology) Root() domain.TermId { return o.root }

// PrimaryID canonicalizes t via the alias table, returning
// UnknownTermError if it resolves to nothing registered.
func (o *Ontology) PrimaryID(t domain.TermId) (domain.TermId, error) {
	if _, ok := o.index[t]; ok {
		return t, nil
	}
	if primary, ok := o.aliases[t]; ok {
		if _, ok := o.index[primary]; ok {
			return primary, nil
		}
	}
	return "", domain.NewUnknownTermError(t)
}

// TermName returns the human-readable name for t.
func (o *Ontology) TermName(t domain.TermId) (string, error) {
	id, err := o.PrimaryID(t)
	if err != nil {
		return "", err
	}
	return o.names[id], nil
}

// Ancestors returns the set of ancestors of t, including t itself when
// inclSelf is true.
func (o *Ontology) Ancestors(t domain.TermId, inclSelf bool) (map[domain.TermId]struct{}, error) {
	id, err := o.PrimaryID(t)
	if err != nil {
		return nil, err
	}
	idx := o.index[id]
	out := make(map[domain.TermId]struct{})
	bs := o.ancestors[idx]
	for i, term := range o.ids {
		if bs.test(i) {
			if !inclSelf && i == idx {
				continue
			}
			out[term] = struct{}{}
		}
	}
	return out, nil
}

// Descendants returns every term reachable downward from root via is_a
// edges, i.e. every term for which root is an ancestor.
func (o *Ontology) Descendants(root domain.TermId) (map[domain.TermId]struct{}, error) {
	id, err := o.PrimaryID(root)
	if err != nil {
		return nil, err
	}
	rootIdx := o.index[id]
	out := make(map[domain.TermId]struct{})
	for i, term := range o.ids {
		if o.ancestors[i].test(rootIdx) {
			out[term] = struct{}{}
		}
	}
	return out, nil
}

// IsSubclass reports whether child is a (possibly indirect) subclass of
// parent, i.e. parent is an ancestor of child.
func (o *Ontology) IsSubclass(child, parent domain.TermId) (bool, error) {
	childID, err := o.PrimaryID(child)
	if err != nil {
		return false, err
	}
	parentID, err := o.PrimaryID(parent)
	if err != nil {
		return false, err
	}
	childIdx := o.index[childID]
	parentIdx := o.index[parentID]
	return o.ancestors[childIdx].test(parentIdx), nil
}

// ParentsOf returns the direct is_a parents of t (used by the BFS walk
// in the phenotype LR's fuzzy-match branch 2).
func (o *Ontology) ParentsOf(t domain.TermId) ([]domain.TermId, error) {
	id, err := o.PrimaryID(t)
	if err != nil {
		return nil, err
	}
	idx := o.index[id]
	out := make([]domain.TermId, 0, len(o.parents[idx]))
	for _, p := range o.parents[idx] {
		out = append(out, o.ids[p])
	}
	return out, nil
}

// BFSPathToRoot walks from t upward to the root, breadth-first,
// returning the terms in discovery order with t itself at position 0.
// i in the fuzzy-match formula is this BFS *visit order* starting at
// the query term, not a count of edges from q.
func (o *Ontology) BFSPathToRoot(t domain.TermId) ([]domain.TermId, error) {
	id, err := o.PrimaryID(t)
	if err != nil {
		return nil, err
	}
	startIdx := o.index[id]

	seen := make([]bool, len(o.ids))
	queue := []int{startIdx}
	seen[startIdx] = true
	visited := make([]domain.TermId, 0, len(o.ids))

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		visited = append(visited, o.ids[u])
		for _, p := range o.parents[u] {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return visited, nil
}
