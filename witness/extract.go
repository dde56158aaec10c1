// Package witness reconstructs a concrete attack string from an EDA or
// IDA finding (C9), per spec.md §4.8: a shortest prefix path into the
// ambiguous state, the pumpable character(s), and a shortest suffix path
// into a state from which no accepting state remains reachable.
package witness

import (
	"github.com/GetPageSpeed/recheck/charset"
	"github.com/GetPageSpeed/recheck/internal/sparse"
	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/scc"
)

// AtomLookup maps an OrderedNFA/NFAwLA atom key back to the IChar it was
// partitioned from, so a path of labeled edges can be sampled into actual
// code points.
type AtomLookup map[string]charset.IChar

// BuildAtomLookup indexes alphabet's atoms by their stable Key().
func BuildAtomLookup(alphabet charset.ICharSet) AtomLookup {
	lookup := make(AtomLookup, alphabet.Len())
	for _, a := range alphabet.Atoms() {
		lookup[a.Key()] = a
	}
	return lookup
}

// Sample returns one code point from the atom named by key, falling back
// to '!' (0x21) if the atom is unknown — the "unconditional fallback"
// spec.md §4.8 allows when no concrete transition pins a character down.
func (l AtomLookup) Sample(key string) rune {
	if ic, ok := l[key]; ok && !ic.Empty() {
		return ic.Sample()
	}
	return '!'
}

// step records, for one visited vertex, the predecessor edge a breadth-
// first search arrived from.
type step struct {
	from lookahead.Pair
	char lookahead.CharKey
	seen bool
}

// pairIndexer adapts an NFAwLA graph's Pair vertices to sparse.SparseSet's
// uint32-only universe, per internal/sparse's Index type: every vertex in
// g.Vertices is assigned an ID up front, so a fixed-capacity SparseSet can
// track visited-state membership in O(1). A new indexer (and its Index
// map) is built for each search.
type pairIndexer struct {
	idx  *sparse.Index[lookahead.Pair]
	seen *sparse.SparseSet
}

func newPairIndexer(g *scc.Graph) *pairIndexer {
	idx := sparse.NewIndex[lookahead.Pair]()
	for _, v := range g.Vertices {
		idx.IDFor(v)
	}
	return &pairIndexer{idx: idx, seen: sparse.NewSparseSet(uint32(idx.Len()))}
}

func (pi *pairIndexer) visit(p lookahead.Pair) {
	pi.seen.Insert(pi.idx.IDFor(p))
}

func (pi *pairIndexer) visited(p lookahead.Pair) bool {
	return pi.seen.Contains(pi.idx.IDFor(p))
}

// ShortestPath runs a breadth-first search over g from any state in
// sources to target, returning the sequence of edge labels on a shortest
// path. Multi-source BFS naturally finds the shortest path from the
// nearest source. Returns (nil, false) if target is unreachable.
func ShortestPath(g *scc.Graph, sources []lookahead.Pair, target lookahead.Pair) ([]lookahead.CharKey, bool) {
	visited := make(map[lookahead.Pair]step)
	pi := newPairIndexer(g)
	var queue []lookahead.Pair
	for _, s := range sources {
		if pi.visited(s) {
			continue
		}
		pi.visit(s)
		visited[s] = step{from: s, seen: true}
		queue = append(queue, s)
		if s == target {
			return nil, true
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Neighbors[cur] {
			if pi.visited(e.Target) {
				continue
			}
			pi.visit(e.Target)
			visited[e.Target] = step{from: cur, char: e.Char, seen: true}
			if e.Target == target {
				return reconstructPath(visited, sources, target), true
			}
			queue = append(queue, e.Target)
		}
	}
	return nil, false
}

func reconstructPath(visited map[lookahead.Pair]step, sources []lookahead.Pair, target lookahead.Pair) []lookahead.CharKey {
	isSource := make(map[lookahead.Pair]bool, len(sources))
	for _, s := range sources {
		isSource[s] = true
	}
	var rev []lookahead.CharKey
	cur := target
	for !isSource[cur] {
		st := visited[cur]
		rev = append(rev, st.char)
		cur = st.from
	}
	path := make([]lookahead.CharKey, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// CanReachAccept computes, for every vertex in g, whether some accepting
// state is reachable by following zero or more labeled edges — the
// reverse of a standard "liveness" analysis, computed here by a single
// reverse BFS seeded at every accepting state over reversed edges.
func CanReachAccept(g *scc.Graph, accept map[lookahead.Pair]bool) map[lookahead.Pair]bool {
	reverse := make(map[lookahead.Pair][]lookahead.Pair)
	for v, edges := range g.Neighbors {
		for _, e := range edges {
			reverse[e.Target] = append(reverse[e.Target], v)
		}
	}

	can := make(map[lookahead.Pair]bool, len(accept))
	var queue []lookahead.Pair
	for v := range accept {
		if accept[v] && !can[v] {
			can[v] = true
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, pred := range reverse[cur] {
			if !can[pred] {
				can[pred] = true
				queue = append(queue, pred)
			}
		}
	}
	return can
}

// FindDeadEnd runs a breadth-first search from start, returning the
// shortest labeled path to the nearest state from which no accepting
// state is reachable (per spec.md §4.8's suffix construction: "a string
// that forces the engine to exhaust all pumped branches before
// rejecting"). If start itself is already such a state, the path is
// empty.
func FindDeadEnd(g *scc.Graph, start lookahead.Pair, canReachAccept map[lookahead.Pair]bool) ([]lookahead.CharKey, lookahead.Pair, bool) {
	if !canReachAccept[start] {
		return nil, start, true
	}
	pi := newPairIndexer(g)
	visited := map[lookahead.Pair]step{start: {seen: true}}
	pi.visit(start)
	queue := []lookahead.Pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Neighbors[cur] {
			if pi.visited(e.Target) {
				continue
			}
			pi.visit(e.Target)
			visited[e.Target] = step{from: cur, char: e.Char, seen: true}
			if !canReachAccept[e.Target] {
				return reconstructPath(visited, []lookahead.Pair{start}, e.Target), e.Target, true
			}
			queue = append(queue, e.Target)
		}
	}
	return nil, lookahead.Pair{}, false
}
