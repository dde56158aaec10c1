package ambiguity

import (
	"sort"

	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/scc"
)

// IDAWitness names the chain of SCCs whose accumulated divergence gives
// the reported polynomial degree, plus a representative pumpable symbol
// per link in the chain.
type IDAWitness struct {
	Degree int
	Chain  []scc.SCC
	Chars  []lookahead.CharKey
}

// pairState is a vertex of the per-SCC "pair graph" (G2 in
// scc_checker.py): two NFAwLA states tracked in lockstep. A cycle through
// an off-diagonal pairState (A != B) means two copies of the match can be
// pumped out of sync within a single SCC, which is the local precondition
// for polynomial ambiguity; chaining such SCCs through the condensation
// DAG accumulates the degree.
type pairState struct {
	A, B lookahead.Pair
}

// pairEdge is one labeled out-edge of the per-SCC pair graph.
type pairEdge struct {
	char lookahead.CharKey
	to   pairState
}

// CheckIDA computes the polynomial degree of ambiguity, per spec.md §4.7:
// build the condensation DAG of sccs, mark each non-atom SCC "divergent"
// if its local pair graph contains a cycle through an off-diagonal vertex
// (generalizing scc_checker.py's single-hop _check_eda_pair_graph into an
// exact per-SCC cycle check via ordered_nfa.py's build_product_nfa
// overlap-pairing primitive, specialized here to atom-key equality since
// NFAwLA's alphabet is already partitioned into disjoint atoms), then take
// the longest chain of divergent SCCs reachable from one another. Degree
// <= 1 is reported as nil (ordinary backtracking, not worth flagging).
func CheckIDA(g *scc.Graph, sccs []scc.SCC) *IDAWitness {
	if len(sccs) == 0 {
		return nil
	}
	sccIndex := make(map[lookahead.Pair]int, len(g.Vertices))
	for _, s := range sccs {
		for _, st := range s.States {
			sccIndex[st] = s.Index
		}
	}

	// Condensation predecessors: predecessors[v] = set of u with an edge
	// u -> v crossing SCC boundaries.
	predecessors := make(map[int]map[int]bool)
	predChar := make(map[[2]int]lookahead.CharKey)
	for _, u := range g.Vertices {
		ui := sccIndex[u]
		for _, e := range g.Neighbors[u] {
			vi := sccIndex[e.Target]
			if vi == ui {
				continue
			}
			if predecessors[vi] == nil {
				predecessors[vi] = make(map[int]bool)
			}
			predecessors[vi][ui] = true
			predChar[[2]int{ui, vi}] = e.Char
		}
	}

	divergent := make([]bool, len(sccs))
	divergentChar := make([]lookahead.CharKey, len(sccs))
	for _, s := range sccs {
		if g.IsAtom(s) {
			continue
		}
		if ch, ok := localPairCycle(g, s); ok {
			divergent[s.Index] = true
			divergentChar[s.Index] = ch
		}
	}

	// Tarjan emits SCCs in reverse topological order: an edge u -> v
	// (u != v) always has index(u) > index(v). Processing from the
	// highest index down guarantees every predecessor of a node is
	// already resolved.
	degree := make([]int, len(sccs))
	best := make([]int, len(sccs))
	for i := len(sccs) - 1; i >= 0; i-- {
		local := 0
		if divergent[i] {
			local = 1
		}
		maxPred := 0
		for u := range predecessors[i] {
			if degree[u] > maxPred {
				maxPred = degree[u]
			}
		}
		degree[i] = local + maxPred
		best[i] = i
		if maxPred > 0 {
			for u := range predecessors[i] {
				if degree[u] == maxPred {
					best[i] = u
					break
				}
			}
		}
	}

	maxDegree, maxAt := 0, -1
	for i, d := range degree {
		if d > maxDegree {
			maxDegree = d
			maxAt = i
		}
	}
	if maxDegree <= 1 || maxAt < 0 {
		return nil
	}

	var chain []scc.SCC
	var chars []lookahead.CharKey
	cur := maxAt
	for {
		chain = append(chain, sccs[cur])
		if divergent[cur] {
			chars = append(chars, divergentChar[cur])
		}
		next := best[cur]
		if next == cur {
			break
		}
		if ch, ok := predChar[[2]int{next, cur}]; ok {
			chars = append(chars, ch)
		}
		cur = next
	}

	return &IDAWitness{Degree: maxDegree, Chain: chain, Chars: chars}
}

// localPairCycle reports whether scc's pair graph has a cycle passing
// through an off-diagonal vertex, via a small self-contained Tarjan pass
// scoped to this one SCC (the global scc package operates over
// lookahead.Pair, not pairState, so it isn't reused directly here).
func localPairCycle(g *scc.Graph, s scc.SCC) (lookahead.CharKey, bool) {
	inSCC := make(map[lookahead.Pair]bool, len(s.States))
	for _, st := range s.States {
		inSCC[st] = true
	}

	edges := make(map[pairState][]pairEdge)
	addEdge := func(p pairState, char lookahead.CharKey, to pairState) {
		edges[p] = append(edges[p], pairEdge{char: char, to: to})
	}

	sorted := append([]lookahead.Pair{}, s.States...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Q != sorted[j].Q {
			return sorted[i].Q < sorted[j].Q
		}
		return sorted[i].P < sorted[j].P
	})

	for _, s1 := range sorted {
		for _, e1 := range g.Neighbors[s1] {
			if !inSCC[e1.Target] {
				continue
			}
			for _, s2 := range sorted {
				for _, e2 := range g.Neighbors[s2] {
					if !inSCC[e2.Target] {
						continue
					}
					if e1.Char != e2.Char {
						continue
					}
					addEdge(pairState{s1, s2}, e1.Char, pairState{e1.Target, e2.Target})
				}
			}
		}
	}
	if len(edges) == 0 {
		return lookahead.CharKey{}, false
	}

	index := make(map[pairState]int)
	lowlink := make(map[pairState]int)
	onStack := make(map[pairState]bool)
	var stack []pairState
	counter := 0
	var found lookahead.CharKey
	ok := false

	type frame struct {
		v       pairState
		edgeIdx int
	}
	var order []pairState
	for v := range edges {
		order = append(order, v)
	}
	sort.Slice(order, func(i, j int) bool { return pairStateLess(order[i], order[j]) })

	for _, root := range order {
		if _, seen := index[root]; seen {
			continue
		}
		var work []*frame
		push := func(v pairState) {
			index[v] = counter
			lowlink[v] = counter
			counter++
			stack = append(stack, v)
			onStack[v] = true
			work = append(work, &frame{v: v})
		}
		push(root)

		for len(work) > 0 {
			top := work[len(work)-1]
			es := edges[top.v]
			if top.edgeIdx < len(es) {
				w := es[top.edgeIdx].to
				top.edgeIdx++
				if _, seen := index[w]; !seen {
					push(w)
					continue
				}
				if onStack[w] && index[w] < lowlink[top.v] {
					lowlink[top.v] = index[w]
				}
				continue
			}
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[top.v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[top.v]
				}
			}
			if lowlink[top.v] == index[top.v] {
				var component []pairState
				for {
					n := len(stack) - 1
					w := stack[n]
					stack = stack[:n]
					onStack[w] = false
					component = append(component, w)
					if w == top.v {
						break
					}
				}
				if len(component) > 1 || hasSelfEdge(edges, component[0]) {
					for _, p := range component {
						if p.A != p.B {
							ok = true
							if es := edges[p]; len(es) > 0 {
								found = es[0].char
							}
						}
					}
				}
				if ok {
					return found, true
				}
			}
		}
	}
	return found, ok
}

func hasSelfEdge(edges map[pairState][]pairEdge, p pairState) bool {
	for _, e := range edges[p] {
		if e.to == p {
			return true
		}
	}
	return false
}

func pairStateLess(a, b pairState) bool {
	if a.A != b.A {
		if a.A.Q != b.A.Q {
			return a.A.Q < b.A.Q
		}
		return a.A.P < b.A.P
	}
	if a.B.Q != b.B.Q {
		return a.B.Q < b.B.Q
	}
	return a.B.P < b.B.P
}
