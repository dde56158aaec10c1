// Package scc computes strongly connected components of an NFAwLA's
// transition graph (C7), the structural basis for EDA/IDA detection: a
// state that sits in a non-trivial SCC can be revisited after consuming
// input, which is the precondition for pumpable ambiguity. Grounded on
// original_source/src/redoctor/automaton/scc_checker.py's SCCGraph, with
// compute_sccs's recursive strongconnect ported to an explicit stack per
// spec.md §4.6's no-recursion requirement at 10^5-vertex scale.
package scc

import (
	"sort"

	"github.com/GetPageSpeed/recheck/lookahead"
)

// Graph is the NFAwLA transition graph restricted to what SCC computation
// needs: vertices and, per vertex, its labeled out-edges.
type Graph struct {
	Vertices  []lookahead.Pair
	Neighbors map[lookahead.Pair][]Edge
}

// Edge is one labeled out-edge in the NFAwLA graph.
type Edge struct {
	Char   lookahead.CharKey
	Target lookahead.Pair
}

// FromNFAwLA builds a Graph from an NFAwLA's Delta, deterministically
// ordering vertices and each vertex's edges so SCC output (and therefore
// downstream witness selection) doesn't depend on Go's map iteration
// order.
func FromNFAwLA(n *lookahead.NFAwLA) *Graph {
	neighbors := make(map[lookahead.Pair][]Edge)
	seen := make(map[lookahead.Pair]bool, len(n.States))
	var vertices []lookahead.Pair

	addVertex := func(p lookahead.Pair) {
		if !seen[p] {
			seen[p] = true
			vertices = append(vertices, p)
		}
	}

	var keys []lookahead.EdgeKey
	for k := range n.Delta {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return edgeKeyLess(keys[i], keys[j]) })

	for _, k := range keys {
		addVertex(k.From)
		for _, target := range n.Delta[k] {
			addVertex(target)
			neighbors[k.From] = append(neighbors[k.From], Edge{Char: k.Char, Target: target})
		}
	}

	sort.Slice(vertices, func(i, j int) bool { return pairLess(vertices[i], vertices[j]) })
	return &Graph{Vertices: vertices, Neighbors: neighbors}
}

func pairLess(a, b lookahead.Pair) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.P < b.P
}

func edgeKeyLess(a, b lookahead.EdgeKey) bool {
	if a.From != b.From {
		return pairLess(a.From, b.From)
	}
	if a.Char.AtomKey != b.Char.AtomKey {
		return a.Char.AtomKey < b.Char.AtomKey
	}
	return a.Char.P < b.Char.P
}

// HasSelfLoop reports whether state has a transition back to itself.
func (g *Graph) HasSelfLoop(state lookahead.Pair) bool {
	for _, e := range g.Neighbors[state] {
		if e.Target == state {
			return true
		}
	}
	return false
}

// SCC is one strongly connected component, in the reverse-topological
// order Tarjan's algorithm naturally produces (a component's dependencies
// on later components have already been emitted).
type SCC struct {
	Index  int
	States []lookahead.Pair
}

// IsAtom reports whether scc is a singleton with no self-loop: such a
// component can never be revisited, so it contributes no ambiguity.
func (g *Graph) IsAtom(s SCC) bool {
	if len(s.States) != 1 {
		return false
	}
	return !g.HasSelfLoop(s.States[0])
}

type frame struct {
	v        lookahead.Pair
	edgeIdx  int
	edges    []Edge
}

// ComputeSCCs runs Tarjan's algorithm over g using an explicit stack of
// call frames instead of recursion, so deeply chained automata (the
// Builder/NFAwLA size budgets run to 10^5 states) don't risk a Go stack
// overflow. Output order matches the recursive formulation: each SCC is
// emitted in reverse topological order relative to the condensation DAG.
func (g *Graph) ComputeSCCs() []SCC {
	index := make(map[lookahead.Pair]int)
	lowlink := make(map[lookahead.Pair]int)
	onStack := make(map[lookahead.Pair]bool)
	var stack []lookahead.Pair
	var sccs []SCC
	counter := 0

	for _, root := range g.Vertices {
		if _, ok := index[root]; ok {
			continue
		}

		var work []*frame
		push := func(v lookahead.Pair) {
			index[v] = counter
			lowlink[v] = counter
			counter++
			stack = append(stack, v)
			onStack[v] = true
			work = append(work, &frame{v: v, edges: g.Neighbors[v]})
		}
		push(root)

		for len(work) > 0 {
			top := work[len(work)-1]
			if top.edgeIdx < len(top.edges) {
				w := top.edges[top.edgeIdx].Target
				top.edgeIdx++
				if _, ok := index[w]; !ok {
					push(w)
					continue
				}
				if onStack[w] {
					if index[w] < lowlink[top.v] {
						lowlink[top.v] = index[w]
					}
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
				var component []lookahead.Pair
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
				sccs = append(sccs, SCC{Index: len(sccs), States: component})
			}
		}
	}
	return sccs
}
