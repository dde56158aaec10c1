// Package ambiguity implements EDA and IDA detection over an NFAwLA's
// strongly connected components (C8): EDA (Exponential Degree of
// Ambiguity) flags an unbounded attack string, IDA(k) flags a polynomial
// one of degree k. Grounded on
// original_source/src/redoctor/automaton/scc_checker.py's SCCChecker.
package ambiguity

import (
	"sort"

	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/scc"
)

// EDAWitness names the SCC and alphabet symbol where a single state
// reaches the same target via two independent transitions, within a
// cyclable component — the structural precondition for exponential
// attack strings.
type EDAWitness struct {
	SCC   scc.SCC
	State lookahead.Pair
	Char  lookahead.CharKey
}

// CheckEDA reports EDA by looking for a duplicate-target transition whose
// source state sits in a non-trivial SCC, per scc_checker.py's
// _check_exponential: being in a cycle means the duplicate path can be
// pumped indefinitely.
func CheckEDA(n *lookahead.NFAwLA, g *scc.Graph, sccs []scc.SCC) *EDAWitness {
	cycling := make(map[lookahead.Pair]int, len(n.States))
	for _, s := range sccs {
		if g.IsAtom(s) {
			continue
		}
		for _, st := range s.States {
			cycling[st] = s.Index
		}
	}
	if len(cycling) == 0 {
		return nil
	}

	var keys []lookahead.EdgeKey
	for key := range n.Delta {
		if _, ok := cycling[key.From]; ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return edgeKeyLess(keys[i], keys[j]) })

	for _, key := range keys {
		targets := n.Delta[key]
		seen := make(map[lookahead.Pair]bool, len(targets))
		dup := false
		for _, t := range targets {
			if seen[t] {
				dup = true
				break
			}
			seen[t] = true
		}
		if dup {
			idx := cycling[key.From]
			return &EDAWitness{SCC: sccs[idx], State: key.From, Char: key.Char}
		}
	}
	return nil
}

func edgeKeyLess(a, b lookahead.EdgeKey) bool {
	if a.From != b.From {
		if a.From.Q != b.From.Q {
			return a.From.Q < b.From.Q
		}
		return a.From.P < b.From.P
	}
	if a.Char.AtomKey != b.Char.AtomKey {
		return a.Char.AtomKey < b.Char.AtomKey
	}
	return a.Char.P < b.Char.P
}
