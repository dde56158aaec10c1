package lookahead

import (
	"strconv"

	"github.com/GetPageSpeed/recheck/epsnfa"
	"github.com/GetPageSpeed/recheck/ordered"
)

// Pair is an NFAwLA state: an OrderedNFA state paired with a look-ahead
// DFA state, per spec.md §4.5.
type Pair struct {
	Q epsnfa.StateID
	P int
}

// CharKey is an NFAwLA alphabet symbol: an atomic character label paired
// with the look-ahead state that must hold immediately after consuming it.
type CharKey struct {
	AtomKey string
	P       int
}

// EdgeKey identifies one (source pair, labeled symbol) transition group.
// Unlike OrderedNFA's Delta, a single EdgeKey's target list genuinely
// mirrors the source's ambiguity: duplicate targets here are pruned of the
// dead ends a plain OrderedNFA can't see, because the look-ahead state P
// already encodes "can this suffix complete the match."
type EdgeKey struct {
	From Pair
	Char CharKey
}

// NFAwLA is the automaton of spec.md §4.5 used for precise EDA/IDA
// detection: by pairing every OrderedNFA state with a look-ahead DFA
// state, a transition that would otherwise look ambiguous but in fact
// dead-ends (no suffix completes the match from there) is naturally
// excluded, because its target pair is never produced.
type NFAwLA struct {
	LookAheadDFA *RDFA
	States       map[Pair]bool
	Inits        map[Pair]bool
	Accept       map[Pair]bool
	Delta        map[EdgeKey][]Pair
	DeltaSize    int
}

// ErrDeltaTooLarge is returned when the product construction's transition
// count exceeds maxDeltaSize, per spec.md §6.4's look_ahead_too_large
// escape hatch (the caller falls back to reporting SAFE with that reason,
// per DESIGN.md's decision on this Open Question).
type ErrDeltaTooLarge struct {
	Limit int
}

func (e *ErrDeltaTooLarge) Error() string {
	return "lookahead: NFAwLA delta size exceeds " + strconv.Itoa(e.Limit)
}

type rdfaEdge struct {
	from int
	to   int
}

// BuildNFAwLA pairs o with its reversed DFA rd, grounded on
// original_source/src/redoctor/automaton/nfa.py's
// OrderedNFARecheck.to_nfa_wla. rd's transition (p2 --atom--> p1) pairs
// with o's transition (q1 --atom--> q2) to produce the NFAwLA edge
// (q1,p1) --(atom,p2)--> (q2,p2): p1, attached to the source, is the
// look-ahead state valid before consuming atom; p2, attached to the
// target, is the look-ahead state valid after.
func BuildNFAwLA(o *ordered.OrderedNFA, rd *RDFA, maxDeltaSize int) (*NFAwLA, error) {
	edgesByAtom := make(map[string][]rdfaEdge)
	for k, to := range rd.Delta {
		edgesByAtom[k.AtomKey] = append(edgesByAtom[k.AtomKey], rdfaEdge{from: k.State, to: to})
	}

	n := &NFAwLA{
		LookAheadDFA: rd,
		States:       make(map[Pair]bool),
		Inits:        make(map[Pair]bool),
		Accept:       make(map[Pair]bool),
		Delta:        make(map[EdgeKey][]Pair),
	}

	for _, q := range o.Inits {
		for p := 0; p < rd.NumStates; p++ {
			pair := Pair{Q: q, P: p}
			n.Inits[pair] = true
			n.States[pair] = true
		}
	}
	for q := epsnfa.StateID(0); int(q) < o.NumStates; q++ {
		if o.Accepting[q] {
			n.Accept[Pair{Q: q, P: rd.Initial}] = true
		}
	}

	for key, targets := range o.Delta {
		q1 := key.State
		for _, e := range edgesByAtom[key.AtomKey] {
			p2, p1 := e.from, e.to
			from := Pair{Q: q1, P: p1}
			char := CharKey{AtomKey: key.AtomKey, P: p2}
			n.States[from] = true

			nfaTargets := make([]Pair, 0, len(targets))
			for _, q2 := range targets {
				target := Pair{Q: q2, P: p2}
				n.States[target] = true
				nfaTargets = append(nfaTargets, target)
			}
			if len(nfaTargets) == 0 {
				continue
			}
			ek := EdgeKey{From: from, Char: char}
			n.Delta[ek] = append(n.Delta[ek], nfaTargets...)
			n.DeltaSize += len(nfaTargets)
			if maxDeltaSize > 0 && n.DeltaSize > maxDeltaSize {
				return nil, &ErrDeltaTooLarge{Limit: maxDeltaSize}
			}
		}
	}

	return n, nil
}
