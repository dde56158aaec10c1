package witness

import (
	"github.com/GetPageSpeed/recheck/ambiguity"
	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/scc"
)

// Attack is a materialized witness string, decomposed as spec.md §3/§4.8
// describe: prefix·pump^repeatCount·suffix.
type Attack struct {
	Prefix      []rune
	Pump        []rune
	Suffix      []rune
	RepeatCount int
}

// String concatenates the attack's prefix, repeatCount copies of pump,
// and suffix into the final input string a vulnerable matcher would
// choke on.
func (a Attack) String() string {
	out := make([]rune, 0, len(a.Prefix)+len(a.Pump)*a.RepeatCount+len(a.Suffix))
	out = append(out, a.Prefix...)
	for i := 0; i < a.RepeatCount; i++ {
		out = append(out, a.Pump...)
	}
	out = append(out, a.Suffix...)
	return string(out)
}

func samplePath(atoms AtomLookup, path []lookahead.CharKey) []rune {
	out := make([]rune, 0, len(path))
	for _, c := range path {
		out = append(out, atoms.Sample(c.AtomKey))
	}
	return out
}

// FromEDA builds the attack witness for an EDA finding, per spec.md
// §4.8: pump is a single sampled code point from the seed transition's
// label; prefix is a shortest path from any init state to the seed's
// source state; suffix walks forward from the seed's source until no
// accepting state remains reachable, plus one fallback code point.
func FromEDA(n *lookahead.NFAwLA, g *scc.Graph, atoms AtomLookup, seed *ambiguity.EDAWitness, repeatCount int) Attack {
	var inits []lookahead.Pair
	for p := range n.Inits {
		inits = append(inits, p)
	}

	prefixPath, _ := ShortestPath(g, inits, seed.State)
	canReach := CanReachAccept(g, n.Accept)
	suffixPath, _, _ := FindDeadEnd(g, seed.State, canReach)

	suffix := samplePath(atoms, suffixPath)
	suffix = append(suffix, '!')

	return Attack{
		Prefix:      samplePath(atoms, prefixPath),
		Pump:        []rune{atoms.Sample(seed.Char.AtomKey)},
		Suffix:      suffix,
		RepeatCount: repeatCount,
	}
}

// FromIDA builds the attack witness for an IDA finding: one pump per SCC
// in the chain, concatenated in chain order and separated by the
// connecting character recorded between consecutive links, with the same
// prefix/suffix construction anchored at the chain's first and last
// states.
func FromIDA(n *lookahead.NFAwLA, g *scc.Graph, atoms AtomLookup, w *ambiguity.IDAWitness, repeatCount int) Attack {
	var inits []lookahead.Pair
	for p := range n.Inits {
		inits = append(inits, p)
	}

	var anchor lookahead.Pair
	if len(w.Chain) > 0 && len(w.Chain[0].States) > 0 {
		anchor = w.Chain[0].States[0]
	}
	prefixPath, _ := ShortestPath(g, inits, anchor)

	canReach := CanReachAccept(g, n.Accept)
	var tail lookahead.Pair
	if len(w.Chain) > 0 {
		last := w.Chain[len(w.Chain)-1]
		if len(last.States) > 0 {
			tail = last.States[0]
		}
	}
	suffixPath, _, _ := FindDeadEnd(g, tail, canReach)
	suffix := samplePath(atoms, suffixPath)
	suffix = append(suffix, '!')

	pump := make([]rune, 0, len(w.Chars))
	for _, c := range w.Chars {
		pump = append(pump, atoms.Sample(c.AtomKey))
	}
	if len(pump) == 0 {
		pump = []rune{'a'}
	}

	return Attack{
		Prefix:      samplePath(atoms, prefixPath),
		Pump:        pump,
		Suffix:      suffix,
		RepeatCount: repeatCount,
	}
}
