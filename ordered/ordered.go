// Package ordered implements OrderedNFA construction (C4): epsilon
// elimination that counts, for each source state and character, how many
// distinct epsilon paths reach that character transition, preserving
// duplicate targets as the structural signature of ambiguity (spec.md
// §4.3). Grounded directly on original_source/src/redoctor/automaton/
// ordered_nfa.py's OrderedNFA.from_eps_nfa / _count_epsilon_paths (a
// dynamic-programming path count, simpler than nfa.py's explicit
// path-signature BFS and the one spec.md's algorithm description mirrors
// step for step).
package ordered

import (
	"sort"

	"github.com/GetPageSpeed/recheck/charset"
	"github.com/GetPageSpeed/recheck/epsnfa"
)

// DeltaKey identifies one (source state, atomic label) transition group in
// an OrderedNFA, content-addressed by the atom's stable Key() rather than
// object identity, per spec.md §9.
type DeltaKey struct {
	State   epsnfa.StateID
	AtomKey string
}

// OrderedNFA is the epsilon-eliminated automaton of spec.md §4.3. Unlike a
// plain NFA, Delta's target lists may contain duplicates: a duplicate
// target is the structural signature that multiple independent epsilon
// paths reconverge on the same state after consuming the same character,
// which is exactly the EDA precondition.
type OrderedNFA struct {
	Alphabet      charset.ICharSet
	NumStates     int
	Inits         []epsnfa.StateID
	Accepting     map[epsnfa.StateID]bool
	Delta         map[DeltaKey][]epsnfa.StateID
	HasMultiTrans bool
}

// rawKey is the pre-atomization transition key, grouped by the literal
// IChar label a character transition actually carries.
type rawKey struct {
	state   epsnfa.StateID
	charKey string
}

type prioritizedTarget struct {
	priority int
	target   epsnfa.StateID
}

// Build eliminates epsilon transitions from nfa, producing an OrderedNFA.
// maxEpsilonPathLen bounds per-target path multiplicity (spec.md §4.3 step
// 4/§6.4's maxEpsilonPathLen), preventing unbounded growth from densely
// branching epsilon graphs.
func Build(nfa *epsnfa.NFA, maxEpsilonPathLen int) *OrderedNFA {
	rawChars := make(map[string]charset.IChar)
	rawDelta := make(map[rawKey][]epsnfa.StateID)
	hasMultiTrans := false

	for q := epsnfa.StateID(0); int(q) < nfa.NumStates(); q++ {
		counts := pathCounts(nfa, q, maxEpsilonPathLen)

		var intermediates []epsnfa.StateID
		for s := range counts {
			intermediates = append(intermediates, s)
		}
		sort.Slice(intermediates, func(i, j int) bool { return intermediates[i] < intermediates[j] })

		perChar := make(map[string][]prioritizedTarget)
		for _, s := range intermediates {
			cnt := counts[s]
			if cnt <= 0 {
				continue
			}
			st := nfa.State(s)
			for _, tr := range st.Transitions() {
				if tr.Kind != epsnfa.TransChar {
					continue
				}
				charKey := tr.Char.Key()
				rawChars[charKey] = tr.Char
				for i := 0; i < cnt; i++ {
					perChar[charKey] = append(perChar[charKey], prioritizedTarget{tr.Priority, tr.Target})
				}
			}
		}

		var charKeys []string
		for k := range perChar {
			charKeys = append(charKeys, k)
		}
		sort.Strings(charKeys)

		for _, charKey := range charKeys {
			entries := perChar[charKey]
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].priority < entries[j].priority })
			targets := make([]epsnfa.StateID, len(entries))
			seen := make(map[epsnfa.StateID]int, len(entries))
			for i, e := range entries {
				targets[i] = e.target
				seen[e.target]++
				if seen[e.target] > 1 {
					hasMultiTrans = true
				}
			}
			rawDelta[rawKey{state: q, charKey: charKey}] = targets
		}
	}

	var allChars []charset.IChar
	for _, ic := range rawChars {
		allChars = append(allChars, ic)
	}
	atoms := charset.Partition(allChars)

	delta := make(map[DeltaKey][]epsnfa.StateID)
	for rk, targets := range rawDelta {
		ic := rawChars[rk.charKey]
		for _, atom := range atoms.AtomsOverlapping(ic) {
			key := DeltaKey{State: rk.state, AtomKey: atom.Key()}
			delta[key] = append(delta[key], targets...)
		}
	}

	accepting := make(map[epsnfa.StateID]bool)
	for q := epsnfa.StateID(0); int(q) < nfa.NumStates(); q++ {
		for _, s := range nfa.EpsilonClosure(q) {
			if nfa.State(s).IsAccepting() {
				accepting[q] = true
				break
			}
		}
	}

	return &OrderedNFA{
		Alphabet:      atoms,
		NumStates:     nfa.NumStates(),
		Inits:         []epsnfa.StateID{nfa.Initial()},
		Accepting:     accepting,
		Delta:         delta,
		HasMultiTrans: hasMultiTrans,
	}
}

// pathCounts computes, for every state reachable from start via epsilon
// transitions, the number of distinct epsilon paths that reach it
// (capped at maxLen), per spec.md §4.3 steps 1-4.
func pathCounts(nfa *epsnfa.NFA, start epsnfa.StateID, maxLen int) map[epsnfa.StateID]int {
	counts := map[epsnfa.StateID]int{start: 1}
	seen := map[epsnfa.StateID]bool{start: true}
	queue := []epsnfa.StateID{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		st := nfa.State(cur)
		if st == nil {
			continue
		}
		for _, tr := range st.Transitions() {
			if tr.Kind != epsnfa.TransEpsilon {
				continue
			}
			t := tr.Target
			counts[t] += counts[cur]
			if maxLen > 0 && counts[t] > maxLen {
				counts[t] = maxLen
			}
			if seen[t] {
				// Cycle: two is enough to trigger EDA detection downstream.
				if counts[t] < 2 {
					counts[t] = 2
				}
				continue
			}
			seen[t] = true
			queue = append(queue, t)
		}
	}
	return counts
}
