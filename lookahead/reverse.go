// Package lookahead builds the bounded look-ahead automata of spec.md
// §4.4-§4.5: a reversed, determinized automaton over an OrderedNFA's
// alphabet (C5), and the NFAwLA product construction that pairs every
// OrderedNFA state with a look-ahead DFA state (C6). Grounded on
// github.com/coregx/coregex's nfa/reverse.go two-pass reversal and
// dfa/lazy's content-addressed subset construction, generalized from byte
// ranges to the rune-interval alphabet of charset.ICharSet, and on
// original_source/src/redoctor/automaton/nfa.py's
// OrderedNFARecheck.to_nfa_wla for the product step.
package lookahead

import (
	"sort"
	"strconv"
	"strings"

	"github.com/GetPageSpeed/recheck/charset"
	"github.com/GetPageSpeed/recheck/epsnfa"
	"github.com/GetPageSpeed/recheck/ordered"
)

// RDFA is a determinized automaton over the reverse of an OrderedNFA's
// character transitions, dropping priorities and duplicate targets per
// spec.md §4.4 ("the reverse automaton only needs reachability, not
// ambiguity, so collapse to a plain NFA before determinizing").
type RDFA struct {
	Alphabet  charset.ICharSet
	NumStates int
	Initial   int
	Accepting map[int]bool
	Delta     map[RDFAKey]int
	StateSets [][]epsnfa.StateID
}

// RDFAKey identifies one (source DFA state, atomic label) transition.
type RDFAKey struct {
	State   int
	AtomKey string
}

// ErrTooManyStates is returned when subset construction would exceed the
// caller's state budget, per spec.md §6.4's maxNfaSize guard.
type ErrTooManyStates struct {
	Limit int
}

func (e *ErrTooManyStates) Error() string {
	return "lookahead: reverse subset construction exceeded " + strconv.Itoa(e.Limit) + " states"
}

// ReverseDFA reverses o's character transitions (unordered, deduplicated)
// and determinizes the result via subset construction, content-addressed
// by the sorted signature of each state set (mirroring coregex's
// ComputeStateKey, generalized from a hash to an exact string so collisions
// are impossible). The reversed automaton starts in o's accepting states
// and accepts when a subset contains one of o's initial states: it answers
// "can the suffix consumed so far be continued to a full match," which is
// exactly what a look-ahead needs.
func ReverseDFA(o *ordered.OrderedNFA, maxStates int) (*RDFA, error) {
	revAdj := buildReverseAdjacency(o)

	var startSet []epsnfa.StateID
	for q := epsnfa.StateID(0); int(q) < o.NumStates; q++ {
		if o.Accepting[q] {
			startSet = append(startSet, q)
		}
	}
	sort.Slice(startSet, func(i, j int) bool { return startSet[i] < startSet[j] })

	inits := make(map[epsnfa.StateID]bool, len(o.Inits))
	for _, q := range o.Inits {
		inits[q] = true
	}

	r := &RDFA{
		Alphabet:  o.Alphabet,
		Accepting: make(map[int]bool),
		Delta:     make(map[RDFAKey]int),
	}
	byKey := make(map[string]int)
	addOrGet := func(set []epsnfa.StateID) (int, bool, error) {
		key := setKey(set)
		if id, ok := byKey[key]; ok {
			return id, false, nil
		}
		if maxStates > 0 && len(r.StateSets) >= maxStates {
			return 0, false, &ErrTooManyStates{Limit: maxStates}
		}
		id := len(r.StateSets)
		byKey[key] = id
		r.StateSets = append(r.StateSets, set)
		if setIntersectsInits(set, inits) {
			r.Accepting[id] = true
		}
		return id, true, nil
	}

	startID, _, err := addOrGet(startSet)
	if err != nil {
		return nil, err
	}
	r.Initial = startID

	queue := []int{startID}
	atoms := o.Alphabet.Atoms()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curSet := r.StateSets[cur]

		for _, atom := range atoms {
			var next []epsnfa.StateID
			seen := make(map[epsnfa.StateID]bool)
			for _, s := range curSet {
				for _, src := range revAdj[s][atom.Key()] {
					if !seen[src] {
						seen[src] = true
						next = append(next, src)
					}
				}
			}
			if len(next) == 0 {
				continue
			}
			sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
			id, isNew, err := addOrGet(next)
			if err != nil {
				return nil, err
			}
			r.Delta[RDFAKey{State: cur, AtomKey: atom.Key()}] = id
			if isNew {
				queue = append(queue, id)
			}
		}
	}
	r.NumStates = len(r.StateSets)
	return r, nil
}

// buildReverseAdjacency inverts o.Delta, dropping the epsilon-path
// multiplicities that OrderedNFA preserves: the reverse automaton is used
// purely for reachability (can this suffix complete a match?), so
// duplicate targets collapse to one, per spec.md §4.4.
func buildReverseAdjacency(o *ordered.OrderedNFA) map[epsnfa.StateID]map[string][]epsnfa.StateID {
	revAdj := make(map[epsnfa.StateID]map[string][]epsnfa.StateID)
	for k, targets := range o.Delta {
		seen := make(map[epsnfa.StateID]bool, len(targets))
		for _, t := range targets {
			if seen[t] {
				continue
			}
			seen[t] = true
			if revAdj[t] == nil {
				revAdj[t] = make(map[string][]epsnfa.StateID)
			}
			revAdj[t][k.AtomKey] = append(revAdj[t][k.AtomKey], k.State)
		}
	}
	return revAdj
}

func setIntersectsInits(set []epsnfa.StateID, inits map[epsnfa.StateID]bool) bool {
	for _, s := range set {
		if inits[s] {
			return true
		}
	}
	return false
}

func setKey(set []epsnfa.StateID) string {
	if len(set) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(s), 10))
	}
	return b.String()
}
