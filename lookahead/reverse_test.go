package lookahead

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ast"
	"github.com/GetPageSpeed/recheck/epsnfa"
	"github.com/GetPageSpeed/recheck/ordered"
)

func orderedOrFatal(t *testing.T, root ast.Node) *ordered.OrderedNFA {
	t.Helper()
	nfa, err := epsnfa.Compile(ast.Pattern{Root: root}, 0)
	if err != nil {
		t.Fatalf("epsnfa.Compile: %v", err)
	}
	return ordered.Build(nfa, 20)
}

func TestReverseDFALiteral(t *testing.T) {
	o := orderedOrFatal(t, ast.Char{Rune: 'a'})
	rd, err := ReverseDFA(o, 0)
	if err != nil {
		t.Fatalf("ReverseDFA: %v", err)
	}
	if rd.NumStates != 2 {
		t.Fatalf("expected 2 reverse DFA states for a single-char literal, got %d", rd.NumStates)
	}
	if rd.Accepting[rd.Initial] {
		t.Error("the reverse DFA's start set (o's accept states) should not itself contain o's initial state")
	}
	var sawTransition bool
	for k, target := range rd.Delta {
		if k.State != rd.Initial {
			continue
		}
		sawTransition = true
		if !rd.Accepting[target] {
			t.Error("stepping back over 'a' from the start set should reach a set containing the original initial state")
		}
	}
	if !sawTransition {
		t.Fatal("expected at least one transition out of the reverse DFA's initial state")
	}
}

func TestReverseDFARespectsStateBudget(t *testing.T) {
	items := make([]ast.Node, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, ast.Char{Rune: rune('a' + i%20)})
	}
	o := orderedOrFatal(t, ast.Sequence{Items: items})
	_, err := ReverseDFA(o, 1)
	if err == nil {
		t.Fatal("expected a budget error with maxStates=1 on a long sequence")
	}
}

func TestReverseDFADeduplicatesTargets(t *testing.T) {
	// (a+)+ has duplicate OrderedNFA targets; the reversed automaton must
	// still be a clean subset-construction DFA: no state set lists an
	// OrderedNFA state twice, and no duplicate successors are recorded per
	// (state, atom).
	inner := ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}
	o := orderedOrFatal(t, ast.Plus{Body: inner, Greedy: true})
	rd, err := ReverseDFA(o, 0)
	if err != nil {
		t.Fatalf("ReverseDFA: %v", err)
	}
	for i, set := range rd.StateSets {
		inSet := make(map[epsnfa.StateID]bool, len(set))
		for _, id := range set {
			if inSet[id] {
				t.Fatalf("reverse DFA state %d lists OrderedNFA state %d twice: %v", i, id, set)
			}
			inSet[id] = true
		}
	}
	seenKeys := make(map[RDFAKey]bool)
	for k := range rd.Delta {
		if seenKeys[k] {
			t.Fatalf("duplicate RDFAKey %+v in Delta map (should be impossible)", k)
		}
		seenKeys[k] = true
	}
}
