package ordered

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ast"
	"github.com/GetPageSpeed/recheck/epsnfa"
)

func compileOrFatal(t *testing.T, root ast.Node) *epsnfa.NFA {
	t.Helper()
	nfa, err := epsnfa.Compile(ast.Pattern{Root: root}, 0)
	if err != nil {
		t.Fatalf("epsnfa.Compile: %v", err)
	}
	return nfa
}

func TestBuildSimplePlusHasNoMultiTrans(t *testing.T) {
	// a+ : a single loop, no reconvergent ambiguity.
	nfa := compileOrFatal(t, ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true})
	o := Build(nfa, 20)
	if o.HasMultiTrans {
		t.Error("a+ should not exhibit multi-transitions")
	}
}

func TestBuildNestedPlusHasMultiTrans(t *testing.T) {
	// (a+)+ : the classic EDA shape, two epsilon paths reconverge on the
	// same 'a' transition after a match.
	inner := ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}
	outer := ast.Plus{Body: inner, Greedy: true}
	nfa := compileOrFatal(t, outer)
	o := Build(nfa, 20)
	if !o.HasMultiTrans {
		t.Error("(a+)+ should exhibit multi-transitions (EDA precondition)")
	}
}

func TestBuildAcceptingPropagatesThroughEpsilon(t *testing.T) {
	// a? : the entry state is accepting via the epsilon skip branch.
	nfa := compileOrFatal(t, ast.Question{Body: ast.Char{Rune: 'a'}, Greedy: true})
	o := Build(nfa, 20)
	if !o.Accepting[nfa.Initial()] {
		t.Error("expected the initial state to be accepting through the skip epsilon")
	}
}

func TestBuildDisjointAlternationNoMultiTrans(t *testing.T) {
	// (a|b)+ : no reconvergence, distinct targets per character, safe.
	alt := ast.Disjunction{Alts: []ast.Node{ast.Char{Rune: 'a'}, ast.Char{Rune: 'b'}}}
	nfa := compileOrFatal(t, ast.Plus{Body: alt, Greedy: true})
	o := Build(nfa, 20)
	if o.HasMultiTrans {
		t.Error("(a|b)+ should not exhibit multi-transitions")
	}
}

func TestDeltaKeyedByAtom(t *testing.T) {
	nfa := compileOrFatal(t, ast.Char{Rune: 'a'})
	o := Build(nfa, 20)
	if len(o.Delta) == 0 {
		t.Fatal("expected at least one delta entry for a literal char")
	}
	for k, targets := range o.Delta {
		if k.AtomKey == "" {
			t.Error("expected a non-empty atom key")
		}
		if len(targets) == 0 {
			t.Error("expected non-empty target list")
		}
	}
}
