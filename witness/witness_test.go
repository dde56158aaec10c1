package witness

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ambiguity"
	"github.com/GetPageSpeed/recheck/ast"
	"github.com/GetPageSpeed/recheck/epsnfa"
	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/ordered"
	"github.com/GetPageSpeed/recheck/scc"
)

func buildPipeline(t *testing.T, root ast.Node) (*ordered.OrderedNFA, *lookahead.NFAwLA, *scc.Graph, []scc.SCC) {
	t.Helper()
	nfa, err := epsnfa.Compile(ast.Pattern{Root: root}, 0)
	if err != nil {
		t.Fatalf("epsnfa.Compile: %v", err)
	}
	o := ordered.Build(nfa, 20)
	rd, err := lookahead.ReverseDFA(o, 0)
	if err != nil {
		t.Fatalf("ReverseDFA: %v", err)
	}
	n, err := lookahead.BuildNFAwLA(o, rd, 0)
	if err != nil {
		t.Fatalf("BuildNFAwLA: %v", err)
	}
	g := scc.FromNFAwLA(n)
	return o, n, g, g.ComputeSCCs()
}

func TestFromEDAProducesNonEmptyPump(t *testing.T) {
	inner := ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}
	o, n, g, sccs := buildPipeline(t, ast.Plus{Body: inner, Greedy: true})
	seed := ambiguity.CheckEDA(n, g, sccs)
	if seed == nil {
		t.Fatal("expected an EDA witness for (a+)+")
	}
	atoms := BuildAtomLookup(o.Alphabet)
	attack := FromEDA(n, g, atoms, seed, 5)
	if len(attack.Pump) == 0 {
		t.Error("expected a non-empty pump")
	}
	if attack.Pump[0] != 'a' {
		t.Errorf("expected pump to sample 'a', got %q", attack.Pump[0])
	}
	if attack.RepeatCount != 5 {
		t.Errorf("got repeatCount %d, want 5", attack.RepeatCount)
	}
	s := attack.String()
	if len(s) == 0 {
		t.Error("expected a non-empty attack string")
	}
}

func TestShortestPathFindsDirectEdge(t *testing.T) {
	a, b := lookahead.Pair{Q: 1}, lookahead.Pair{Q: 2}
	g := &scc.Graph{
		Vertices: []lookahead.Pair{a, b},
		Neighbors: map[lookahead.Pair][]scc.Edge{
			a: {{Char: lookahead.CharKey{AtomKey: "x"}, Target: b}},
		},
	}
	path, ok := ShortestPath(g, []lookahead.Pair{a}, b)
	if !ok {
		t.Fatal("expected a path from a to b")
	}
	if len(path) != 1 || path[0].AtomKey != "x" {
		t.Errorf("got path %+v, want a single 'x' edge", path)
	}
}

func TestShortestPathSourceEqualsTarget(t *testing.T) {
	a := lookahead.Pair{Q: 1}
	g := &scc.Graph{Vertices: []lookahead.Pair{a}}
	path, ok := ShortestPath(g, []lookahead.Pair{a}, a)
	if !ok || len(path) != 0 {
		t.Errorf("expected an empty path when source==target, got %+v ok=%v", path, ok)
	}
}

func TestFindDeadEndStartIsAlreadyDead(t *testing.T) {
	a := lookahead.Pair{Q: 1}
	g := &scc.Graph{Vertices: []lookahead.Pair{a}}
	path, state, ok := FindDeadEnd(g, a, map[lookahead.Pair]bool{})
	if !ok || state != a || len(path) != 0 {
		t.Errorf("expected start itself as the dead end, got path=%+v state=%+v ok=%v", path, state, ok)
	}
}
