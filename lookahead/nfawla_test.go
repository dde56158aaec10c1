package lookahead

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ast"
)

func TestBuildNFAwLALiteral(t *testing.T) {
	o := orderedOrFatal(t, ast.Char{Rune: 'a'})
	rd, err := ReverseDFA(o, 0)
	if err != nil {
		t.Fatalf("ReverseDFA: %v", err)
	}
	n, err := BuildNFAwLA(o, rd, 0)
	if err != nil {
		t.Fatalf("BuildNFAwLA: %v", err)
	}
	if len(n.Inits) == 0 {
		t.Fatal("expected at least one init pair")
	}
	if len(n.Accept) == 0 {
		t.Fatal("expected at least one accept pair")
	}
	if len(n.Delta) == 0 {
		t.Fatal("expected at least one delta edge for a literal char")
	}
}

func TestBuildNFAwLARespectsDeltaBudget(t *testing.T) {
	inner := ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}
	o := orderedOrFatal(t, ast.Plus{Body: inner, Greedy: true})
	rd, err := ReverseDFA(o, 0)
	if err != nil {
		t.Fatalf("ReverseDFA: %v", err)
	}
	if _, err := BuildNFAwLA(o, rd, 0); err != nil {
		t.Fatalf("BuildNFAwLA with no budget: %v", err)
	}
	if _, err := BuildNFAwLA(o, rd, 1); err == nil {
		t.Fatal("expected a delta-size budget error for the ambiguous (a+)+ shape")
	}
}
