package ambiguity

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ast"
)

func TestGateSuppressesUnanchoredPattern(t *testing.T) {
	g := NewGate(ast.Pattern{Root: ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}})
	if g.ShouldReport() {
		t.Error("an unanchored pattern with no continuation requirement can always cut its losses at the first match, so it should be suppressed")
	}
}

func TestGateReportsEndAnchoredPattern(t *testing.T) {
	n := ast.Sequence{Items: []ast.Node{
		ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true},
		ast.Anchor{Kind: ast.StringEnd},
	}}
	g := NewGate(ast.Pattern{Root: n})
	if !g.ShouldReport() {
		t.Error("an end-anchored pattern pins the engine to the ambiguous branch and should be reportable")
	}
}

func TestGateReportsLookaheadRequiringContinuation(t *testing.T) {
	g := NewGate(ast.Pattern{Root: ast.LookAhead{Body: ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true}}})
	if !g.ShouldReport() {
		t.Error("a look-ahead pins the match outcome to what follows and should be reportable regardless of anchoring")
	}
}
