package hotspot

import (
	"testing"

	"github.com/GetPageSpeed/recheck/ast"
)

func TestExtractLiteralsSkipsShortAndNonLiteralRuns(t *testing.T) {
	root := ast.Sequence{Items: []ast.Node{
		ast.Char{Rune: 'f'},
		ast.Char{Rune: 'o'},
		ast.Char{Rune: 'o'},
		ast.Plus{Body: ast.Char{Rune: 'a'}, Greedy: true},
		ast.Char{Rune: 'b'},
		ast.Char{Rune: 'a'},
		ast.Char{Rune: 'r'},
	}}
	literals := ExtractLiterals(root)
	if len(literals) != 2 {
		t.Fatalf("got %d literal runs, want 2: %v", len(literals), literals)
	}
	if string(literals[0]) != "foo" || string(literals[1]) != "bar" {
		t.Errorf("got %q, %q, want \"foo\", \"bar\"", literals[0], literals[1])
	}
}

func TestExtractLiteralsEmptyForNoSequence(t *testing.T) {
	literals := ExtractLiterals(ast.Char{Rune: 'a'})
	if len(literals) != 0 {
		t.Errorf("got %v, want no literal runs outside a Sequence", literals)
	}
}

func TestBuildAutomatonEmptyLiterals(t *testing.T) {
	auto, err := BuildAutomaton(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auto != nil {
		t.Error("expected a nil automaton for no literals")
	}
}

func TestLocateFindsLiteral(t *testing.T) {
	auto, err := BuildAutomaton([][]byte{[]byte("foo"), []byte("bar")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	span, ok := Locate(auto, []byte("xxfooyy"), 0)
	if !ok {
		t.Fatal("expected to locate \"foo\"")
	}
	if span.Start != 2 || span.End != 5 {
		t.Errorf("got span %+v, want {2 5}", span)
	}
}

func TestLocateNoMatch(t *testing.T) {
	auto, err := BuildAutomaton([][]byte{[]byte("zzz")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := Locate(auto, []byte("xxfooyy"), 0); ok {
		t.Error("expected no match for \"zzz\" in \"xxfooyy\"")
	}
}
