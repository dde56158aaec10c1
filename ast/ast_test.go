package ast

import "testing"

func TestWalkVisitsAllDescendants(t *testing.T) {
	tree := Sequence{Items: []Node{
		Char{Rune: 'a'},
		Star{Body: Char{Rune: 'b'}, Greedy: true},
		Disjunction{Alts: []Node{Char{Rune: 'c'}, Char{Rune: 'd'}}},
	}}

	var kinds []string
	Walk(tree, func(n Node) {
		switch n.(type) {
		case Sequence:
			kinds = append(kinds, "Sequence")
		case Char:
			kinds = append(kinds, "Char")
		case Star:
			kinds = append(kinds, "Star")
		case Disjunction:
			kinds = append(kinds, "Disjunction")
		}
	})

	want := []string{"Sequence", "Char", "Star", "Char", "Disjunction", "Char", "Char"}
	if len(kinds) != len(want) {
		t.Fatalf("got %d visits %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestHasBackreferences(t *testing.T) {
	withBackref := Sequence{Items: []Node{Char{Rune: 'a'}, Backref{Index: 1}}}
	if !HasBackreferences(withBackref) {
		t.Error("expected HasBackreferences to find the Backref node")
	}

	withoutBackref := Sequence{Items: []Node{Char{Rune: 'a'}, Char{Rune: 'b'}}}
	if HasBackreferences(withoutBackref) {
		t.Error("did not expect HasBackreferences to find anything")
	}

	withConditional := Conditional{Cond: Char{Rune: 'a'}, Yes: Char{Rune: 'b'}, No: Empty{}}
	if !HasBackreferences(withConditional) {
		t.Error("expected HasBackreferences to flag Conditional")
	}
}

func TestHasEndAnchor(t *testing.T) {
	withEnd := Sequence{Items: []Node{Char{Rune: 'a'}, Anchor{Kind: StringEnd}}}
	if !HasEndAnchor(withEnd) {
		t.Error("expected HasEndAnchor to find the trailing $")
	}

	withoutEnd := Sequence{Items: []Node{Char{Rune: 'a'}}}
	if HasEndAnchor(withoutEnd) {
		t.Error("did not expect HasEndAnchor to find anything")
	}

	// An anchor inside a lookaround doesn't anchor the outer match.
	hiddenInLookahead := Sequence{Items: []Node{
		Char{Rune: 'a'},
		LookAhead{Body: Anchor{Kind: StringEnd}},
	}}
	if HasEndAnchor(hiddenInLookahead) {
		t.Error("anchor inside lookahead should not count as an end anchor")
	}
}

func TestRequiresContinuation(t *testing.T) {
	n := Sequence{Items: []Node{Char{Rune: 'a'}, LookAhead{Body: Char{Rune: 'b'}}}}
	if !RequiresContinuation(n) {
		t.Error("expected RequiresContinuation to be true when a lookahead is present")
	}

	plain := Sequence{Items: []Node{Char{Rune: 'a'}, Char{Rune: 'b'}}}
	if RequiresContinuation(plain) {
		t.Error("did not expect RequiresContinuation for a plain sequence")
	}
}
