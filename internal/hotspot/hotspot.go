// Package hotspot narrows a vulnerability's reported source span from
// "the whole pattern" down to the leftmost of the pattern's literal runs
// found in its source text (the repetition that drives the vulnerability
// is not consulted), using the same Aho-Corasick automaton the teacher
// builds at runtime for large literal alternations — repurposed here
// from matching a haystack to matching the pattern's own source text
// against its extracted literal runs. Grounded on coregx-coregex's
// meta/compile.go's ahocorasick.NewBuilder()/AddPattern/Build usage and
// meta/find.go's Automaton.Find call shape.
package hotspot

import (
	"github.com/coregx/ahocorasick"

	"github.com/GetPageSpeed/recheck/ast"
)

// ExtractLiterals walks root and collects every maximal run of adjacent
// literal Char nodes (inside a Sequence) as a byte string. Runs shorter
// than 2 runes are skipped, so a standalone literal Char is never
// collected: a single character is rarely distinctive enough to localize a hotspot,
// and including every one would make the automaton favor the first
// character in the pattern over the actually-repeating construct.
func ExtractLiterals(root ast.Node) [][]byte {
	var literals [][]byte
	ast.Walk(root, func(n ast.Node) {
		seq, ok := n.(ast.Sequence)
		if !ok {
			return
		}
		var run []rune
		flush := func() {
			if len(run) >= 2 {
				literals = append(literals, []byte(string(run)))
			}
			run = nil
		}
		for _, item := range seq.Items {
			if c, ok := item.(ast.Char); ok {
				run = append(run, c.Rune)
				continue
			}
			flush()
		}
		flush()
	})
	return literals
}

// BuildAutomaton compiles literals into an Aho-Corasick automaton for
// locating them in source text. Returns (nil, nil) if literals is empty:
// there is nothing to search for, which is not itself an error.
func BuildAutomaton(literals [][]byte) (*ahocorasick.Automaton, error) {
	if len(literals) == 0 {
		return nil, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	return builder.Build()
}

// Span is a byte-offset range located by Locate.
type Span struct {
	Start int
	End   int
}

// Locate finds the first occurrence of any of automaton's literals in
// source, starting the search at `at`. Returns (Span{}, false) if
// automaton is nil or no literal occurs in source.
func Locate(automaton *ahocorasick.Automaton, source []byte, at int) (Span, bool) {
	if automaton == nil || at >= len(source) {
		return Span{}, false
	}
	m := automaton.Find(source, at)
	if m == nil {
		return Span{}, false
	}
	return Span{Start: m.Start, End: m.End}, true
}
