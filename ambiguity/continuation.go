package ambiguity

import "github.com/GetPageSpeed/recheck/ast"

// Gate decides whether an EDA/IDA finding should actually be reported,
// per original_source/src/redoctor/automaton/checker.py's
// has_end_anchor/requires_continuation threading into ComplexityAnalyzer.
// Without an end anchor, a regex engine's own leftmost-match search can
// abandon the ambiguous branch the instant it finds any match, so the
// worst-case blowup is never forced to run to completion — unless the
// pattern also RequiresContinuation (a lookahead whose match
// can only be confirmed by what follows), which pins the engine to the
// ambiguous path regardless of anchoring.
type Gate struct {
	HasEndAnchor         bool
	RequiresContinuation bool
}

// NewGate inspects pattern for the anchor/continuation properties that
// gate ambiguity reporting.
func NewGate(p ast.Pattern) Gate {
	return Gate{
		HasEndAnchor:         ast.HasEndAnchor(p.Root),
		RequiresContinuation: ast.RequiresContinuation(p.Root),
	}
}

// ShouldReport decides whether a detected EDA/IDA witness represents a
// genuine vulnerability worth surfacing. A pattern with neither an end
// anchor nor a continuation requirement downgrades to Safe with reason
// unanchored_no_continuation: the matcher can always cut its losses at
// the first successful match, so pumping the ambiguous branch is never
// forced.
func (g Gate) ShouldReport() bool {
	return g.HasEndAnchor || g.RequiresContinuation
}
