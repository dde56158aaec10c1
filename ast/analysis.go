package ast

// HasEndAnchor reports whether n contains a StringEnd or LineEnd anchor
// reachable without crossing a lookaround boundary, grounded on
// original_source/src/redoctor/automaton/checker.py's has_end_anchor.
func HasEndAnchor(n Node) bool {
	found := false
	var walk func(Node)
	walk = func(n Node) {
		if found {
			return
		}
		switch v := n.(type) {
		case Anchor:
			if v.Kind == StringEnd || v.Kind == LineEnd {
				found = true
			}
		case LookAhead, NegLookAhead, LookBehind, NegLookBehind:
			// anchors inside lookaround don't anchor the outer match
			return
		default:
			for _, c := range n.Children() {
				walk(c)
				if found {
					return
				}
			}
		}
	}
	walk(n)
	return found
}

// RequiresContinuation reports whether n contains a lookahead assertion
// (positive or negative) reachable through sequences, alternations, and
// groups; such an assertion ties the match outcome to input beyond the
// matched text. A lookahead nested inside a quantifier or a lookbehind is
// not found, and required content after a quantified group is not
// considered. This is the spec.md §4.7 gate used to suppress false
// positives on patterns that can only be pathological if matching is
// forced to continue past the ambiguous region — grounded on checker.py's
// requires_continuation.
func RequiresContinuation(n Node) bool {
	switch v := n.(type) {
	case LookAhead, NegLookAhead:
		return true
	case Sequence:
		for _, item := range v.Items {
			if RequiresContinuation(item) {
				return true
			}
		}
		return false
	case Disjunction:
		for _, alt := range v.Alts {
			if RequiresContinuation(alt) {
				return true
			}
		}
		return false
	case Capture:
		return RequiresContinuation(v.Body)
	case NamedCapture:
		return RequiresContinuation(v.Body)
	case NonCapture:
		return RequiresContinuation(v.Body)
	case AtomicGroup:
		return RequiresContinuation(v.Body)
	default:
		return false
	}
}

// HasBackreferences reports whether n contains a Backref, NamedBackref, or
// Conditional node, any of which force an UNKNOWN verdict before any NFA
// is built (spec.md §6.1), grounded on checker.py's has_backreferences.
func HasBackreferences(n Node) bool {
	found := false
	Walk(n, func(n Node) {
		switch n.(type) {
		case Backref, NamedBackref, Conditional:
			found = true
		}
	})
	return found
}
