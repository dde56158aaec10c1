// Package ast defines the AST contract the core analyzer consumes (spec.md
// §6.1). The parser that produces this tree is an external collaborator —
// out of scope per spec.md §1 — so this package defines only the node set
// and a walk helper, grounded on original_source/src/redoctor/parser/ast.py's
// Node ABC (children()/walk()).
package ast

// Node is the closed interface implemented by every AST node kind named in
// spec.md §6.1.
type Node interface {
	// Children returns the node's immediate children, in source order.
	Children() []Node
	// node is unexported to close the interface to this package's types.
	node()
}

// Walk yields n and all of its descendants, pre-order.
func Walk(n Node, visit func(Node)) {
	visit(n)
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}

// Flags carries the three flags the core reads from the AST (spec.md §6.2).
type Flags struct {
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
}

// Pattern is the root of a parsed regex: the AST plus its attached flags and
// original source text (used only for diagnostics, never for analysis).
type Pattern struct {
	Root   Node
	Flags  Flags
	Source string
}

type base struct{}

func (base) node() {}

// Empty matches the empty string.
type Empty struct{ base }

func (Empty) Children() []Node { return nil }

// Sequence is concatenation of its children in order.
type Sequence struct {
	base
	Items []Node
}

func (s Sequence) Children() []Node { return s.Items }

// Disjunction is alternation; Alts are tried in order (leftmost-first).
type Disjunction struct {
	base
	Alts []Node
}

func (d Disjunction) Children() []Node { return d.Alts }

// Capture is a numbered capturing group "(...)".
type Capture struct {
	base
	Index int
	Body  Node
}

func (c Capture) Children() []Node { return []Node{c.Body} }

// NamedCapture is a named capturing group "(?P<name>...)".
type NamedCapture struct {
	base
	Index int
	Name  string
	Body  Node
}

func (c NamedCapture) Children() []Node { return []Node{c.Body} }

// NonCapture is a non-capturing group "(?:...)".
type NonCapture struct {
	base
	Body Node
}

func (n NonCapture) Children() []Node { return []Node{n.Body} }

// AtomicGroup is a possessive/atomic group "(?>...)": once matched, its
// content is never backtracked into. Modeled conservatively (see
// epsnfa/compile.go) since the analyzer does not execute backtracking.
type AtomicGroup struct {
	base
	Body Node
}

func (a AtomicGroup) Children() []Node { return []Node{a.Body} }

// Star is the Kleene star "B*".
type Star struct {
	base
	Body   Node
	Greedy bool
}

func (s Star) Children() []Node { return []Node{s.Body} }

// Plus is "B+".
type Plus struct {
	base
	Body   Node
	Greedy bool
}

func (p Plus) Children() []Node { return []Node{p.Body} }

// Question is "B?".
type Question struct {
	base
	Body   Node
	Greedy bool
}

func (q Question) Children() []Node { return []Node{q.Body} }

// BoundedRepeat is "B{min,max}". Max == -1 denotes unbounded (∞).
type BoundedRepeat struct {
	base
	Body   Node
	Min    int
	Max    int // -1 for unbounded
	Greedy bool
}

// Unbounded is the sentinel for BoundedRepeat.Max meaning ∞.
const Unbounded = -1

func (b BoundedRepeat) Children() []Node { return []Node{b.Body} }

// Char matches a single literal code point.
type Char struct {
	base
	Rune rune
}

func (Char) Children() []Node { return nil }

// Dot matches any code point; DotAll also matches line terminators.
type Dot struct {
	base
	DotAll bool
}

func (Dot) Children() []Node { return nil }

// ClassItem is one member of a CharClass: either a single rune range or a
// nested predefined class (e.g. \d inside [\da-f]).
type ClassItem struct {
	Lo, Hi rune    // valid when Predef == PredefNone
	Predef PredefKind
}

// CharClass is "[...]" possibly negated.
type CharClass struct {
	base
	Items    []ClassItem
	Negated  bool
}

func (CharClass) Children() []Node { return nil }

// PredefKind enumerates predefined classes \w \d \s and their negations.
type PredefKind int

const (
	PredefNone PredefKind = iota
	PredefWord
	PredefNotWord
	PredefDigit
	PredefNotDigit
	PredefSpace
	PredefNotSpace
)

// PredefinedClass matches one of \w \d \s \W \D \S.
type PredefinedClass struct {
	base
	Kind PredefKind
}

func (PredefinedClass) Children() []Node { return nil }

// AnchorKind enumerates the zero-width anchors of spec.md §6.1.
type AnchorKind int

const (
	LineStart AnchorKind = iota
	LineEnd
	StringStart
	StringEnd
	WordBoundary
	NonWordBoundary
)

// Anchor is a zero-width position assertion.
type Anchor struct {
	base
	Kind AnchorKind
}

func (Anchor) Children() []Node { return nil }

// LookAhead is "(?=...)".
type LookAhead struct {
	base
	Body Node
}

func (l LookAhead) Children() []Node { return []Node{l.Body} }

// NegLookAhead is "(?!...)".
type NegLookAhead struct {
	base
	Body Node
}

func (l NegLookAhead) Children() []Node { return []Node{l.Body} }

// LookBehind is "(?<=...)".
type LookBehind struct {
	base
	Body Node
}

func (l LookBehind) Children() []Node { return []Node{l.Body} }

// NegLookBehind is "(?<!...)".
type NegLookBehind struct {
	base
	Body Node
}

func (l NegLookBehind) Children() []Node { return []Node{l.Body} }

// Backref is "\1" etc. Patterns containing this node must yield UNKNOWN
// with reason backreference_unsupported before any NFA is built (spec.md
// §6.1).
type Backref struct {
	base
	Index int
}

func (Backref) Children() []Node { return nil }

// NamedBackref is "\k<name>".
type NamedBackref struct {
	base
	Name string
}

func (NamedBackref) Children() []Node { return nil }

// UnicodeProperty is "\p{...}" / "\P{...}".
type UnicodeProperty struct {
	base
	Name     string
	Negated  bool
}

func (UnicodeProperty) Children() []Node { return nil }

// Conditional is "(?(cond)yes|no)". Causes UNKNOWN per spec.md §6.1.
type Conditional struct {
	base
	Cond Node
	Yes  Node
	No   Node
}

func (c Conditional) Children() []Node {
	children := []Node{c.Yes}
	if c.Cond != nil {
		children = append(children, c.Cond)
	}
	if c.No != nil {
		children = append(children, c.No)
	}
	return children
}
