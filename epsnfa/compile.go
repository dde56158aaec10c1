package epsnfa

import (
	"unicode"

	"github.com/GetPageSpeed/recheck/ast"
	"github.com/GetPageSpeed/recheck/charset"
)

const (
	priLow  = 0 // tried first
	priHigh = 1 // tried second
)

// Compile translates an AST into an EpsNFA per spec.md §4.2's node-kind
// table, generalizing nfa/compile.go's per-Op dispatch structure from
// regexp/syntax.Op to ast.Node kinds (including the ones regexp/syntax
// can't produce). Backref/NamedBackref/Conditional anywhere in the tree
// cause ErrBackreferenceUnsupported before any state is allocated, per
// spec.md §6.1. maxNFASize is spec.md §4.2's state-count cap; 0 means
// unbounded.
func Compile(p ast.Pattern, maxNFASize int) (*NFA, error) {
	if ast.HasBackreferences(p.Root) {
		return nil, ErrBackreferenceUnsupported
	}
	if err := checkComplexLookbehind(p.Root); err != nil {
		return nil, err
	}

	c := &compiler{b: NewBuilder(maxNFASize), flags: p.Flags}
	entry, exit, err := c.compile(p.Root)
	if err != nil {
		return nil, &CompileError{Pattern: p.Source, Err: err}
	}
	if err := c.b.SetAccepting(exit); err != nil {
		return nil, &CompileError{Pattern: p.Source, Err: err}
	}
	c.b.SetInitial(entry)
	nfa, err := c.b.Build()
	if err != nil {
		return nil, &CompileError{Pattern: p.Source, Err: err}
	}
	return nfa, nil
}

// checkComplexLookbehind rejects lookbehind assertions whose body contains
// an unbounded quantifier: the conservative unconditional-ε encoding of
// spec.md §4.2 is sound for fixed-width lookbehind but can silently hide
// ambiguity that only manifests when re-matching a variable-width
// lookbehind body backwards, which this port does not attempt to model.
func checkComplexLookbehind(n ast.Node) error {
	var walk func(ast.Node) error
	walk = func(n ast.Node) error {
		switch v := n.(type) {
		case ast.LookBehind:
			if hasUnboundedQuantifier(v.Body) {
				return ErrLookbehindUnsupportedComplex
			}
		case ast.NegLookBehind:
			if hasUnboundedQuantifier(v.Body) {
				return ErrLookbehindUnsupportedComplex
			}
		}
		for _, c := range n.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(n)
}

func hasUnboundedQuantifier(n ast.Node) bool {
	found := false
	ast.Walk(n, func(n ast.Node) {
		switch v := n.(type) {
		case ast.Star, ast.Plus:
			found = true
		case ast.BoundedRepeat:
			if v.Max == ast.Unbounded {
				found = true
			}
		}
	})
	return found
}

type compiler struct {
	b     *Builder
	flags ast.Flags
}

// compile returns the (entry, exit) state pair for n's sub-NFA.
func (c *compiler) compile(n ast.Node) (entry, exit StateID, err error) {
	switch v := n.(type) {
	case ast.Empty:
		return c.epsPair()

	case ast.Sequence:
		return c.compileSequence(v.Items)

	case ast.Disjunction:
		return c.compileDisjunction(v.Alts)

	case ast.Capture:
		return c.compile(v.Body)
	case ast.NamedCapture:
		return c.compile(v.Body)
	case ast.NonCapture:
		return c.compile(v.Body)
	case ast.AtomicGroup:
		// Conservative: analyzed the same as a non-capturing group.
		// Atomicity would forbid re-entry that creates ambiguity, so
		// treating it as transparent can only overestimate complexity,
		// never hide it (spec.md §4.2's conservatism rule).
		return c.compile(v.Body)

	case ast.Star:
		return c.compileStar(v.Body, v.Greedy)
	case ast.Plus:
		return c.compilePlus(v.Body, v.Greedy)
	case ast.Question:
		return c.compileQuestion(v.Body, v.Greedy)
	case ast.BoundedRepeat:
		return c.compileBoundedRepeat(v)

	case ast.Char:
		ic := c.foldedChar(v.Rune)
		return c.charPair(ic)

	case ast.Dot:
		return c.charPair(dotClass(v.DotAll))

	case ast.CharClass:
		ic, err := c.classIChar(v)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		return c.charPair(ic)

	case ast.PredefinedClass:
		return c.charPair(predefClass(v.Kind))

	case ast.Anchor:
		// Conservative unconditional ε, per spec.md §4.2: anchors are
		// zero-width assertions that are never modeled as guards.
		return c.epsPair()

	case ast.LookAhead, ast.NegLookAhead, ast.LookBehind, ast.NegLookBehind:
		// The assertion's body is not traversed into the automaton at
		// all: the whole node becomes an unconditional ε, per spec.md
		// §4.2 ("conservatively encoded as unconditional ε").
		return c.epsPair()

	case ast.UnicodeProperty:
		ic := unicodePropertyIChar(v.Name, v.Negated)
		return c.charPair(ic)

	default:
		return InvalidState, InvalidState, &BuildError{Message: "unsupported AST node kind"}
	}
}

func (c *compiler) epsPair() (entry, exit StateID, err error) {
	entry, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: exit, Priority: priLow}); err != nil {
		return InvalidState, InvalidState, err
	}
	return entry, exit, nil
}

func (c *compiler) charPair(ic charset.IChar) (entry, exit StateID, err error) {
	entry, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransChar, Char: ic, Target: exit, Priority: priLow}); err != nil {
		return InvalidState, InvalidState, err
	}
	return entry, exit, nil
}

func (c *compiler) compileSequence(items []ast.Node) (entry, exit StateID, err error) {
	if len(items) == 0 {
		return c.epsPair()
	}
	entry, prevExit, err := c.compile(items[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, item := range items[1:] {
		ie, ix, err := c.compile(item)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.b.AddTransition(prevExit, Transition{Kind: TransEpsilon, Target: ie, Priority: priLow}); err != nil {
			return InvalidState, InvalidState, err
		}
		prevExit = ix
	}
	return entry, prevExit, nil
}

func (c *compiler) compileDisjunction(alts []ast.Node) (entry, exit StateID, err error) {
	if len(alts) == 0 {
		// Matches no string: model as an entry with no path to exit.
		entry, err = c.b.NewState()
		if err != nil {
			return InvalidState, InvalidState, err
		}
		exit, err = c.b.NewState()
		if err != nil {
			return InvalidState, InvalidState, err
		}
		return entry, exit, nil
	}
	entry, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for i, alt := range alts {
		ae, ax, err := c.compile(alt)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: ae, Priority: i}); err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.b.AddTransition(ax, Transition{Kind: TransEpsilon, Target: exit, Priority: priLow}); err != nil {
			return InvalidState, InvalidState, err
		}
	}
	return entry, exit, nil
}

func (c *compiler) compileStar(body ast.Node, greedy bool) (entry, exit StateID, err error) {
	entry, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	be, bx, err := c.compile(body)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	enterPri, skipPri := priLow, priHigh
	if !greedy {
		enterPri, skipPri = priHigh, priLow
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: be, Priority: enterPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: exit, Priority: skipPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(bx, Transition{Kind: TransEpsilon, Target: be, Priority: enterPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(bx, Transition{Kind: TransEpsilon, Target: exit, Priority: skipPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	return entry, exit, nil
}

func (c *compiler) compilePlus(body ast.Node, greedy bool) (entry, exit StateID, err error) {
	be, bx, err := c.compile(body)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	loopPri, exitPri := priLow, priHigh
	if !greedy {
		loopPri, exitPri = priHigh, priLow
	}
	if err := c.b.AddTransition(bx, Transition{Kind: TransEpsilon, Target: be, Priority: loopPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(bx, Transition{Kind: TransEpsilon, Target: exit, Priority: exitPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	return be, exit, nil
}

func (c *compiler) compileQuestion(body ast.Node, greedy bool) (entry, exit StateID, err error) {
	entry, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	exit, err = c.b.NewState()
	if err != nil {
		return InvalidState, InvalidState, err
	}
	be, bx, err := c.compile(body)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	enterPri, skipPri := priLow, priHigh
	if !greedy {
		enterPri, skipPri = priHigh, priLow
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: be, Priority: enterPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(entry, Transition{Kind: TransEpsilon, Target: exit, Priority: skipPri}); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.b.AddTransition(bx, Transition{Kind: TransEpsilon, Target: exit, Priority: priLow}); err != nil {
		return InvalidState, InvalidState, err
	}
	return entry, exit, nil
}

// compileBoundedRepeat unrolls B{min,max} into min mandatory copies of B
// followed by (max-min) sequential optional copies, or a trailing Star when
// max is unbounded, per spec.md §4.2's translation table.
func (c *compiler) compileBoundedRepeat(v ast.BoundedRepeat) (entry, exit StateID, err error) {
	var items []ast.Node
	for i := 0; i < v.Min; i++ {
		items = append(items, v.Body)
	}
	if v.Max == ast.Unbounded {
		items = append(items, ast.Star{Body: v.Body, Greedy: v.Greedy})
	} else {
		for i := v.Min; i < v.Max; i++ {
			items = append(items, ast.Question{Body: v.Body, Greedy: v.Greedy})
		}
	}
	if len(items) == 0 {
		return c.epsPair()
	}
	return c.compileSequence(items)
}

// foldedChar returns the IChar for a literal rune, expanded to its simple
// case-fold orbit when the pattern is case-insensitive (spec.md §6.2).
func (c *compiler) foldedChar(r rune) charset.IChar {
	if !c.flags.IgnoreCase {
		return charset.Single(r)
	}
	ranges := []charset.Range{{Lo: r, Hi: r}}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		ranges = append(ranges, charset.Range{Lo: f, Hi: f})
	}
	return charset.NewIChar(ranges...)
}

func dotClass(dotAll bool) charset.IChar {
	if dotAll {
		return charset.NewIChar(charset.Range{Lo: 0, Hi: charset.MaxRune})
	}
	// Any code point except line terminators.
	return charset.NewIChar(
		charset.Range{Lo: 0, Hi: '\n' - 1},
		charset.Range{Lo: '\n' + 1, Hi: charset.MaxRune},
	)
}

func predefClass(kind ast.PredefKind) charset.IChar {
	word := charset.NewIChar(
		charset.Range{Lo: 'a', Hi: 'z'},
		charset.Range{Lo: 'A', Hi: 'Z'},
		charset.Range{Lo: '0', Hi: '9'},
		charset.Range{Lo: '_', Hi: '_'},
	)
	digit := charset.NewIChar(charset.Range{Lo: '0', Hi: '9'})
	space := charset.NewIChar(
		charset.Range{Lo: '\t', Hi: '\n'},
		charset.Range{Lo: '\f', Hi: '\r'},
		charset.Range{Lo: ' ', Hi: ' '},
	)
	switch kind {
	case ast.PredefWord:
		return word
	case ast.PredefNotWord:
		return complement(word)
	case ast.PredefDigit:
		return digit
	case ast.PredefNotDigit:
		return complement(digit)
	case ast.PredefSpace:
		return space
	case ast.PredefNotSpace:
		return complement(space)
	default:
		return charset.IChar{}
	}
}

func complement(a charset.IChar) charset.IChar {
	var out []charset.Range
	next := rune(0)
	for _, r := range a.Ranges() {
		if r.Lo > next {
			out = append(out, charset.Range{Lo: next, Hi: r.Lo - 1})
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= charset.MaxRune {
		out = append(out, charset.Range{Lo: next, Hi: charset.MaxRune})
	}
	if len(out) == 0 {
		return charset.IChar{}
	}
	return charset.NewIChar(out...)
}

func (c *compiler) classIChar(cls ast.CharClass) (charset.IChar, error) {
	var ranges []charset.Range
	var ic charset.IChar
	for _, item := range cls.Items {
		if item.Predef != ast.PredefNone {
			ic = ic.Union(predefClass(item.Predef))
			continue
		}
		// Case-folding widens a range rune-by-rune, which is only
		// tractable for small ranges; character classes in practice are
		// small enough (a handful of letters/digits) that this never
		// matters, and large ranges are already case-symmetric enough
		// (e.g. \x00-\x{10FFFF}) that folding would be a no-op anyway.
		if c.flags.IgnoreCase && item.Hi-item.Lo < 1000 {
			for r := item.Lo; r <= item.Hi; r++ {
				ic = ic.Union(c.foldedChar(r))
			}
			continue
		}
		ranges = append(ranges, charset.Range{Lo: item.Lo, Hi: item.Hi})
	}
	if len(ranges) > 0 {
		ic = ic.Union(charset.NewIChar(ranges...))
	}
	if cls.Negated {
		ic = complement(ic)
	}
	return ic, nil
}

// unicodePropertyIChar resolves a \p{Name}/\P{Name} assertion against the
// standard library's Unicode tables (categories, scripts, and properties),
// falling back to the full alphabet (conservative: never under-approximate
// what a Unicode property could match) when the name is unrecognized.
func unicodePropertyIChar(name string, negated bool) charset.IChar {
	rt, ok := unicode.Categories[name]
	if !ok {
		rt, ok = unicode.Scripts[name]
	}
	if !ok {
		rt, ok = unicode.Properties[name]
	}
	var ic charset.IChar
	if !ok {
		ic = charset.NewIChar(charset.Range{Lo: 0, Hi: charset.MaxRune})
	} else {
		ic = fromRangeTable(rt)
	}
	if negated {
		return complement(ic)
	}
	return ic
}

func fromRangeTable(rt *unicode.RangeTable) charset.IChar {
	var ranges []charset.Range
	for _, r := range rt.R16 {
		if r.Stride == 1 {
			ranges = append(ranges, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for lo := rune(r.Lo); lo <= rune(r.Hi); lo += rune(r.Stride) {
			ranges = append(ranges, charset.Range{Lo: lo, Hi: lo})
		}
	}
	for _, r := range rt.R32 {
		if r.Stride == 1 {
			ranges = append(ranges, charset.Range{Lo: rune(r.Lo), Hi: rune(r.Hi)})
			continue
		}
		for lo := rune(r.Lo); lo <= rune(r.Hi); lo += rune(r.Stride) {
			ranges = append(ranges, charset.Range{Lo: lo, Hi: lo})
		}
	}
	return charset.NewIChar(ranges...)
}
