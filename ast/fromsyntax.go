package ast

import (
	"fmt"
	"regexp/syntax"
)

// FromSyntax adapts the output of the standard library's regexp/syntax
// parser into this package's Node tree. regexp/syntax is the external
// parser this analyzer treats as a black box (spec.md §1); it cannot
// produce Backref, NamedBackref, or Conditional nodes, so those are only
// reachable from hand-built trees (see the epsnfa tests that exercise
// them directly), grounded on nfa/pattern_analysis.go's direct *syntax.
// Regexp walk. IgnoreCase is set when flags has FoldCase or when any node
// of re carries it (an inline "(?i)" is recorded on the sub-nodes it
// covers, not on the root).
func FromSyntax(re *syntax.Regexp, flags syntax.Flags) (Pattern, error) {
	root, err := nodeFromSyntax(re)
	if err != nil {
		return Pattern{}, err
	}
	ignoreCase := flags&syntax.FoldCase != 0
	var findFold func(*syntax.Regexp)
	findFold = func(r *syntax.Regexp) {
		if r.Flags&syntax.FoldCase != 0 {
			ignoreCase = true
		}
		for _, sub := range r.Sub {
			findFold(sub)
		}
	}
	findFold(re)
	return Pattern{
		Root: root,
		Flags: Flags{
			IgnoreCase: ignoreCase,
			Multiline:  flags&syntax.OneLine == 0,
			DotAll:     flags&syntax.DotNL != 0,
		},
	}, nil
}

func nodeFromSyntax(re *syntax.Regexp) (Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		// No string matches; model as an alternation of zero branches so
		// downstream code sees "never matches" rather than a crash.
		return Disjunction{}, nil

	case syntax.OpEmptyMatch:
		return Empty{}, nil

	case syntax.OpLiteral:
		return literalSequence(re), nil

	case syntax.OpCharClass:
		return charClassFromRunePairs(re.Rune, false), nil

	case syntax.OpAnyCharNotNL:
		return Dot{DotAll: false}, nil

	case syntax.OpAnyChar:
		return Dot{DotAll: true}, nil

	case syntax.OpBeginLine:
		return Anchor{Kind: LineStart}, nil

	case syntax.OpEndLine:
		return Anchor{Kind: LineEnd}, nil

	case syntax.OpBeginText:
		return Anchor{Kind: StringStart}, nil

	case syntax.OpEndText:
		return Anchor{Kind: StringEnd}, nil

	case syntax.OpWordBoundary:
		return Anchor{Kind: WordBoundary}, nil

	case syntax.OpNoWordBoundary:
		return Anchor{Kind: NonWordBoundary}, nil

	case syntax.OpCapture:
		body, err := nodeFromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		if re.Name != "" {
			return NamedCapture{Index: re.Cap, Name: re.Name, Body: body}, nil
		}
		return Capture{Index: re.Cap, Body: body}, nil

	case syntax.OpStar:
		body, err := nodeFromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Star{Body: body, Greedy: re.Flags&syntax.NonGreedy == 0}, nil

	case syntax.OpPlus:
		body, err := nodeFromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Plus{Body: body, Greedy: re.Flags&syntax.NonGreedy == 0}, nil

	case syntax.OpQuest:
		body, err := nodeFromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Question{Body: body, Greedy: re.Flags&syntax.NonGreedy == 0}, nil

	case syntax.OpRepeat:
		body, err := nodeFromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		max := re.Max
		if max < 0 {
			max = Unbounded
		}
		return BoundedRepeat{
			Body:   body,
			Min:    re.Min,
			Max:    max,
			Greedy: re.Flags&syntax.NonGreedy == 0,
		}, nil

	case syntax.OpConcat:
		items := make([]Node, 0, len(re.Sub))
		for _, sub := range re.Sub {
			n, err := nodeFromSyntax(sub)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		return Sequence{Items: items}, nil

	case syntax.OpAlternate:
		alts := make([]Node, 0, len(re.Sub))
		for _, sub := range re.Sub {
			n, err := nodeFromSyntax(sub)
			if err != nil {
				return nil, err
			}
			alts = append(alts, n)
		}
		return Disjunction{Alts: alts}, nil

	default:
		return nil, fmt.Errorf("ast: unsupported regexp/syntax op %v", re.Op)
	}
}

// literalSequence turns an OpLiteral's Rune slice into a Sequence of Char
// nodes (or a single Char for length 1), matching the original pattern's
// character-by-character structure that epsnfa/compile.go expects.
func literalSequence(re *syntax.Regexp) Node {
	if len(re.Rune) == 1 {
		return Char{Rune: re.Rune[0]}
	}
	items := make([]Node, len(re.Rune))
	for i, r := range re.Rune {
		items[i] = Char{Rune: r}
	}
	return Sequence{Items: items}
}

// charClassFromRunePairs converts a regexp/syntax rune-pair list (lo,hi
// pairs, already folded/negated by the parser) into a CharClass. The
// parser always hands back the final, already-negated set of ranges, so
// Negated is always false here; negation is baked into the ranges
// themselves by the time regexp/syntax produces them.
func charClassFromRunePairs(pairs []rune, negated bool) CharClass {
	items := make([]ClassItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, ClassItem{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return CharClass{Items: items, Negated: negated}
}
