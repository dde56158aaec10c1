// Package redos is the public entry point (C10): it wires the AST,
// EpsNFA, OrderedNFA, look-ahead, SCC, ambiguity, and witness packages
// into a single Analyze call and the Diagnostics verdict of spec.md
// §6.3. Grounded on github.com/coregx/coregex's top-level regex.go
// (Config/DefaultConfig/Validate, Compile/MustCompile) and
// original_source/src/redoctor/automaton/checker.py's AutomatonChecker
// orchestration (backreference check -> build_eps_nfa -> NFA size check
// -> match-mode resolution -> anchor/continuation gate -> SCC analysis
// -> attack generation -> hotspot -> Diagnostics).
package redos

import (
	"context"
	"errors"
	"regexp/syntax"
	"time"

	"github.com/GetPageSpeed/recheck/ambiguity"
	"github.com/GetPageSpeed/recheck/ast"
	"github.com/GetPageSpeed/recheck/diagnostics"
	"github.com/GetPageSpeed/recheck/epsnfa"
	"github.com/GetPageSpeed/recheck/internal/hotspot"
	"github.com/GetPageSpeed/recheck/lookahead"
	"github.com/GetPageSpeed/recheck/ordered"
	"github.com/GetPageSpeed/recheck/scc"
	"github.com/GetPageSpeed/recheck/witness"
)

// Analyzer runs the static complexity pipeline against a compiled pattern,
// per spec.md §5's stage list.
type Analyzer struct {
	config Config
}

// NewAnalyzer builds an Analyzer from config, rejecting an invalid one.
func NewAnalyzer(config Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{config: config}, nil
}

// Analyze parses source as a regular expression and runs the full
// complexity pipeline, returning the resulting Diagnostics. It never
// returns a non-nil error: every failure mode spec.md §7 names surfaces
// as a Diagnostics value (UNKNOWN/ERROR), mirroring checker.py's own
// contract of always producing a verdict.
func (a *Analyzer) Analyze(ctx context.Context, source string) diagnostics.Diagnostics {
	if a.config.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.config.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	reSyntax, err := syntax.Parse(source, syntax.Perl)
	if err != nil {
		// regexp/syntax rejects numbered (\1) and named (\k) backreferences
		// as invalid escapes; those are unsupported, not malformed.
		var se *syntax.Error
		if errors.As(err, &se) && se.Code == syntax.ErrInvalidEscape && len(se.Expr) == 2 &&
			(se.Expr[1] == 'k' || (se.Expr[1] >= '1' && se.Expr[1] <= '9')) {
			return diagnostics.NewUnknown("backreference_unsupported")
		}
		return diagnostics.NewError("parse_error")
	}

	pattern, err := ast.FromSyntax(reSyntax, reSyntax.Flags)
	if err != nil {
		return diagnostics.NewError("internal_error")
	}
	pattern.Source = source
	pattern = applyMatchMode(pattern, a.config.MatchMode)

	if err := ctx.Err(); err != nil {
		return unknownForContext(err)
	}

	nfa, err := epsnfa.Compile(pattern, a.config.MaxNFASize)
	if err != nil {
		return diagnosticsForCompileError(err)
	}

	orderedNFA := ordered.Build(nfa, a.config.MaxEpsilonPathLen)

	if err := ctx.Err(); err != nil {
		return unknownForContext(err)
	}

	rdfa, err := lookahead.ReverseDFA(orderedNFA, a.config.MaxNFASize)
	if err != nil {
		return diagnostics.NewSafeWithReason("look_ahead_too_large")
	}

	nfawla, err := lookahead.BuildNFAwLA(orderedNFA, rdfa, a.config.MaxDeltaSize)
	if err != nil {
		return diagnostics.NewSafeWithReason("look_ahead_too_large")
	}

	if err := ctx.Err(); err != nil {
		return unknownForContext(err)
	}

	graph := scc.FromNFAwLA(nfawla)
	sccs := graph.ComputeSCCs()

	if err := ctx.Err(); err != nil {
		return unknownForContext(err)
	}

	gate := ambiguity.NewGate(pattern)

	edaWitness := ambiguity.CheckEDA(nfawla, graph, sccs)
	if edaWitness != nil {
		if !gate.ShouldReport() {
			return diagnostics.NewSafeWithReason("unanchored_no_continuation")
		}
		atoms := witness.BuildAtomLookup(orderedNFA.Alphabet)
		attack := witness.FromEDA(nfawla, graph, atoms, edaWitness, a.config.AttackLimit)
		return diagnostics.NewVulnerable(diagnostics.Exponential(), toDiagAttack(attack), a.locateHotspot(pattern, source))
	}

	if err := ctx.Err(); err != nil {
		return unknownForContext(err)
	}

	idaWitness := ambiguity.CheckIDA(graph, sccs)
	if idaWitness != nil {
		if !gate.ShouldReport() {
			return diagnostics.NewSafeWithReason("unanchored_no_continuation")
		}
		atoms := witness.BuildAtomLookup(orderedNFA.Alphabet)
		attack := witness.FromIDA(nfawla, graph, atoms, idaWitness, a.config.AttackLimit)
		return diagnostics.NewVulnerable(diagnostics.Polynomial(idaWitness.Degree), toDiagAttack(attack), a.locateHotspot(pattern, source))
	}

	return diagnostics.NewSafe()
}

// locateHotspot narrows a vulnerable verdict's reported span from the
// whole pattern down to the first literal run extracted from pattern's
// AST, falling back to the full source span when no literal run occurs
// in the pattern text (an automaton build failure or an all-metachar
// pattern, e.g. "(a+)+" has no >=2-rune literal run to find).
func (a *Analyzer) locateHotspot(pattern ast.Pattern, source string) *diagnostics.Hotspot {
	literals := hotspot.ExtractLiterals(pattern.Root)
	automaton, err := hotspot.BuildAutomaton(literals)
	if err == nil {
		if span, ok := hotspot.Locate(automaton, []byte(source), 0); ok {
			return diagnostics.NewHotspot(source, span.Start, span.End)
		}
	}
	return diagnostics.NewHotspot(source, 0, len(source))
}

// applyMatchMode synthesizes the anchors MatchFull implies, per spec.md
// §6.4: a fully-anchored match behaves, for complexity purposes, like a
// pattern with both a start and an end anchor.
func applyMatchMode(p ast.Pattern, mode MatchMode) ast.Pattern {
	if mode != MatchFull {
		return p
	}
	p.Root = ast.Sequence{Items: []ast.Node{
		ast.Anchor{Kind: ast.StringStart},
		p.Root,
		ast.Anchor{Kind: ast.StringEnd},
	}}
	return p
}

// unknownForContext maps a context error to an UNKNOWN verdict: an expired
// deadline reports "timeout", any other cancellation "cancelled".
func unknownForContext(err error) diagnostics.Diagnostics {
	if errors.Is(err, context.DeadlineExceeded) {
		return diagnostics.NewUnknown("timeout")
	}
	return diagnostics.NewUnknown("cancelled")
}

// diagnosticsForCompileError maps an EpsNFA construction failure to the
// Diagnostics status table spec.md §7 documents.
func diagnosticsForCompileError(err error) diagnostics.Diagnostics {
	switch {
	case errors.Is(err, epsnfa.ErrBackreferenceUnsupported):
		return diagnostics.NewUnknown("backreference_unsupported")
	case errors.Is(err, epsnfa.ErrLookbehindUnsupportedComplex):
		return diagnostics.NewUnknown("lookbehind_unsupported_complex")
	case errors.Is(err, epsnfa.ErrNFATooLarge):
		return diagnostics.NewUnknown("nfa_too_large")
	default:
		return diagnostics.NewError("internal_error")
	}
}

// toDiagAttack copies a witness.Attack into the diagnostics package's own
// Attack shape (kept distinct so diagnostics has no dependency on how an
// attack string was derived).
func toDiagAttack(a witness.Attack) diagnostics.Attack {
	return diagnostics.Attack{
		Prefix:      a.Prefix,
		Pump:        a.Pump,
		Suffix:      a.Suffix,
		RepeatCount: a.RepeatCount,
	}
}
