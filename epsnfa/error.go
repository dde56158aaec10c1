package epsnfa

import (
	"errors"
	"fmt"
)

// Sentinel errors, mirroring nfa/error.go's sentinel-plus-wrapper idiom.
var (
	// ErrInvalidState indicates an invalid EpsNFA state ID was referenced.
	ErrInvalidState = errors.New("invalid EpsNFA state")

	// ErrNFATooLarge indicates the state count exceeded maxNfaSize during
	// construction (spec.md §4.2's NFA_TOO_LARGE size bound).
	ErrNFATooLarge = errors.New("EpsNFA exceeds configured size bound")

	// ErrBackreferenceUnsupported indicates the pattern contains a
	// Backref, NamedBackref, or Conditional node (spec.md §6.1); no NFA
	// is built when this error is returned.
	ErrBackreferenceUnsupported = errors.New("pattern uses a backreference or conditional, unsupported")

	// ErrLookbehindUnsupportedComplex indicates a lookbehind assertion
	// whose body contains an unbounded quantifier, which this port
	// declines to model even conservatively (see DESIGN.md's Open
	// Question decision on lookbehind).
	ErrLookbehindUnsupportedComplex = errors.New("lookbehind body too complex to analyze")
)

// BuildError wraps a construction failure with the offending state, mirroring
// nfa/error.go's BuildError.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("epsnfa build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("epsnfa build error: %s", e.Message)
}

// CompileError wraps a compilation failure with the source pattern text.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("epsnfa compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("epsnfa compilation failed: %v", e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
