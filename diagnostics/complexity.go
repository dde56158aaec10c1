// Package diagnostics defines the analyzer's output contract (spec.md
// §6.3): a Status, a Complexity classification, an optional Attack
// witness, and a best-effort Hotspot, aggregated into a Diagnostics
// value. Grounded on original_source/src/recheck/diagnostics's module
// layout (Complexity/AttackPattern/Hotspot/Diagnostics as separate
// concerns) even though that package's bodies weren't present in the
// retrieved source — the shapes here follow spec.md §6.3's JSON contract
// directly, in the teacher's "small typed result, constructors instead of
// bare struct literals" idiom (github.com/coregx/coregex/dfa/lazy's
// DFAError/ErrorKind pattern).
package diagnostics

import "strconv"

// ComplexityType classifies worst-case backtracking behavior.
type ComplexityType int

const (
	ComplexitySafe ComplexityType = iota
	ComplexityPolynomial
	ComplexityExponential
)

func (t ComplexityType) String() string {
	switch t {
	case ComplexitySafe:
		return "SAFE"
	case ComplexityPolynomial:
		return "POLYNOMIAL"
	case ComplexityExponential:
		return "EXPONENTIAL"
	default:
		return "UNKNOWN"
	}
}

// Complexity is the worst-case backtracking classification of a pattern.
// Degree is only meaningful when Type is ComplexityPolynomial.
type Complexity struct {
	Type   ComplexityType
	Degree int
}

// Safe reports the constant/linear-time classification.
func Safe() Complexity { return Complexity{Type: ComplexitySafe} }

// Polynomial reports a polynomial-degree classification. Degrees below 2
// collapse to Safe, per spec.md §4.7 ("Degree 1 or less ⇒ Safe").
func Polynomial(degree int) Complexity {
	if degree < 2 {
		return Safe()
	}
	return Complexity{Type: ComplexityPolynomial, Degree: degree}
}

// Exponential reports the exponential classification.
func Exponential() Complexity { return Complexity{Type: ComplexityExponential} }

// IsSafe reports whether c represents no detected vulnerability.
func (c Complexity) IsSafe() bool { return c.Type == ComplexitySafe }

// String renders the classification the way a diagnostic report would,
// e.g. "EXPONENTIAL" or "POLYNOMIAL(3)".
func (c Complexity) String() string {
	if c.Type == ComplexityPolynomial {
		return "POLYNOMIAL(" + strconv.Itoa(c.Degree) + ")"
	}
	return c.Type.String()
}
