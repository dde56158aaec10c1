package redos

import (
	"context"

	"github.com/GetPageSpeed/recheck/diagnostics"
)

// Check analyzes source with DefaultConfig and returns its Diagnostics.
// It never returns an error itself: a malformed pattern or unsupported
// construct surfaces as an ERROR/UNKNOWN Diagnostics value, not a Go
// error, mirroring coregex's Compile/MustCompile split at a smaller
// scale — Check is the convenience path, NewAnalyzer the configurable one.
func Check(source string) diagnostics.Diagnostics {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid; a failure here is a programming
		// error in this package, not a caller input problem.
		panic(err)
	}
	return a.Analyze(context.Background(), source)
}

// IsSafe reports whether source's diagnostics come back Safe.
func IsSafe(source string) bool {
	return Check(source).Status == diagnostics.StatusSafe
}

// IsVulnerable reports whether source's diagnostics come back Vulnerable.
func IsVulnerable(source string) bool {
	return Check(source).Status == diagnostics.StatusVulnerable
}
