// Package redos is the public entry point (C10): it wires the AST,
// EpsNFA, OrderedNFA, look-ahead, SCC, ambiguity, and witness packages
// into a single Analyze call and the Diagnostics verdict of spec.md
// §6.3. Grounded on github.com/coregx/coregex's top-level regex.go
// (Config/DefaultConfig/Validate, Compile/MustCompile) and meta/config.go's
// ConfigError pattern.
package redos

// MatchMode controls whether the analyzer synthesizes anchors around an
// unanchored pattern before running complexity analysis, per spec.md
// §6.4.
type MatchMode int

const (
	// MatchAuto infers anchoring from the pattern's own anchors.
	MatchAuto MatchMode = iota
	// MatchFull analyzes as if the whole input must match.
	MatchFull
	// MatchPartial analyzes as an unanchored substring search.
	MatchPartial
)

// Config controls analyzer resource bounds and behavior, per spec.md
// §6.4's closed configuration set.
type Config struct {
	// MaxNFASize caps the EpsNFA state count (spec.md §4.2/§6.4).
	// Default: 100000.
	MaxNFASize int

	// MaxDeltaSize caps the NFAwLA transition count (spec.md §4.5/§6.4).
	// Default: 100000.
	MaxDeltaSize int

	// MaxEpsilonPathLen bounds epsilon-path multiplicity in OrderedNFA
	// construction (spec.md §4.3/§6.4). Default: 20.
	MaxEpsilonPathLen int

	// MatchMode controls anchor synthesis. Default: MatchAuto.
	MatchMode MatchMode

	// AttackLimit is the repeatCount emitted in witnesses (spec.md §6.4).
	// Default: 1000.
	AttackLimit int

	// TimeoutMs is the overall analysis budget in milliseconds; zero
	// means no timeout. Default: 0.
	TimeoutMs int
}

// DefaultConfig returns the configuration spec.md §6.4 documents as the
// default for every option.
func DefaultConfig() Config {
	return Config{
		MaxNFASize:        100_000,
		MaxDeltaSize:      100_000,
		MaxEpsilonPathLen: 20,
		MatchMode:         MatchAuto,
		AttackLimit:       1000,
		TimeoutMs:         0,
	}
}

// ConfigError reports an invalid Config field, mirroring coregex's
// meta.ConfigError.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "redos: invalid config: " + e.Field + ": " + e.Message
}

// Validate checks that every Config field is within its documented range.
func (c Config) Validate() error {
	if c.MaxNFASize < 1 {
		return &ConfigError{Field: "MaxNFASize", Message: "must be positive"}
	}
	if c.MaxDeltaSize < 1 {
		return &ConfigError{Field: "MaxDeltaSize", Message: "must be positive"}
	}
	if c.MaxEpsilonPathLen < 1 {
		return &ConfigError{Field: "MaxEpsilonPathLen", Message: "must be positive"}
	}
	if c.AttackLimit < 0 {
		return &ConfigError{Field: "AttackLimit", Message: "must be non-negative"}
	}
	if c.TimeoutMs < 0 {
		return &ConfigError{Field: "TimeoutMs", Message: "must be non-negative"}
	}
	switch c.MatchMode {
	case MatchAuto, MatchFull, MatchPartial:
	default:
		return &ConfigError{Field: "MatchMode", Message: "unrecognized match mode"}
	}
	return nil
}
