package redos

import (
	"context"
	"testing"

	"github.com/GetPageSpeed/recheck/diagnostics"
)

func TestCheckSimpleLiteralIsSafe(t *testing.T) {
	d := Check(`^abc$`)
	if d.Status != diagnostics.StatusSafe {
		t.Fatalf("got status %v, want SAFE", d.Status)
	}
}

func TestCheckClassicEDAPatternIsVulnerable(t *testing.T) {
	d := Check(`^(a+)+$`)
	if d.Status != diagnostics.StatusVulnerable {
		t.Fatalf("got status %v, want VULNERABLE for (a+)+$", d.Status)
	}
	if d.Complexity == nil || d.Complexity.Type != diagnostics.ComplexityExponential {
		t.Errorf("got complexity %v, want EXPONENTIAL", d.Complexity)
	}
	if d.Attack == nil || len(d.Attack.Pump) == 0 {
		t.Error("expected a non-empty pump in the attack witness")
	}
}

func TestCheckUnanchoredAmbiguousPatternDowngradesToSafe(t *testing.T) {
	d := Check(`(a+)+`)
	if d.Status != diagnostics.StatusSafe {
		t.Fatalf("got status %v, want SAFE (unanchored, no continuation)", d.Status)
	}
	if d.Reason != "unanchored_no_continuation" {
		t.Errorf("got reason %q, want unanchored_no_continuation", d.Reason)
	}
}

func TestCheckBackreferenceIsUnknown(t *testing.T) {
	d := Check(`(a)\1`)
	if d.Status != diagnostics.StatusUnknown {
		t.Fatalf("got status %v, want UNKNOWN for a backreference", d.Status)
	}
	if d.Reason != "backreference_unsupported" {
		t.Errorf("got reason %q, want backreference_unsupported", d.Reason)
	}
}

func TestCheckInvalidPatternIsError(t *testing.T) {
	d := Check(`(unterminated`)
	if d.Status != diagnostics.StatusError {
		t.Fatalf("got status %v, want ERROR for a malformed pattern", d.Status)
	}
}

func TestIsSafeAndIsVulnerable(t *testing.T) {
	if !IsSafe(`^abc$`) {
		t.Error("^abc$ should be IsSafe")
	}
	if IsVulnerable(`^abc$`) {
		t.Error("^abc$ should not be IsVulnerable")
	}
	if !IsVulnerable(`^(a+)+$`) {
		t.Error("^(a+)+$ should be IsVulnerable")
	}
}

func TestNewAnalyzerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNFASize = -1
	if _, err := NewAnalyzer(cfg); err == nil {
		t.Error("expected an error for a negative MaxNFASize")
	}
}

func TestAnalyzeRespectsCancellation(t *testing.T) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := a.Analyze(ctx, `^(a+)+$`)
	if d.Status != diagnostics.StatusUnknown || d.Reason != "cancelled" {
		t.Errorf("got %+v, want UNKNOWN/cancelled for a pre-cancelled context", d)
	}
}
