package diagnostics

import "testing"

func TestPolynomialCollapsesLowDegreeToSafe(t *testing.T) {
	if c := Polynomial(1); !c.IsSafe() {
		t.Errorf("Polynomial(1) should collapse to Safe, got %v", c)
	}
	if c := Polynomial(0); !c.IsSafe() {
		t.Errorf("Polynomial(0) should collapse to Safe, got %v", c)
	}
}

func TestComplexityString(t *testing.T) {
	if got := Exponential().String(); got != "EXPONENTIAL" {
		t.Errorf("got %q, want EXPONENTIAL", got)
	}
	if got := Polynomial(3).String(); got != "POLYNOMIAL(3)" {
		t.Errorf("got %q, want POLYNOMIAL(3)", got)
	}
	if got := Safe().String(); got != "SAFE" {
		t.Errorf("got %q, want SAFE", got)
	}
}

func TestNewHotspotClampsRange(t *testing.T) {
	h := NewHotspot("abc", -5, 100)
	if h.Start != 0 || h.End != 3 || h.Snippet != "abc" {
		t.Errorf("got %+v, want clamped to the full string", h)
	}
}

func TestNewVulnerableCarriesAttack(t *testing.T) {
	d := NewVulnerable(Exponential(), Attack{Pump: []rune{'a'}, RepeatCount: 10}, nil)
	if d.Status != StatusVulnerable {
		t.Fatalf("got status %v, want VULNERABLE", d.Status)
	}
	if d.Attack == nil || d.Attack.RepeatCount != 10 {
		t.Error("expected the attack to be attached with repeatCount 10")
	}
}
