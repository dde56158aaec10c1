package charset

import "testing"

func TestNewICharMergesOverlapping(t *testing.T) {
	ic := NewIChar(Range{Lo: 'a', Hi: 'f'}, Range{Lo: 'd', Hi: 'k'}, Range{Lo: 'z', Hi: 'z'})
	want := []Range{{'a', 'k'}, {'z', 'z'}}
	got := ic.Ranges()
	if len(got) != len(want) {
		t.Fatalf("got %d ranges, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewICharMergesAdjacent(t *testing.T) {
	ic := NewIChar(Range{Lo: 'a', Hi: 'c'}, Range{Lo: 'd', Hi: 'f'})
	got := ic.Ranges()
	if len(got) != 1 || got[0] != (Range{'a', 'f'}) {
		t.Fatalf("adjacent ranges not merged: %v", got)
	}
}

func TestIntersect(t *testing.T) {
	a := NewIChar(Range{'a', 'm'})
	b := NewIChar(Range{'g', 'z'})
	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected non-empty intersection")
	}
	if got.Ranges()[0] != (Range{'g', 'm'}) {
		t.Errorf("intersection = %v, want [g-m]", got)
	}

	c := NewIChar(Range{'0', '9'})
	_, ok = a.Intersect(c)
	if ok {
		t.Error("expected empty intersection")
	}
}

func TestContains(t *testing.T) {
	ic := NewIChar(Range{'a', 'f'}, Range{'0', '9'})
	for _, r := range []rune{'a', 'c', 'f', '0', '9'} {
		if !ic.Contains(r) {
			t.Errorf("expected Contains(%q) to be true", r)
		}
	}
	for _, r := range []rune{'g', 'Z', ' '} {
		if ic.Contains(r) {
			t.Errorf("expected Contains(%q) to be false", r)
		}
	}
}

func TestSample(t *testing.T) {
	ic := NewIChar(Range{'c', 'f'}, Range{'z', 'z'})
	if got := ic.Sample(); got != 'c' {
		t.Errorf("Sample() = %q, want 'c'", got)
	}
}

func TestSamplePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic sampling an empty IChar")
		}
	}()
	IChar{}.Sample()
}

func TestKeyAndEqual(t *testing.T) {
	a := NewIChar(Range{'a', 'z'}, Range{'0', '9'})
	b := NewIChar(Range{'0', '9'}, Range{'a', 'z'})
	if !a.Equal(b) {
		t.Errorf("expected %v to equal %v (order-independent construction)", a, b)
	}
	c := NewIChar(Range{'a', 'y'})
	if a.Equal(c) {
		t.Errorf("did not expect %v to equal %v", a, c)
	}
}

func TestEmpty(t *testing.T) {
	if !(IChar{}).Empty() {
		t.Error("zero-value IChar should be Empty")
	}
	if NewIChar(Range{'a', 'a'}).Empty() {
		t.Error("non-empty IChar reported Empty")
	}
	if !NewIChar(Range{5, 1}).Empty() {
		t.Error("inverted range should normalize to Empty")
	}
}
