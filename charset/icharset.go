package charset

import "sort"

// ICharSet is a set of IChars that are pairwise disjoint and whose union
// equals the alphabet used by the automaton built over them. Invariant: any
// character transition using this set is labeled with exactly one atom.
type ICharSet struct {
	atoms []IChar
}

// Atoms returns the disjoint atoms of the partition.
func (s ICharSet) Atoms() []IChar { return s.atoms }

// Partition computes the Boolean partition of the given IChars: a
// refinement into single-interval atoms such that every original IChar is
// the union of some subset of the returned atoms. Implemented by sweeping all interval
// endpoints, per spec.md §4.1 ("Complexity O(N log N) in total interval
// count"), generalizing the byte-boundary sweep in the teacher's
// nfa/alphabet.go ByteClassSet.ByteClasses to arbitrary rune ranges.
func Partition(ichars []IChar) ICharSet {
	if len(ichars) == 0 {
		return ICharSet{}
	}

	// Collect all boundary points: for every range [lo,hi], lo and hi+1 are
	// where the partition may need to change.
	boundarySet := make(map[rune]bool)
	for _, ic := range ichars {
		for _, r := range ic.ranges {
			boundarySet[r.Lo] = true
			if r.Hi < MaxRune {
				boundarySet[r.Hi+1] = true
			}
		}
	}
	if len(boundarySet) == 0 {
		return ICharSet{}
	}

	bounds := make([]rune, 0, len(boundarySet))
	for b := range boundarySet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var atoms []IChar
	for i, lo := range bounds {
		hi := rune(MaxRune)
		if i+1 < len(bounds) {
			hi = bounds[i+1] - 1
		}
		if lo > hi {
			continue
		}
		mid := lo
		// Keep only atomic intervals that are actually covered by at least
		// one original IChar; otherwise we'd synthesize atoms for the gaps
		// between unrelated classes (e.g. the un-covered code points
		// between [a-z] and [0-9]).
		covered := false
		for _, ic := range ichars {
			if ic.Contains(mid) {
				covered = true
				break
			}
		}
		if covered {
			atoms = append(atoms, IChar{ranges: []Range{{lo, hi}}})
		}
	}
	return ICharSet{atoms: atoms}
}

// AtomsOverlapping returns the atoms of s that intersect a. Used to expand a
// (possibly non-atomic) transition label into the disjoint atoms the
// OrderedNFA/NFAwLA alphabet is built from.
func (s ICharSet) AtomsOverlapping(a IChar) []IChar {
	var out []IChar
	for _, atom := range s.atoms {
		if _, ok := atom.Intersect(a); ok {
			out = append(out, atom)
		}
	}
	return out
}

// Len returns the number of atoms in the partition.
func (s ICharSet) Len() int { return len(s.atoms) }
