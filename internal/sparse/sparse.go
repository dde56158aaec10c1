// Package sparse provides a sparse set data structure for efficient membership testing.
//
// A sparse set is a data structure that supports O(1) insertion, deletion, and membership
// testing while maintaining a dense list of elements. It's particularly useful for NFA
// simulation where we need to track visited states — here, the composite (NFA state,
// look-ahead state) pairs that witness's path searches walk over the NFAwLA graph.
// Index (index.go) adapts SparseSet's uint32-only universe to an arbitrary comparable
// key by assigning dense IDs on first sight.
package sparse

// defaultCapacity is used when Resize or NewSparseSet is asked for capacity 0.
const defaultCapacity = 64

// SparseSet is a set of uint32 values that supports O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps values to indices in the dense array.
//
// This implementation is optimized for cases where the universe of possible
// values is known and relatively small (e.g., NFA state IDs).
type SparseSet struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values
	size   uint32   // Current number of elements
}

// NewSparseSet creates a new sparse set with the given capacity.
// The capacity represents the maximum value that can be stored (exclusive).
// A capacity of 0 defaults to defaultCapacity.
func NewSparseSet(capacity uint32) *SparseSet {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
		size:   0,
	}
}

// Insert adds a value to the set, returning true if it was newly added
// and false if it was already present. Values >= capacity are silently
// ignored (Contains already treats them as absent).
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if value >= uint32(len(s.sparse)) {
		return false
	}

	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains returns true if the value is in the set
func (s *SparseSet) Contains(value uint32) bool {
	// Bounds check: value must be within sparse array bounds
	// Check for potential overflow when converting len to uint32
	if len(s.sparse) > 0x7FFFFFFF {
		return false // len too large for safe conversion
	}
	//nolint:gosec // G115: len is checked above for safe conversion to uint32
	sparseLen := uint32(len(s.sparse))
	if value >= sparseLen {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove removes a value from the set.
// If the value is not present, this is a no-op.
func (s *SparseSet) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}

	// Get index of value in dense array
	idx := s.sparse[value]

	// Move last element to this position (swap and pop)
	lastValue := s.dense[s.size-1]
	s.dense[idx] = lastValue
	s.sparse[lastValue] = idx

	s.size--
	s.dense = s.dense[:s.size]
}

// Clear removes all elements from the set in O(1) time
func (s *SparseSet) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Size returns the number of elements in the set. Len is an alias kept
// for callers that prefer the container/* naming convention.
func (s *SparseSet) Size() int {
	return int(s.size)
}

// Len returns the number of elements in the set (alias for Size).
func (s *SparseSet) Len() int {
	return int(s.size)
}

// Capacity returns the maximum value (exclusive) the set can currently store.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// IsEmpty returns true if the set contains no elements
func (s *SparseSet) IsEmpty() bool {
	return s.size == 0
}

// Values returns a slice of all values in the set.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense[:s.size]
}

// Iter calls the given function for each value in the set, in insertion
// order; Remove moves the last value into the removed value's slot.
func (s *SparseSet) Iter(f func(uint32)) {
	for i := uint32(0); i < s.size; i++ {
		f(s.dense[i])
	}
}

// Resize changes the set's capacity. Growing preserves the current
// elements; shrinking (or resizing to the same capacity) clears the set,
// since the existing sparse array can't be trusted to stay within bounds.
// A capacity of 0 defaults to defaultCapacity.
func (s *SparseSet) Resize(capacity uint32) {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if int(capacity) <= len(s.sparse) {
		s.sparse = make([]uint32, capacity)
		s.dense = s.dense[:0]
		s.size = 0
		return
	}
	grown := make([]uint32, capacity)
	copy(grown, s.sparse)
	s.sparse = grown
}

// Clone returns an independent copy of the set; mutating the clone does
// not affect the original.
func (s *SparseSet) Clone() *SparseSet {
	clone := &SparseSet{
		sparse: make([]uint32, len(s.sparse)),
		dense:  make([]uint32, len(s.dense), cap(s.dense)),
		size:   s.size,
	}
	copy(clone.sparse, s.sparse)
	copy(clone.dense, s.dense)
	return clone
}

// MemoryUsage estimates the set's resident footprint in bytes: both the
// sparse and dense backing arrays are capacity uint32s (4 bytes each).
func (s *SparseSet) MemoryUsage() int {
	return len(s.sparse)*4 + cap(s.dense)*4
}

// SparseSets is a pair of sparse sets sharing a capacity, the shape a
// double-buffered worklist algorithm (this step's frontier, the next
// step's frontier) needs — grounded on the same current/next-set
// buffering dfa/lazy's builder uses for NFA state-set construction.
type SparseSets struct {
	Set1 *SparseSet
	Set2 *SparseSet
}

// NewSparseSets creates a pair of empty sparse sets with the given
// capacity.
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Swap exchanges Set1 and Set2, the O(1) "advance to next generation"
// step of a double-buffered worklist.
func (ss *SparseSets) Swap() {
	ss.Set1, ss.Set2 = ss.Set2, ss.Set1
}

// Clear empties both sets.
func (ss *SparseSets) Clear() {
	ss.Set1.Clear()
	ss.Set2.Clear()
}

// Resize resizes both sets to the same new capacity.
func (ss *SparseSets) Resize(capacity uint32) {
	ss.Set1.Resize(capacity)
	ss.Set2.Resize(capacity)
}

// MemoryUsage sums both sets' MemoryUsage.
func (ss *SparseSets) MemoryUsage() int {
	return ss.Set1.MemoryUsage() + ss.Set2.MemoryUsage()
}
