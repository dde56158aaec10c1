package sparse

import "github.com/GetPageSpeed/recheck/internal/conv"

// Index assigns dense uint32 identifiers to values of an arbitrary
// comparable key type, letting a SparseSet — which only stores uint32 —
// index composite keys such as an (NFA state, look-ahead state) pair.
// IDs are handed out in first-sight order and are stable for the Index's
// lifetime.
type Index[T comparable] struct {
	ids  map[T]uint32
	keys []T
}

// NewIndex creates an empty Index.
func NewIndex[T comparable]() *Index[T] {
	return &Index[T]{ids: make(map[T]uint32)}
}

// IDFor returns key's dense ID, assigning a new one if key has not been
// seen before.
func (idx *Index[T]) IDFor(key T) uint32 {
	if id, ok := idx.ids[key]; ok {
		return id
	}
	id := conv.IntToUint32(len(idx.keys))
	idx.ids[key] = id
	idx.keys = append(idx.keys, key)
	return id
}

// Key returns the value that was assigned id, panicking if id is out of
// range.
func (idx *Index[T]) Key(id uint32) T {
	return idx.keys[id]
}

// Len returns the number of distinct keys indexed so far.
func (idx *Index[T]) Len() int {
	return len(idx.keys)
}
