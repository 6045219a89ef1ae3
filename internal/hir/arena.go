package hir

import (
	"iter"

	"fortio.org/safecast"
)

// arena is a generational slot map. Removed slots go onto a free list and
// are reused with a bumped generation, so keys held across a removal
// reliably miss instead of aliasing the new occupant.
type arena[K ~uint64, V any] struct {
	slots []slot[V]
	free  []uint32
	count int
}

type slot[V any] struct {
	value      V
	generation uint32
	occupied   bool
}

// Insert stores v and returns its key.
func (a *arena[K, V]) Insert(v V) K {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.occupied = true
		a.count++
		return K(makeKey(idx, s.generation))
	}

	idx := safecast.MustConvert[uint32](len(a.slots))
	a.slots = append(a.slots, slot[V]{value: v, generation: 1, occupied: true})
	a.count++
	return K(makeKey(idx, 1))
}

// Get returns the value for k, or nil when the key is stale or was never
// allocated by this arena. A null key is a programmer error and panics.
func (a *arena[K, V]) Get(k K) *V {
	if key(k).isNull() {
		panic("hir: null key")
	}
	idx := key(k).index()
	if int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.occupied || s.generation != key(k).generation() {
		return nil
	}
	return &s.value
}

// Contains reports whether k is live in this arena.
func (a *arena[K, V]) Contains(k K) bool {
	if key(k).isNull() {
		return false
	}
	idx := key(k).index()
	if int(idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[idx]
	return s.occupied && s.generation == key(k).generation()
}

// Remove frees the slot for k and returns its value. Removing a stale or
// null key is a no-op.
func (a *arena[K, V]) Remove(k K) (V, bool) {
	var zero V
	if key(k).isNull() {
		return zero, false
	}
	idx := key(k).index()
	if int(idx) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx]
	if !s.occupied || s.generation != key(k).generation() {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.occupied = false
	s.generation++
	a.free = append(a.free, idx)
	a.count--
	return v, true
}

func (a *arena[K, V]) Len() int {
	return a.count
}

// All iterates live entries in slot order. The arena must not be mutated
// during iteration.
func (a *arena[K, V]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			k := K(makeKey(uint32(i), s.generation))
			if !yield(k, &s.value) {
				return
			}
		}
	}
}

// Keys collects the live keys in slot order. Safe to use when the caller
// mutates the arena while walking the result.
func (a *arena[K, V]) Keys() []K {
	keys := make([]K, 0, a.count)
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			keys = append(keys, K(makeKey(uint32(i), s.generation)))
		}
	}
	return keys
}
