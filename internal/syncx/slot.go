// Package syncx provides extended synchronization primitives
package syncx

import "sync"

// Slot is a mutex-guarded single-occupancy holder. It models resources that
// exist at most once at a time, such as the daemon's active session: Put
// fails while the slot is occupied instead of queueing or replacing.
type Slot[T any] struct {
	mu       sync.RWMutex
	value    T
	occupied bool
}

// Put stores v if the slot is empty; reports whether it was stored.
func (s *Slot[T]) Put(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupied {
		return false
	}
	s.value = v
	s.occupied = true
	return true
}

// Take removes and returns the current value, if any.
func (s *Slot[T]) Take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.occupied {
		var zero T
		return zero, false
	}
	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	return v, true
}

// Peek returns the current value without removing it.
func (s *Slot[T]) Peek() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.occupied
}

// Occupied reports whether the slot holds a value.
func (s *Slot[T]) Occupied() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.occupied
}

// With runs fn with the held value under the read lock; reports whether the
// slot was occupied. fn must not call back into the slot.
func (s *Slot[T]) With(fn func(T)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.occupied {
		return false
	}
	fn(s.value)
	return true
}

// Clear empties the slot only when the held value equals match, using the
// supplied equality. Lets the owner release its own entry without racing a
// replacement.
func (s *Slot[T]) Clear(match T, eq func(a, b T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.occupied || !eq(s.value, match) {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	return true
}
