package syncx

import (
	"sync"
	"testing"
)

func TestSlotPutTake(t *testing.T) {
	var s Slot[int]

	if !s.Put(42) {
		t.Fatal("Put into empty slot should succeed")
	}
	if s.Put(43) {
		t.Error("Put into occupied slot should fail")
	}

	v, ok := s.Take()
	if !ok || v != 42 {
		t.Errorf("Take() = (%d, %v), want (42, true)", v, ok)
	}
	if _, ok := s.Take(); ok {
		t.Error("Take from empty slot should report false")
	}
}

func TestSlotPeek(t *testing.T) {
	var s Slot[string]

	if _, ok := s.Peek(); ok {
		t.Error("Peek on empty slot should report false")
	}

	s.Put("session")
	v, ok := s.Peek()
	if !ok || v != "session" {
		t.Errorf("Peek() = (%q, %v), want (\"session\", true)", v, ok)
	}
	if !s.Occupied() {
		t.Error("Occupied() should be true after Put")
	}
}

func TestSlotWith(t *testing.T) {
	var s Slot[[]int]

	if s.With(func([]int) {}) {
		t.Error("With on empty slot should report false")
	}

	s.Put([]int{1, 2, 3})
	var n int
	if !s.With(func(v []int) { n = len(v) }) {
		t.Error("With on occupied slot should report true")
	}
	if n != 3 {
		t.Errorf("With observed len = %d, want 3", n)
	}
}

func TestSlotClear(t *testing.T) {
	var s Slot[*int]
	a, b := new(int), new(int)

	s.Put(a)
	if s.Clear(b, func(x, y *int) bool { return x == y }) {
		t.Error("Clear with non-matching value should fail")
	}
	if !s.Clear(a, func(x, y *int) bool { return x == y }) {
		t.Error("Clear with matching value should succeed")
	}
	if s.Occupied() {
		t.Error("slot should be empty after Clear")
	}
}

func TestSlotConcurrentPut(t *testing.T) {
	var s Slot[int]
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if s.Put(n) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("concurrent Put wins = %d, want exactly 1", wins)
	}
	if !s.Occupied() {
		t.Error("slot should be occupied after the winning Put")
	}
}
