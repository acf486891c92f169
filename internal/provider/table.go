package provider

import "sync"

type (
	// table maps handles to provider-owned values. Freed slots are
	// recycled through a free list, a handle is valid only between
	// its alloc and its drop.
	table[T any] struct {
		mu      sync.Mutex
		entries []entry[T]
		free    []Handle
	}

	entry[T any] struct {
		value T
		valid bool
	}
)

func newTable[T any]() *table[T] {
	return &table[T]{
		entries: make([]entry[T], 0, 16),
	}
}

func (t *table[T]) alloc(value T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := entry[T]{value: value, valid: true}
	if n := len(t.free); n > 0 {
		h := t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[h-1] = e
		return h
	}
	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

func (t *table[T]) get(h Handle) (T, bool) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	if h == 0 || int(h) > len(t.entries) {
		return zero, false
	}
	e := t.entries[h-1]
	if !e.valid {
		return zero, false
	}
	return e.value, true
}

func (t *table[T]) drop(h Handle) (T, bool) {
	var zero T
	t.mu.Lock()
	defer t.mu.Unlock()
	if h == 0 || int(h) > len(t.entries) {
		return zero, false
	}
	e := &t.entries[h-1]
	if !e.valid {
		return zero, false
	}
	value := e.value
	e.valid = false
	e.value = zero
	t.free = append(t.free, h)
	return value, true
}

func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}
