// Package weaks associates data with objects without keeping them alive.
package weaks

import (
	"runtime"
	"sync"
	"weak"
)

// Map is keyed by *K. An entry disappears once its key is collected, or
// when Delete is called as an explicit teardown.
type Map[K any, V any] struct {
	mu      sync.Mutex
	entries map[weak.Pointer[K]]*entry[V]
}

type entry[V any] struct {
	value   V
	cleanup runtime.Cleanup
}

func NewMap[K any, V any]() *Map[K, V] {
	return &Map[K, V]{
		entries: make(map[weak.Pointer[K]]*entry[V]),
	}
}

func (m *Map[K, V]) Get(key *K) (ret V, ok bool) {
	if key == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[weak.Make(key)]
	if !ok {
		return
	}
	return e.value, true
}

func (m *Map[K, V]) Set(key *K, value V) {
	if key == nil {
		return
	}
	w := weak.Make(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[w]; ok {
		e.value = value
		return
	}
	e := &entry[V]{
		value: value,
	}
	e.cleanup = runtime.AddCleanup(key, m.drop, w)
	m.entries[w] = e
}

// Upsert replaces the value of key with fn's result.
func (m *Map[K, V]) Upsert(key *K, fn func(value V, ok bool) V) V {
	value, ok := m.Get(key)
	value = fn(value, ok)
	m.Set(key, value)
	return value
}

func (m *Map[K, V]) Delete(key *K) {
	if key == nil {
		return
	}
	w := weak.Make(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[w]; ok {
		e.cleanup.Stop()
		delete(m.entries, w)
	}
}

func (m *Map[K, V]) drop(w weak.Pointer[K]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, w)
}

func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
