package repository

import "sync"

// Store is a keyed collection of values of one entity type. Add overwrites
// silently; callers that need uniqueness check Get first.
type Store[T any] interface {
	Add(id string, item T)
	Get(id string) (T, bool)
	Remove(id string)
	All() []T
}

// cloner is implemented by entities holding slices or maps, so that copies
// handed out by the store never alias stored state.
type cloner[T any] interface {
	Clone() T
}

// MemoryStore keeps values in a process-lifetime map. Reads return copies.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{items: make(map[string]T)}
}

func (s *MemoryStore[T]) Add(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = detach(item)
}

func (s *MemoryStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return detach(item), true
}

func (s *MemoryStore[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// All returns a snapshot in no particular order.
func (s *MemoryStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, detach(item))
	}
	return out
}

// Filter returns the stored values matching keep.
func (s *MemoryStore[T]) Filter(keep func(T) bool) []T {
	all := s.All()
	out := all[:0]
	for _, item := range all {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func detach[T any](item T) T {
	if c, ok := any(&item).(cloner[T]); ok {
		return c.Clone()
	}
	return item
}

var _ Store[int] = (*MemoryStore[int])(nil)
