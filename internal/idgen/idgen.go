// Package idgen provides the id generators injected into services.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new opaque id carrying the given prefix.
type Generator interface {
	NextID(prefix string) string
}

// UUID generates ids of the form PREFIX-<uuid>.
type UUID struct{}

func (UUID) NextID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence generates PREFIX1, PREFIX2, ... from one counter shared by all
// prefixes.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

func (s *Sequence) NextID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s%d", prefix, s.next)
	s.next++
	return id
}

var (
	_ Generator = UUID{}
	_ Generator = (*Sequence)(nil)
)
