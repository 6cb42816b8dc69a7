package repository

import "sync"

type refMutex struct {
	sync.Mutex
	refs int
}

// Locker hands out one mutex per entity id so that a read-check-write
// sequence on that entity cannot interleave with another. An id's entry is
// dropped once nobody holds or waits on it.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*refMutex)}
}

// Lock blocks until id is held and returns the matching unlock func.
func (l *Locker) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &refMutex{}
		l.locks[id] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
