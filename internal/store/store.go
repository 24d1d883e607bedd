// Package store holds the ordered entity list. Every mutation replaces the
// whole list, so a snapshot returned by Boxes is never modified afterwards.
package store

import (
	"sync"

	"github.com/ChicagoDave/massing/pkg/box"
)

// Store is the entity list store.
type Store struct {
	mu      sync.RWMutex
	boxes   []box.Box
	version uint64
}

// New returns a store holding a copy of boxes.
func New(boxes []box.Box) *Store {
	return &Store{boxes: append([]box.Box(nil), boxes...)}
}

// Boxes returns the current snapshot. Callers must not modify it.
func (s *Store) Boxes() []box.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boxes
}

// Version counts committed mutations.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns the box with the given id.
func (s *Store) Get(id string) (box.Box, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := box.Find(s.boxes, id); i >= 0 {
		return s.boxes[i], true
	}
	return box.Box{}, false
}

// Set replaces the list with a copy of boxes.
func (s *Store) Set(boxes []box.Box) {
	next := append([]box.Box(nil), boxes...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boxes = next
	s.version++
}

// Update commits fn(current) as the new list. fn receives the current
// snapshot and must return a new slice rather than modify it.
func (s *Store) Update(fn func([]box.Box) []box.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boxes = fn(s.boxes)
	s.version++
}

// ReplaceByID maps the list, replacing the box with the given id by fn(box).
// Every other entry is kept as is; an unknown id leaves the contents
// unchanged. It reports whether the id was found.
func (s *Store) ReplaceByID(id string, fn func(box.Box) box.Box) bool {
	found := false
	s.Update(func(cur []box.Box) []box.Box {
		next := make([]box.Box, len(cur))
		for i, b := range cur {
			if b.ID == id {
				b = fn(b)
				found = true
			}
			next[i] = b
		}
		return next
	})
	return found
}
