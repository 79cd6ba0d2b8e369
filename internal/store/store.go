// Package store holds the live presentation document for one editor
// session. It exclusively owns the Project graph: every snapshot handed out
// is a deep copy, and every mutation runs to completion before listeners
// fire, so observers never see a partially-updated project.
package store

import (
	"log"
	"sync"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// Listener receives change notifications. The snapshot is a deep copy owned
// by the listener.
type Listener func(Change)

// Change describes one notification.
type Change struct {
	Project  *deck.Project
	Selected int
}

// Store is the central mutable state for an editor session.
type Store struct {
	mu        sync.Mutex
	project   *deck.Project
	selected  int
	listeners map[int]Listener
	nextID    int

	// batchDepth suppresses notifications inside Batch; dirty records
	// whether anything changed while suppressed.
	batchDepth int
	dirty      bool
}

// New creates a store seeded with a factory-default project.
func New() *Store {
	return &Store{
		project:   deck.NewProject(),
		listeners: make(map[int]Listener),
	}
}

// State returns a deep copy of the current project.
func (s *Store) State() *deck.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

// Selected returns the current selection index.
func (s *Store) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Update applies fn to the live project under the store lock and notifies
// listeners. fn must not retain the pointer past its return.
func (s *Store) Update(fn func(p *deck.Project)) {
	s.mu.Lock()
	fn(s.project)
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

// Replace swaps the entire project, resetting the selection to the first
// slide. Used when loading a project or adopting a remote version after
// conflict resolution. The store takes ownership of a deep copy.
func (s *Store) Replace(p *deck.Project) {
	s.mu.Lock()
	s.project = p.Clone()
	s.selected = clamp(0, len(s.project.Slides))
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

// Reset restores the factory-default empty project.
func (s *Store) Reset() {
	s.mu.Lock()
	s.project = deck.NewProject()
	s.selected = 0
	s.markDirtyLocked()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Batch runs fn with change notifications suppressed. One notification
// fires after the outermost batch returns, and only if something changed.
// Batches nest.
func (s *Store) Batch(fn func()) {
	s.mu.Lock()
	s.batchDepth++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batchDepth--
		fire := s.batchDepth == 0 && s.dirty
		if fire {
			s.dirty = false
		}
		s.mu.Unlock()
		if fire {
			s.notify()
		}
	}()

	fn()
}

// markDirtyLocked records a change; caller holds the lock.
func (s *Store) markDirtyLocked() {
	if s.batchDepth > 0 {
		s.dirty = true
	}
}

// notify calls every listener with a fresh snapshot. Inside a batch it does
// nothing; the outermost Batch fires instead. A panicking listener is
// logged and never prevents the remaining listeners from running.
func (s *Store) notify() {
	s.mu.Lock()
	if s.batchDepth > 0 {
		s.mu.Unlock()
		return
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	change := Change{Project: s.project.Clone(), Selected: s.selected}
	s.mu.Unlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("store: listener panic: %v", r)
				}
			}()
			fn(change)
		}()
	}
}

func clamp(i, length int) int {
	if length == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	return i
}
