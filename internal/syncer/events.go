package syncer

import (
	"log"
	"sync"
)

// Events is the engine's typed publish-subscribe surface. Each event kind
// has its own handler signature; handlers run synchronously in registration
// order and a panicking handler never blocks the rest.
type Events struct {
	mu          sync.Mutex
	statusFns   []func(Status)
	conflictFns []func(*Conflict)
	errorFns    []func(error)
	syncedFns   []func()
}

// OnStatus registers a handler for status transitions.
func (e *Events) OnStatus(fn func(Status)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statusFns = append(e.statusFns, fn)
}

// OnConflict registers a handler invoked when the engine enters the
// conflict state. The handler resolves it via Conflict.Resolve.
func (e *Events) OnConflict(fn func(*Conflict)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conflictFns = append(e.conflictFns, fn)
}

// OnError registers a handler for terminal sync errors.
func (e *Events) OnError(fn func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errorFns = append(e.errorFns, fn)
}

// OnSynced registers a handler invoked after each successful push.
func (e *Events) OnSynced(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncedFns = append(e.syncedFns, fn)
}

func (e *Events) emitStatus(s Status) {
	for _, fn := range e.snapshotStatus() {
		safeCall(func() { fn(s) })
	}
}

func (e *Events) emitConflict(c *Conflict) {
	e.mu.Lock()
	fns := append(([]func(*Conflict))(nil), e.conflictFns...)
	e.mu.Unlock()
	for _, fn := range fns {
		safeCall(func() { fn(c) })
	}
}

func (e *Events) emitError(err error) {
	e.mu.Lock()
	fns := append(([]func(error))(nil), e.errorFns...)
	e.mu.Unlock()
	for _, fn := range fns {
		safeCall(func() { fn(err) })
	}
}

func (e *Events) emitSynced() {
	e.mu.Lock()
	fns := append(([]func())(nil), e.syncedFns...)
	e.mu.Unlock()
	for _, fn := range fns {
		safeCall(fn)
	}
}

func (e *Events) snapshotStatus() []func(Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(([]func(Status))(nil), e.statusFns...)
}

func safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sync: event handler panic: %v", r)
		}
	}()
	fn()
}
